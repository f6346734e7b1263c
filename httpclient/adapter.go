package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/restdata/logger"
	"github.com/kbukum/restdata/resilience"
)

// Adapter is the shared HTTP transport for all resource operations.
// It is safe for concurrent use; configuration is immutable after New.
type Adapter struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
	cb         *resilience.CircuitBreaker
	rl         *resilience.RateLimiter
}

// Option configures an Adapter beyond its Config.
type Option func(*Adapter)

// WithLogger attaches a logger; requests are logged at debug level and
// failures at warn level.
func WithLogger(log *logger.Logger) Option {
	return func(a *Adapter) {
		a.log = log.WithComponent("httpclient")
	}
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    logger.Nop(),
	}

	if cfg.CircuitBreaker != nil {
		a.cb = resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
	}
	if cfg.RateLimiter != nil {
		a.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// IsAvailable reports whether the adapter accepts requests. With a circuit
// breaker configured this is false while the circuit is open.
func (a *Adapter) IsAvailable(_ context.Context) bool {
	if a.cb != nil {
		return a.cb.State() != resilience.StateOpen
	}
	return true
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// Close releases resources held by the adapter.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// Do executes an HTTP request and returns the complete response.
// All failures are normalized to *Error here, once, for every caller.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	if a.config.Retry != nil {
		return resilience.Retry(ctx, *a.config.Retry, func() (*Response, error) {
			return a.doOnce(ctx, req)
		})
	}
	return a.doOnce(ctx, req)
}

// doOnce executes a single request through the rate limiter and circuit
// breaker.
func (a *Adapter) doOnce(ctx context.Context, req Request) (*Response, error) {
	if a.rl != nil {
		if err := a.rl.Wait(ctx); err != nil {
			return nil, a.classifyTransportError(ctx, err)
		}
	}

	if a.cb != nil {
		var resp *Response
		err := a.cb.Execute(func() error {
			var execErr error
			resp, execErr = a.executeRequest(ctx, req)
			return execErr
		})
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return nil, NewConnectionError(err)
		}
		return resp, err
	}

	return a.executeRequest(ctx, req)
}

// executeRequest builds, sends, and normalizes one HTTP round trip.
func (a *Adapter) executeRequest(ctx context.Context, req Request) (*Response, error) {
	httpReq, requestID, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		normalized := a.classifyTransportError(ctx, err)
		a.logRequest(req, requestID, 0, time.Since(start), normalized)
		return nil, normalized
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
		RequestID:  requestID,
	}

	// Branch before handing the *Error to logRequest: a nil *Error in an
	// error interface is non-nil.
	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		a.logRequest(req, requestID, resp.StatusCode, time.Since(start), classErr)
		return result, classErr
	}
	a.logRequest(req, requestID, resp.StatusCode, time.Since(start), nil)
	return result, nil
}

// classifyTransportError maps a no-response failure to cancelled, timeout,
// or connection.
func (a *Adapter) classifyTransportError(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return NewCancelledError(err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return NewTimeoutError(err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// buildRequest constructs an *http.Request from the adapter config and the
// request. Returns the generated request ID alongside.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, string, error) {
	url := req.Path
	if !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, "", NewValidationError(fmt.Sprintf("encode body: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, "", NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, vs := range req.Query {
			q.Del(k)
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	// Default headers first, then request headers override.
	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", a.config.UserAgent)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-Id", requestID)

	// Request-level auth overrides adapter-level.
	auth := a.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, requestID, nil
}

// logRequest writes one line per round trip.
func (a *Adapter) logRequest(req Request, requestID string, status int, d time.Duration, err error) {
	fields := logger.Fields(
		logger.FieldRequestID, requestID,
		"method", req.Method,
		"path", req.Path,
		logger.FieldStatus, status,
		logger.FieldDuration, d.Milliseconds(),
	)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		a.log.Warn("request failed", fields)
		return
	}
	a.log.Debug("request completed", fields)
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
