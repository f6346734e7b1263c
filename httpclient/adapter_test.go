package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/restdata/logger"
	"github.com/kbukum/restdata/resilience"
)

func TestAdapterDoGET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/posts/123" {
			t.Errorf("expected /posts/123, got %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("expected X-Request-Id header")
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "restdata/") {
			t.Errorf("unexpected User-Agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"title": "hello"})
	}))
	defer srv.Close()

	a, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/posts/123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !resp.IsSuccess() {
		t.Error("expected IsSuccess=true")
	}
	if resp.RequestID == "" {
		t.Error("expected RequestID to be set")
	}
}

func TestAdapterMultiValueQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := r.URL.Query()["id"]
		if len(ids) != 3 {
			t.Errorf("expected 3 id values, got %v", ids)
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	_, err := a.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/posts",
		Query:  url.Values{"id": {"1", "2", "3"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapterHeaderMerge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Tenant"); got != "acme" {
			t.Errorf("X-Tenant = %q, want acme", got)
		}
		// Request header overrides the adapter default.
		if got := r.Header.Get("Accept"); got != "application/xml" {
			t.Errorf("Accept = %q, want application/xml", got)
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	a, _ := New(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Tenant": "acme", "Accept": "application/json"},
	})
	_, err := a.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/posts",
		Headers: map[string]string{"Accept": "application/xml"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapterNon2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		json.NewEncoder(w).Encode(map[string]string{"message": "post not found"})
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/posts/999"})
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not-found classification, got %v", err)
	}
	if StatusCode(err) != 404 {
		t.Errorf("status = %d, want 404", StatusCode(err))
	}
	if !strings.Contains(err.Error(), "post not found") {
		t.Errorf("expected backend message in error, got %q", err.Error())
	}
	// The response is still returned alongside the error.
	if resp == nil || resp.StatusCode != 404 {
		t.Error("expected response to accompany the error")
	}
}

func TestAdapterConnectionRefusedIsTransport(t *testing.T) {
	a, _ := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	_, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/posts"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTransport(err) {
		t.Errorf("expected transport classification, got %v", err)
	}
	if StatusCode(err) != 0 {
		t.Errorf("status = %d, want 0 for no-response failure", StatusCode(err))
	}
}

func TestAdapterCancelledContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	a, _ := New(Config{BaseURL: srv.URL})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := a.Do(ctx, Request{Method: http.MethodGet, Path: "/slow"})
	if !IsCancelled(err) {
		t.Fatalf("expected cancelled classification, got %v", err)
	}
}

func TestAdapterRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(500)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	retry := DefaultRetryConfig()
	retry.InitialBackoff = time.Millisecond
	a, _ := New(Config{BaseURL: srv.URL, Retry: retry})

	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/flaky"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 calls, got %d", got)
	}
}

func TestAdapterNoRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(500)
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	_, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/down"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected a single attempt, got %d", got)
	}
}

func TestAdapterCircuitBreakerOpens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	cb := DefaultCircuitBreakerConfig("test")
	cb.MaxFailures = 2
	a, _ := New(Config{BaseURL: srv.URL, CircuitBreaker: cb})

	ctx := context.Background()
	req := Request{Method: http.MethodGet, Path: "/down"}
	a.Do(ctx, req)
	a.Do(ctx, req)

	if a.IsAvailable(ctx) {
		t.Error("expected adapter unavailable with open circuit")
	}
	// The open circuit surfaces as a typed transport error, with the
	// underlying cause still reachable.
	_, err := a.Do(ctx, req)
	if !IsTransport(err) {
		t.Errorf("expected transport classification, got %v", err)
	}
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Errorf("expected circuit-open cause, got %v", err)
	}
}

func TestAdapterLogsSuccessfulRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	a, err := New(Config{BaseURL: srv.URL}, WithLogger(logger.NewDefault("test")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/posts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Error("expected IsSuccess=true")
	}
}

func TestAdapterBearerAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL, Auth: BearerAuth("secret")})
	if _, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/p"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{BaseURL: "http://localhost", Timeout: time.Second}, false},
		{"missing base url", Config{Timeout: time.Second}, true},
		{"mismatched tls pair", Config{BaseURL: "http://localhost", Timeout: time.Second, TLS: &TLSConfig{CertFile: "a.pem"}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
