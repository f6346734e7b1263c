// Package httpclient provides the transport layer for restdata: a
// configurable HTTP adapter with authentication, TLS, opt-in resilience
// (retry, circuit breaker, rate limiting), and centralized error
// normalization.
//
// Every failure surfaces as a *Error. Backend failures (non-2xx) carry the
// status code and a message extracted from the response body; transport
// failures (DNS, connection, timeout) and caller cancellation carry a
// classification code and status 0. Callers never see transport-library
// error shapes.
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := adapter.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/posts/123",
//	})
package httpclient
