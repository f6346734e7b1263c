package httpclient

import "net/url"

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PATCH, PUT, DELETE).
	Method string
	// Path is appended to the adapter's BaseURL. Can be a full URL.
	Path string
	// Headers are request-specific headers (merged over adapter defaults).
	Headers map[string]string
	// Query are URL query parameters. Multi-value keys are preserved, so
	// repeated-key encodings (id=1&id=2) work.
	Query url.Values
	// Body is the request body. Accepts io.Reader, []byte, string, or any
	// value that will be JSON-encoded.
	Body any
	// Auth overrides the adapter-level auth for this request.
	Auth *AuthConfig
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
	// RequestID is the X-Request-Id the adapter stamped on the request.
	RequestID string
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Header returns a response header value, or "" when absent.
func (r *Response) Header(key string) string {
	return r.Headers[key]
}
