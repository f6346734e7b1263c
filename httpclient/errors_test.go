package httpclient

import (
	"errors"
	"testing"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCode  ErrorCode
		retryable bool
	}{
		{"unauthorized", 401, ErrCodeAuth, false},
		{"forbidden", 403, ErrCodeAuth, false},
		{"not found", 404, ErrCodeNotFound, false},
		{"rate limited", 429, ErrCodeRateLimit, true},
		{"bad request", 400, ErrCodeValidation, false},
		{"conflict", 409, ErrCodeValidation, false},
		{"server error", 500, ErrCodeServer, true},
		{"bad gateway", 502, ErrCodeServer, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ClassifyStatusCode(tc.status, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Code != tc.wantCode {
				t.Errorf("code = %v, want %v", err.Code, tc.wantCode)
			}
			if err.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", err.StatusCode, tc.status)
			}
			if err.Retryable != tc.retryable {
				t.Errorf("retryable = %v, want %v", err.Retryable, tc.retryable)
			}
		})
	}
}

func TestClassifyStatusCode2xxIsNil(t *testing.T) {
	for _, status := range []int{200, 201, 204, 299} {
		if err := ClassifyStatusCode(status, nil); err != nil {
			t.Errorf("status %d: expected nil, got %v", status, err)
		}
	}
}

func TestMessageFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"title is required"}`, "title is required"},
		{"error field", `{"error":"bad input"}`, "bad input"},
		{"message preferred over error", `{"message":"m","error":"e"}`, "m"},
		{"non-json body", `<html>oops</html>`, "HTTP 400"},
		{"empty body", ``, "HTTP 400"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := messageFromBody([]byte(tc.body), 400); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	httpErr := ClassifyStatusCode(404, nil)
	connErr := NewConnectionError(errors.New("refused"))
	cancelErr := NewCancelledError(errors.New("ctx"))

	if !IsHTTPError(httpErr) || IsHTTPError(connErr) {
		t.Error("IsHTTPError misclassified")
	}
	if !IsTransport(connErr) || IsTransport(httpErr) {
		t.Error("IsTransport misclassified")
	}
	if !IsCancelled(cancelErr) || IsCancelled(connErr) {
		t.Error("IsCancelled misclassified")
	}
	if StatusCode(httpErr) != 404 || StatusCode(connErr) != 0 {
		t.Error("StatusCode misreported")
	}
}

func TestErrorStringFormat(t *testing.T) {
	e := ClassifyStatusCode(404, []byte(`{"message":"gone"}`))
	want := "httpclient: not_found (HTTP 404): gone"
	if e.Error() != want {
		t.Errorf("got %q, want %q", e.Error(), want)
	}
}
