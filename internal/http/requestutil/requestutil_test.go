package requestutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	generated := NewRequestID()
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected uuid request id, got %s", generated)
	}
	if SanitizeRequestID(generated) != generated {
		t.Fatalf("expected generated ids to pass validation")
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	if got := NewRequestID(); got == "" || SanitizeRequestID(got) != got {
		t.Fatalf("expected valid fallback request id, got %q", got)
	}
}

func TestRequestIDContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "from-header")
	if got := RequestID(req); got != "from-header" {
		t.Fatalf("expected header fallback, got %s", got)
	}
	req = req.WithContext(WithRequestID(req.Context(), "abc123"))
	if got := RequestID(req); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
	if RequestID(nil) != "" {
		t.Fatalf("expected empty id for nil request")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}
