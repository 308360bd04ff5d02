package audit

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewIDUnique(t *testing.T) {
	a := NewID()
	b := NewID()
	if !strings.HasPrefix(a, "audit-") {
		t.Fatalf("expected audit- prefix, got %q", a)
	}
	if a == b {
		t.Fatalf("expected unique ids, got %q twice", a)
	}
}

func TestDigestJSON(t *testing.T) {
	if got := DigestJSON(nil); got != "" {
		t.Fatalf("expected empty digest for empty payload, got %q", got)
	}
	first := DigestJSON([]byte(`{"birthdate":"30/06/1986"}`))
	second := DigestJSON([]byte(`{"birthdate":"30/06/1986"}`))
	if first != second {
		t.Fatalf("expected stable digest, got %q and %q", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected forwarded ip, got %q", got)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.4")
	if got := ClientIP(req); got != "198.51.100.4" {
		t.Fatalf("expected real ip, got %q", got)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.9:4455"
	if got := ClientIP(req); got != "192.0.2.9" {
		t.Fatalf("expected remote host, got %q", got)
	}
}
