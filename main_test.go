package main

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/numerology")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg := loadConfig()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default ttl 24h, got %s", cfg.TokenTTL)
	}
	if cfg.SkipSubdomains != "admin,www" {
		t.Fatalf("expected default skip subdomains, got %q", cfg.SkipSubdomains)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/numerology")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "2h")

	cfg := loadConfig()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.HTTPAddr)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("expected 2h ttl, got %s", cfg.TokenTTL)
	}
}

func TestGetenvDurationInvalid(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	if got := getenvDuration("TOKEN_TTL", time.Hour); got != time.Hour {
		t.Fatalf("expected fallback 1h, got %s", got)
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" admin, www ,, portal ")
	want := []string{"admin", "www", "portal"}
	if len(got) != len(want) {
		t.Fatalf("expected %d parts, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("part %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if splitCSV("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
