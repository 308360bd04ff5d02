package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAuthMiddleware_NoToken(t *testing.T) {
	secret := []byte("test-secret")
	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/numerology/calculate", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddleware_ViewerForbiddenUserCreate(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "tenant-a", "viewer")
	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAuthMiddleware_ViewerAllowedCalculate(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "tenant-a", "viewer")
	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)

	var gotTenant string
	var gotRole Role
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = TenantIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/numerology/calculate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotTenant != "tenant-a" {
		t.Fatalf("expected tenant-a in context, got %q", gotTenant)
	}
	if gotRole != RoleViewer {
		t.Fatalf("expected viewer role in context, got %q", gotRole)
	}
}

func TestAuthMiddleware_ExemptPathSkipsAuth(t *testing.T) {
	secret := []byte("test-secret")
	policy := NewDefaultPolicy([]string{"/healthz"}, nil)
	mw := NewMiddleware(secret, policy)
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := Claims{
		TenantID: "tenant-a",
		Role:     "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	policy := NewDefaultPolicy(nil, nil)
	mw := NewMiddleware(secret, policy)
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/numerology/calculate", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestParseJWTReportsInvalidToken(t *testing.T) {
	secret := []byte("test-secret")

	if _, err := ParseJWT("", secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("empty token: expected ErrInvalidToken, got %v", err)
	}
	if _, err := ParseJWT("not.a.token", secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: expected ErrInvalidToken, got %v", err)
	}

	signed := mustToken(t, []byte("other-secret"), "tenant-a", "viewer")
	if _, err := ParseJWT(signed, secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: expected ErrInvalidToken, got %v", err)
	}

	signed = mustToken(t, secret, "tenant-a", "superuser")
	if _, err := ParseJWT(signed, secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("unknown role: expected ErrInvalidToken, got %v", err)
	}

	signed = mustToken(t, secret, "", "viewer")
	if _, err := ParseJWT(signed, secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("missing tenant: expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	signed, err := NewToken(secret, "tenant-a", RoleAdmin, "user-9", time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	claims, err := ParseJWT(signed, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.TenantID != "tenant-a" {
		t.Fatalf("expected tenant-a, got %q", claims.TenantID)
	}
	if claims.Role != string(RoleAdmin) {
		t.Fatalf("expected admin role, got %q", claims.Role)
	}
	if claims.Subject != "user-9" {
		t.Fatalf("expected subject user-9, got %q", claims.Subject)
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := VerifyPassword(hash, "correct-horse"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := VerifyPassword(hash, "wrong-horse"); err == nil {
		t.Fatalf("expected mismatch error, got nil")
	}
}

func mustToken(t *testing.T, secret []byte, tenantID, role string) string {
	t.Helper()
	claims := Claims{
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
