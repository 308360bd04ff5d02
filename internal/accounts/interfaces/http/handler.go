package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/stiwari2004/numerology/internal/accounts/application"
	accounts "github.com/stiwari2004/numerology/internal/accounts/domain"
	"github.com/stiwari2004/numerology/internal/audit"
	"github.com/stiwari2004/numerology/internal/auth"
	tenancyhttp "github.com/stiwari2004/numerology/internal/tenancy/interfaces/http"
)

// AuthHandler provides register/login/me endpoints.
type AuthHandler struct {
	service     *application.Service
	auditLogger audit.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service *application.Service, auditLogger audit.Logger) (*AuthHandler, error) {
	if service == nil {
		return nil, errors.New("auth handler: nil service")
	}
	return &AuthHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes /api/v1/auth/* requests.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/auth/register" && r.Method == http.MethodPost:
		h.handleRegister(w, r)
	case r.URL.Path == "/api/v1/auth/login" && r.Method == http.MethodPost:
		h.handleLogin(w, r)
	case r.URL.Path == "/api/v1/auth/me" && r.Method == http.MethodGet:
		h.handleMe(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req application.RegisterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if tenant := tenancyhttp.TenantFromContext(r.Context()); tenant != nil {
		req.TenantID = tenant.ID
	}

	view, err := h.service.Register(r.Context(), req)
	if err != nil {
		respondAccountsError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(view)

	h.logAudit(r, view.TenantID, view.ID, audit.ActionUserRegister, "user", view.ID)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req application.LoginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if tenant := tenancyhttp.TenantFromContext(r.Context()); tenant != nil {
		req.TenantID = tenant.ID
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)

	h.logAudit(r, resp.User.TenantID, resp.User.ID, audit.ActionLogin, "user", resp.User.ID)
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.TenantIDFromContext(r.Context())
	subject := auth.SubjectFromContext(r.Context())
	if tenantID == "" || subject == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	view, err := h.service.Get(r.Context(), tenantID, subject)
	if err != nil {
		respondAccountsError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}

func (h *AuthHandler) logAudit(r *http.Request, tenantID, actor, action, resourceType, resourceID string) {
	if h.auditLogger == nil {
		return
	}
	entry := audit.Entry{
		TenantID:     tenantID,
		Actor:        actor,
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}

// UsersHandler provides user administration endpoints.
type UsersHandler struct {
	service     *application.Service
	auditLogger audit.Logger
}

// NewUsersHandler constructs a users handler.
func NewUsersHandler(service *application.Service, auditLogger audit.Logger) (*UsersHandler, error) {
	if service == nil {
		return nil, errors.New("users handler: nil service")
	}
	return &UsersHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes /api/v1/users requests.
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.TenantIDFromContext(r.Context())
	if tenantID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if r.URL.Path == "/api/v1/users" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r, tenantID)
		case http.MethodPost:
			h.handleCreate(w, r, tenantID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/users/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, tenantID, id)
	case http.MethodDelete:
		h.handleDeactivate(w, r, tenantID, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request, tenantID string) {
	views, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

func (h *UsersHandler) handleCreate(w http.ResponseWriter, r *http.Request, tenantID string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req application.RegisterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req.TenantID = tenantID

	view, err := h.service.Register(r.Context(), req)
	if err != nil {
		respondAccountsError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(view)

	h.logAudit(r, tenantID, audit.ActionUserCreate, view.ID)
}

func (h *UsersHandler) handleGet(w http.ResponseWriter, r *http.Request, tenantID, id string) {
	view, err := h.service.Get(r.Context(), tenantID, id)
	if err != nil {
		respondAccountsError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}

func (h *UsersHandler) handleDeactivate(w http.ResponseWriter, r *http.Request, tenantID, id string) {
	if err := h.service.Deactivate(r.Context(), tenantID, id); err != nil {
		respondAccountsError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)

	h.logAudit(r, tenantID, audit.ActionUserDeactivate, id)
}

func (h *UsersHandler) logAudit(r *http.Request, tenantID, action, resourceID string) {
	if h.auditLogger == nil {
		return
	}
	entry := audit.Entry{
		TenantID:     tenantID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "user",
		ResourceID:   resourceID,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}

func respondAccountsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounts.ErrDuplicateEmail):
		http.Error(w, "email already registered", http.StatusConflict)
	case errors.Is(err, accounts.ErrLicenseLimit):
		http.Error(w, "user license limit reached", http.StatusForbidden)
	case errors.Is(err, accounts.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
