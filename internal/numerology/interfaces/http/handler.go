package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stiwari2004/numerology/internal/audit"
	"github.com/stiwari2004/numerology/internal/auth"
	"github.com/stiwari2004/numerology/internal/numerology/application"
	numerology "github.com/stiwari2004/numerology/internal/numerology/domain"
)

// Handler provides numerology HTTP endpoints.
type Handler struct {
	service     *application.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *application.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("numerology handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes /api/v1/numerology/* requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/numerology/calculate" && r.Method == http.MethodPost:
		h.handleCalculate(w, r)
	case r.URL.Path == "/api/v1/numerology/monthly-grids" && r.Method == http.MethodPost:
		h.handleMonthlyGrids(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req application.FullProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	profile, err := h.service.CalculateFullProfile(r.Context(), req)
	if err != nil {
		respondProfileError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profile)

	h.logAudit(r, audit.ActionCalculate, profile.Birthdate, body)
}

func (h *Handler) handleMonthlyGrids(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req application.MonthlyGridsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	result, err := h.service.CalculateMonthlyGrids(r.Context(), req)
	if err != nil {
		respondProfileError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)

	h.logAudit(r, audit.ActionMonthlyGrids, result.Birthdate, body)
}

func (h *Handler) logAudit(r *http.Request, action, birthdate string, payload []byte) {
	if h.auditLogger == nil {
		return
	}
	entry := audit.Entry{
		TenantID:     auth.TenantIDFromContext(r.Context()),
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "profile",
		ResourceID:   birthdate,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}

func respondProfileError(w http.ResponseWriter, err error) {
	if numerology.IsValidation(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "calculation failed", http.StatusInternalServerError)
}
