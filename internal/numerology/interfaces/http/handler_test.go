package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stiwari2004/numerology/internal/audit"
	"github.com/stiwari2004/numerology/internal/numerology/application"
)

type recordingAuditLogger struct {
	entries []audit.Entry
}

func (l *recordingAuditLogger) Log(_ context.Context, entry audit.Entry) error {
	l.entries = append(l.entries, entry)
	return nil
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	logger := log.New(os.Stderr, "", log.LstdFlags)
	svc, err := application.NewService(application.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewHandler(svc, nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func TestCalculateEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"birthdate":"30/06/1986","start_year":2020,"end_year":2025}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/numerology/calculate", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var profile application.FullProfile
	if err := json.Unmarshal(resp.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if profile.RootNumber != 3 {
		t.Fatalf("expected root 3, got %d", profile.RootNumber)
	}
	if profile.DestinyNumber != 6 {
		t.Fatalf("expected destiny 6, got %d", profile.DestinyNumber)
	}
	if len(profile.YearGrids) != 6 {
		t.Fatalf("expected 6 year entries, got %d", len(profile.YearGrids))
	}
	if profile.StartYear != 2020 || profile.EndYear != 2025 {
		t.Fatalf("expected range 2020-2025, got %d-%d", profile.StartYear, profile.EndYear)
	}
}

func TestCalculateEndpointRejectsInvalidDate(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"birthdate":"31/02/1990"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/numerology/calculate", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCalculateEndpointRejectsInvalidJSON(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/numerology/calculate", strings.NewReader("{"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMonthlyGridsEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"birthdate":"26/02/1982","year":2024}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/numerology/monthly-grids", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result application.MonthlyGridsResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Year != 2024 {
		t.Fatalf("expected year 2024, got %d", result.Year)
	}
	if len(result.MonthlyGrids) == 0 {
		t.Fatalf("expected monthly grid entries")
	}
	for _, entry := range result.MonthlyGrids {
		if entry.DateRange == "" {
			t.Fatalf("expected date range on entry %+v", entry)
		}
	}
}

func TestAuditActionsRecorded(t *testing.T) {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	svc, err := application.NewService(application.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	sink := &recordingAuditLogger{}
	handler, err := NewHandler(svc, sink)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	exporter, err := NewExportHandler(svc, sink)
	if err != nil {
		t.Fatalf("new export handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/numerology/calculate", strings.NewReader(`{"birthdate":"30/06/1986","start_year":2020,"end_year":2021}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/numerology/monthly-grids", strings.NewReader(`{"birthdate":"30/06/1986","year":2024}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/numerology/export.pdf?birthdate=30/06/1986&start_year=2020&end_year=2021", nil)
	exporter.ServeHTTP(httptest.NewRecorder(), req)

	want := []string{audit.ActionCalculate, audit.ActionMonthlyGrids, audit.ActionExport}
	if len(sink.entries) != len(want) {
		t.Fatalf("expected %d audit entries, got %d", len(want), len(sink.entries))
	}
	for i, action := range want {
		if sink.entries[i].Action != action {
			t.Fatalf("entry %d: expected action %q, got %q", i, action, sink.entries[i].Action)
		}
		if sink.entries[i].ResourceID != "30/06/1986" {
			t.Fatalf("entry %d: expected birthdate resource, got %q", i, sink.entries[i].ResourceID)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/numerology/calculate", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func newTestExportHandler(t *testing.T) *ExportHandler {
	t.Helper()
	logger := log.New(os.Stderr, "", log.LstdFlags)
	svc, err := application.NewService(application.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewExportHandler(svc, nil)
	if err != nil {
		t.Fatalf("new export handler: %v", err)
	}
	return handler
}

func TestExportXLSX(t *testing.T) {
	handler := newTestExportHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/numerology/export.xlsx?birthdate=30/06/1986&start_year=2020&end_year=2022", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Fatalf("unexpected content type %q", got)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("PK")) {
		t.Fatalf("expected zip container for xlsx")
	}
}

func TestExportPDF(t *testing.T) {
	handler := newTestExportHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/numerology/export.pdf?birthdate=30/06/1986&start_year=2020&end_year=2022", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf header")
	}
}

func TestExportRejectsInvalidDate(t *testing.T) {
	handler := newTestExportHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/numerology/export.pdf?birthdate=99/99/1990", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
