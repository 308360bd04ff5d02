package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/stiwari2004/numerology/internal/audit"
	"github.com/stiwari2004/numerology/internal/auth"
	"github.com/stiwari2004/numerology/internal/numerology/application"
	"github.com/stiwari2004/numerology/internal/observability/metrics"
)

// ExportHandler renders full profiles as downloadable files.
type ExportHandler struct {
	service     *application.Service
	auditLogger audit.Logger
}

// NewExportHandler constructs an export handler.
func NewExportHandler(service *application.Service, auditLogger audit.Logger) (*ExportHandler, error) {
	if service == nil {
		return nil, errors.New("numerology export handler: nil service")
	}
	return &ExportHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles GET /api/v1/numerology/export.{xlsx,pdf}.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var format string
	switch r.URL.Path {
	case "/api/v1/numerology/export.xlsx":
		format = "xlsx"
	case "/api/v1/numerology/export.pdf":
		format = "pdf"
	default:
		http.Error(w, "unknown export format", http.StatusNotFound)
		return
	}

	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport(format, result, time.Since(start))
	}()

	req := application.FullProfileRequest{Birthdate: r.URL.Query().Get("birthdate")}
	if v, ok := intQuery(r, "start_year"); ok {
		req.StartYear = &v
	}
	if v, ok := intQuery(r, "end_year"); ok {
		req.EndYear = &v
	}

	profile, err := h.service.CalculateFullProfile(r.Context(), req)
	if err != nil {
		result = metrics.ResultError
		respondProfileError(w, err)
		return
	}

	var payload []byte
	var contentType string
	switch format {
	case "xlsx":
		payload, err = BuildProfileXLSX(profile)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		payload, err = BuildProfilePDF(profile)
		contentType = "application/pdf"
	}
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("numerology-profile-%d-%d.%s", profile.StartYear, profile.EndYear, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(payload)

	h.logAudit(r, profile.Birthdate, format)
}

func (h *ExportHandler) logAudit(r *http.Request, birthdate, format string) {
	if h.auditLogger == nil {
		return
	}
	entry := audit.Entry{
		TenantID:     auth.TenantIDFromContext(r.Context()),
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       audit.ActionExport,
		ResourceType: "profile",
		ResourceID:   birthdate,
		Metadata:     []byte(fmt.Sprintf(`{"format":%q}`, format)),
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}

func intQuery(r *http.Request, key string) (int, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, false
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil {
		return 0, false
	}
	return parsed, true
}

// BuildProfilePDF renders a minimal PDF for a full profile.
func BuildProfilePDF(profile *application.FullProfile) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Numerology Profile")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Birthdate: %s", profile.Birthdate))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Root Number: %d", profile.RootNumber))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Destiny Number: %d", profile.DestinyNumber))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Years: %d - %d", profile.StartYear, profile.EndYear))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, "Natal Grid")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	for _, row := range profile.NatalGrid {
		for _, cell := range row {
			value := ""
			if cell != nil {
				value = *cell
			}
			pdf.CellFormat(30, 8, value, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 6, "Year", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 6, "Period Start", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 6, "Period End", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Maha", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Antar", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, entry := range profile.YearGrids {
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", entry.Year), "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, entry.StartDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, entry.EndDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", entry.MahaNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", entry.AntarNumber), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildProfileXLSX renders a minimal XLSX for a full profile.
func BuildProfileXLSX(profile *application.FullProfile) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	yearsSheet := "years"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(yearsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Numerology Profile")
	_ = f.SetCellValue(summarySheet, "A3", "Birthdate")
	_ = f.SetCellValue(summarySheet, "B3", profile.Birthdate)
	_ = f.SetCellValue(summarySheet, "A4", "Root Number")
	_ = f.SetCellValue(summarySheet, "B4", profile.RootNumber)
	_ = f.SetCellValue(summarySheet, "A5", "Destiny Number")
	_ = f.SetCellValue(summarySheet, "B5", profile.DestinyNumber)
	_ = f.SetCellValue(summarySheet, "A6", "Start Year")
	_ = f.SetCellValue(summarySheet, "B6", profile.StartYear)
	_ = f.SetCellValue(summarySheet, "A7", "End Year")
	_ = f.SetCellValue(summarySheet, "B7", profile.EndYear)

	_ = f.SetCellValue(summarySheet, "A9", "Natal Grid")
	for i, row := range profile.NatalGrid {
		for j, cell := range row {
			if cell == nil {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(j+1, 10+i)
			if err != nil {
				return nil, err
			}
			_ = f.SetCellValue(summarySheet, ref, *cell)
		}
	}

	headers := []string{"Year", "Period Start", "Period End", "Maha", "Antar"}
	for i, header := range headers {
		ref, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(yearsSheet, ref, header)
	}
	for i, entry := range profile.YearGrids {
		row := i + 2
		_ = f.SetCellValue(yearsSheet, fmt.Sprintf("A%d", row), entry.Year)
		_ = f.SetCellValue(yearsSheet, fmt.Sprintf("B%d", row), entry.StartDate)
		_ = f.SetCellValue(yearsSheet, fmt.Sprintf("C%d", row), entry.EndDate)
		_ = f.SetCellValue(yearsSheet, fmt.Sprintf("D%d", row), entry.MahaNumber)
		_ = f.SetCellValue(yearsSheet, fmt.Sprintf("E%d", row), entry.AntarNumber)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
