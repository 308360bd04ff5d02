package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	numerology "github.com/stiwari2004/numerology/internal/numerology/domain"
	"github.com/stiwari2004/numerology/internal/observability/metrics"
)

const (
	minQueryYear = 1900
	maxQueryYear = 2200

	isoDateLayout = "2006-01-02T15:04:05"
)

// ErrTimelineTooShort wraps Mahadasha lookup misses surfaced by the facade.
// It indicates the configured horizon was too small for the queried range.
var ErrTimelineTooShort = errors.New("numerology: timeline horizon too short")

// Service is the orchestration facade over the calculation engine. It is
// stateless; every call is a deterministic function of its inputs.
type Service struct {
	cfg    Config
	logger *log.Logger
}

// NewService constructs the facade.
func NewService(cfg Config, logger *log.Logger) (*Service, error) {
	if cfg.DefaultYearsAhead <= 0 || cfg.TimelineYears <= 0 || cfg.MaxYearSpan <= 0 {
		return nil, errors.New("numerology service: invalid config")
	}
	return &Service{cfg: cfg, logger: logger}, nil
}

// FullProfileRequest asks for a full profile over an optional year range.
type FullProfileRequest struct {
	Birthdate string `json:"birthdate"`
	StartYear *int   `json:"start_year,omitempty"`
	EndYear   *int   `json:"end_year,omitempty"`
}

// FullProfile is the result of a full-range calculation.
type FullProfile struct {
	Birthdate     string         `json:"birthdate"`
	Day           int            `json:"day"`
	Month         int            `json:"month"`
	Year          int            `json:"year"`
	RootNumber    int            `json:"root_number"`
	DestinyNumber int            `json:"destiny_number"`
	NatalGrid     [3][3]*string  `json:"natal_grid"`
	NatalGridDict map[int]string `json:"natal_grid_dict"`
	YearGrids     []YearEntry    `json:"year_grids"`
	StartYear     int            `json:"start_year"`
	EndYear       int            `json:"end_year"`
}

// YearEntry is one birthday-to-birthday year with its annual overlay grid.
type YearEntry struct {
	Year        int           `json:"year"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	StartYear   int           `json:"start_year"`
	EndYear     int           `json:"end_year"`
	MahaNumber  int           `json:"maha_number"`
	AntarNumber int           `json:"antar_number"`
	Grid        [3][3]*string `json:"grid"`
}

// CalculateFullProfile validates the birthdate and year range, then builds
// core numbers, the natal grid and one annual-overlay entry per year.
func (s *Service) CalculateFullProfile(ctx context.Context, req FullProfileRequest) (*FullProfile, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveCalculate(result, time.Since(start))
	}()

	profile, err := s.calculateFullProfile(ctx, req)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return profile, nil
}

func (s *Service) calculateFullProfile(_ context.Context, req FullProfileRequest) (*FullProfile, error) {
	birth, err := numerology.ParseBirthDate(req.Birthdate)
	if err != nil {
		return nil, err
	}
	startYear, endYear, err := s.resolveYearRange(birth, req.StartYear, req.EndYear)
	if err != nil {
		return nil, err
	}

	core := numerology.ComputeCoreNumbers(birth)
	natal := numerology.NatalGrid(birth, core.Destiny)

	yearsAhead := endYear - birth.Year + 10
	if yearsAhead < s.cfg.TimelineYears {
		yearsAhead = s.cfg.TimelineYears
	}
	timeline := numerology.GenerateMahadashaTimeline(birth, core.Root, yearsAhead)

	entries := make([]YearEntry, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		review := birth.Anniversary(year)
		maha, err := numerology.MahadashaAt(timeline, review)
		if err != nil {
			return nil, s.timelineFailure(err, review)
		}
		antar := numerology.Antardasha(year, birth.Month, review, core.Root)

		periodStart := review
		periodEnd := birth.Anniversary(year + 1).AddDate(0, 0, -1)
		annual := numerology.AnnualGrid(natal, maha, antar)

		entries = append(entries, YearEntry{
			Year:        year,
			StartDate:   periodStart.Format(isoDateLayout),
			EndDate:     periodEnd.Format(isoDateLayout),
			StartYear:   periodStart.Year(),
			EndYear:     periodEnd.Year(),
			MahaNumber:  maha,
			AntarNumber: antar,
			Grid:        annual.Array(),
		})
	}

	return &FullProfile{
		Birthdate:     birth.String(),
		Day:           birth.Day,
		Month:         birth.Month,
		Year:          birth.Year,
		RootNumber:    core.Root,
		DestinyNumber: core.Destiny,
		NatalGrid:     natal.Array(),
		NatalGridDict: natal.Dict(),
		YearGrids:     entries,
		StartYear:     startYear,
		EndYear:       endYear,
	}, nil
}

// MonthlyGridsRequest asks for sub-year period grids for one target year.
type MonthlyGridsRequest struct {
	Birthdate string `json:"birthdate"`
	Year      int    `json:"year"`
}

// MonthlyGridsResult carries the period entries for one birthday year.
type MonthlyGridsResult struct {
	Birthdate    string               `json:"birthdate"`
	Year         int                  `json:"year"`
	MonthlyGrids []MonthlyPeriodEntry `json:"monthly_grids"`
}

// MonthlyPeriodEntry is one pratyantar period with its grid. MahaNumber and
// the personal year/month are display-only; AntarNumber is the pratyantar
// value that is actually added to the grid.
type MonthlyPeriodEntry struct {
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	MonthName     string        `json:"month_name"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	DateRange     string        `json:"date_range"`
	MahaNumber    int           `json:"maha_number"`
	AntarNumber   int           `json:"antar_number"`
	PersonalYear  int           `json:"personal_year"`
	PersonalMonth int           `json:"personal_month"`
	Grid          [3][3]*string `json:"grid"`
}

// CalculateMonthlyGrids builds the pratyantar period grids for one year:
// natal (DOB-based) -> annual overlay for the target year -> +1 pratyantar
// per period.
func (s *Service) CalculateMonthlyGrids(ctx context.Context, req MonthlyGridsRequest) (*MonthlyGridsResult, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveMonthlyGrids(result, time.Since(start))
	}()

	grids, err := s.calculateMonthlyGrids(ctx, req)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return grids, nil
}

func (s *Service) calculateMonthlyGrids(_ context.Context, req MonthlyGridsRequest) (*MonthlyGridsResult, error) {
	birth, err := numerology.ParseBirthDate(req.Birthdate)
	if err != nil {
		return nil, err
	}
	if req.Year < minQueryYear || req.Year > maxQueryYear {
		return nil, &numerology.ValidationError{
			Reason: fmt.Sprintf("year must be between %d and %d", minQueryYear, maxQueryYear),
		}
	}

	core := numerology.ComputeCoreNumbers(birth)
	natal := numerology.NatalGrid(birth, core.Destiny)

	yearsAhead := req.Year - birth.Year + 10
	if yearsAhead < s.cfg.TimelineYears {
		yearsAhead = s.cfg.TimelineYears
	}
	timeline := numerology.GenerateMahadashaTimeline(birth, core.Root, yearsAhead)

	yearBirthday := birth.Anniversary(req.Year)
	maha, err := numerology.MahadashaAt(timeline, yearBirthday)
	if err != nil {
		return nil, s.timelineFailure(err, yearBirthday)
	}
	antar := numerology.Antardasha(req.Year, birth.Month, yearBirthday, core.Root)
	annual := numerology.AnnualGrid(natal, maha, antar)

	personalYear := numerology.PersonalYear(birth.Month, birth.Day, req.Year)

	periods := numerology.GeneratePratyantarPeriods(req.Year, birth, core.Root)
	entries := make([]MonthlyPeriodEntry, 0, len(periods))
	for i, period := range periods {
		periodMaha, err := numerology.MahadashaAt(timeline, period.Start)
		if err != nil {
			return nil, s.timelineFailure(err, period.Start)
		}
		grid := numerology.PeriodGrid(annual, period.Multi)

		entries = append(entries, MonthlyPeriodEntry{
			Year:          req.Year,
			Month:         i + 1,
			MonthName:     period.Start.Month().String(),
			StartDate:     period.Start.Format(isoDateLayout),
			EndDate:       period.End.Format(isoDateLayout),
			DateRange:     period.Start.Format("02/01/2006") + " to " + period.End.Format("02/01/2006"),
			MahaNumber:    periodMaha,
			AntarNumber:   period.Multi,
			PersonalYear:  personalYear,
			PersonalMonth: numerology.PersonalMonth(personalYear, int(period.Start.Month())),
			Grid:          grid.Array(),
		})
	}

	return &MonthlyGridsResult{
		Birthdate:    birth.String(),
		Year:         req.Year,
		MonthlyGrids: entries,
	}, nil
}

func (s *Service) resolveYearRange(birth numerology.BirthDate, startYear, endYear *int) (int, int, error) {
	start := birth.Year
	if startYear != nil {
		if *startYear < minQueryYear || *startYear > maxQueryYear {
			return 0, 0, &numerology.ValidationError{
				Reason: fmt.Sprintf("start_year must be between %d and %d", minQueryYear, maxQueryYear),
			}
		}
		start = *startYear
	}
	end := birth.Year + s.cfg.DefaultYearsAhead
	if endYear != nil {
		if *endYear < minQueryYear || *endYear > maxQueryYear {
			return 0, 0, &numerology.ValidationError{
				Reason: fmt.Sprintf("end_year must be between %d and %d", minQueryYear, maxQueryYear),
			}
		}
		end = *endYear
	}
	if end < start {
		return 0, 0, &numerology.ValidationError{Reason: "end_year must not precede start_year"}
	}
	if end-start > s.cfg.MaxYearSpan {
		return 0, 0, &numerology.ValidationError{
			Reason: fmt.Sprintf("year span must not exceed %d years", s.cfg.MaxYearSpan),
		}
	}
	return start, end, nil
}

func (s *Service) timelineFailure(err error, queried time.Time) error {
	if s.logger != nil {
		s.logger.Printf("mahadasha lookup failed for %s: %v", queried.Format("2006-01-02"), err)
	}
	return fmt.Errorf("%w: %v", ErrTimelineTooShort, err)
}
