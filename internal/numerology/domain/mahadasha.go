package numerology

import (
	"fmt"
	"time"
)

// MahadashaPeriod is one major period of the cyclical timeline. The number
// cycles 1-9 wrapping 9 to 1, and the period spans that many years. Start
// and End are inclusive calendar days; consecutive periods are contiguous.
type MahadashaPeriod struct {
	Dasha int
	Start time.Time
	End   time.Time
}

// DurationYears returns the nominal span of the period in years.
func (p MahadashaPeriod) DurationYears() int {
	return p.Dasha
}

// Contains reports whether the period covers the given calendar day.
func (p MahadashaPeriod) Contains(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(p.Start) && !day.After(p.End)
}

// GenerateMahadashaTimeline produces contiguous periods from the birthdate
// until the horizon birthYear+yearsAhead. The first period carries the root
// number; each period lasts dashaNumber years minus one day, and the last
// period is clipped to the horizon if it would overshoot. Feb-29 boundaries
// substitute Feb-28 in non-leap years.
func GenerateMahadashaTimeline(birth BirthDate, root, yearsAhead int) []MahadashaPeriod {
	horizon := anniversaryDate(birth.Year+yearsAhead, birth.Month, birth.Day)

	var timeline []MahadashaPeriod
	current := birth.Time()
	dasha := root
	for current.Before(horizon) {
		end := anniversaryDate(current.Year()+dasha, int(current.Month()), current.Day()).AddDate(0, 0, -1)
		if end.After(horizon) {
			end = horizon
		}
		timeline = append(timeline, MahadashaPeriod{Dasha: dasha, Start: current, End: end})

		current = end.AddDate(0, 0, 1)
		dasha = dasha%9 + 1
	}
	return timeline
}

// MahadashaAt finds the dasha number active on the given date. Time of day
// is ignored. A miss means the timeline horizon was too short and is an
// internal consistency failure, not a user error.
func MahadashaAt(timeline []MahadashaPeriod, date time.Time) (int, error) {
	for _, period := range timeline {
		if period.Contains(date) {
			return period.Dasha, nil
		}
	}
	if len(timeline) == 0 {
		return 0, fmt.Errorf("%w: %s (empty timeline)", ErrNoMahadashaPeriod, date.Format("2006-01-02"))
	}
	return 0, fmt.Errorf("%w: %s (timeline covers %s to %s)",
		ErrNoMahadashaPeriod,
		date.Format("2006-01-02"),
		timeline[0].Start.Format("2006-01-02"),
		timeline[len(timeline)-1].End.Format("2006-01-02"))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
