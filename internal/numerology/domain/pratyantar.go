package numerology

import "time"

// daysPerCycleUnit is the day length multiplier for pratyantar periods:
// a period with cycle value n spans n*8 days.
const daysPerCycleUnit = 8

// PratyantarPeriod is one sub-year period. Multi is the cycle value (and
// the period's pratyantar number); Start and End are inclusive days.
type PratyantarPeriod struct {
	Multi        int
	Start        time.Time
	End          time.Time
	DurationDays int
}

// GeneratePratyantarPeriods subdivides the birthday-to-birthday year
// starting in targetYear into variable-length periods. The cycle seeds at
// the year's Antardasha value and advances 9->1->2->...->9. A period is
// emitted only when its full multi*8 day span fits before the next
// birthday; the trailing remainder is discarded.
func GeneratePratyantarPeriods(targetYear int, birth BirthDate, root int) []PratyantarPeriod {
	yearBirthday := birth.Anniversary(targetYear)
	nextBirthday := birth.Anniversary(targetYear + 1)
	cycle := Antardasha(targetYear, birth.Month, yearBirthday, root)

	var periods []PratyantarPeriod
	current := yearBirthday
	for current.Before(nextBirthday) {
		required := cycle * daysPerCycleUnit
		if daysBetween(current, nextBirthday) < required {
			break
		}

		end := current.AddDate(0, 0, required-1)
		duration := required
		// Defensive clamp; unreachable given the guard above.
		if !end.Before(nextBirthday) {
			end = nextBirthday.AddDate(0, 0, -1)
			duration = daysBetween(current, end) + 1
			if duration < required {
				break
			}
		}

		periods = append(periods, PratyantarPeriod{
			Multi:        cycle,
			Start:        current,
			End:          end,
			DurationDays: duration,
		})

		current = end.AddDate(0, 0, 1)
		if cycle == 9 {
			cycle = 1
		} else {
			cycle++
		}
	}
	return periods
}
