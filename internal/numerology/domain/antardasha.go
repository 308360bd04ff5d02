package numerology

import "time"

// weekdayPlanets maps a weekday to its planet number. The table never
// changes and is never mutated.
var weekdayPlanets = map[time.Weekday]int{
	time.Sunday:    1,
	time.Monday:    2,
	time.Tuesday:   9,
	time.Wednesday: 5,
	time.Thursday:  3,
	time.Friday:    6,
	time.Saturday:  8,
}

// WeekdayPlanet returns the planet number for the date's weekday.
func WeekdayPlanet(date time.Time) int {
	return weekdayPlanets[date.Weekday()]
}

// Antardasha derives the per-year overlay number from the review date's
// weekday planet, the two-digit year, the birth root and the raw birth
// month (1-12, not reduced). The review date is the birthday projected
// into the target year.
func Antardasha(year, month int, reviewDate time.Time, root int) int {
	total := WeekdayPlanet(reviewDate) + year%100 + root + month
	return ReduceToSingle(total)
}
