package numerology

import (
	"strconv"
	"strings"
	"time"
)

const (
	// BirthdateLayout is the accepted input format for birthdates.
	BirthdateLayout = "DD/MM/YYYY"

	minBirthYear = 1900
	maxBirthYear = 2100
)

// BirthDate is a validated Gregorian calendar date.
type BirthDate struct {
	Day   int
	Month int
	Year  int
}

// ParseBirthDate parses and validates a DD/MM/YYYY birthdate string.
func ParseBirthDate(value string) (BirthDate, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return BirthDate{}, validationErrorf("birthdate must be in %s format", BirthdateLayout)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return BirthDate{}, validationErrorf("birthdate day %q is not a number", parts[0])
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return BirthDate{}, validationErrorf("birthdate month %q is not a number", parts[1])
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return BirthDate{}, validationErrorf("birthdate year %q is not a number", parts[2])
	}
	if day < 1 || day > 31 {
		return BirthDate{}, validationErrorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return BirthDate{}, validationErrorf("month must be between 1 and 12")
	}
	if year < minBirthYear || year > maxBirthYear {
		return BirthDate{}, validationErrorf("year must be between %d and %d", minBirthYear, maxBirthYear)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return BirthDate{}, validationErrorf("%02d/%02d/%04d is not a valid calendar date", day, month, year)
	}
	return BirthDate{Day: day, Month: month, Year: year}, nil
}

// Time returns the birthdate as a UTC midnight time.Time.
func (b BirthDate) Time() time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
}

// Anniversary projects the birthday into the given year. A Feb-29 birthday
// is substituted with Feb-28 when the target year is not a leap year.
func (b BirthDate) Anniversary(year int) time.Time {
	return anniversaryDate(year, b.Month, b.Day)
}

// String formats the birthdate as DD/MM/YYYY.
func (b BirthDate) String() string {
	return formatDayMonthYear(b.Time())
}

func anniversaryDate(year, month, day int) time.Time {
	if month == 2 && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func formatDayMonthYear(t time.Time) string {
	return t.Format("02/01/2006")
}

// daysBetween counts whole days from a to b at calendar-day resolution.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
