package numerology

// CoreNumbers holds the reduced numbers derived from a birthdate.
// Every field is the result of iterative digit-reduction and lies in [1,9].
type CoreNumbers struct {
	Root    int
	Month   int
	Year    int
	Destiny int
}

// ComputeCoreNumbers derives Root, Month, Year and Destiny numbers.
// Destiny sums the already-reduced components, not the raw date parts.
func ComputeCoreNumbers(birth BirthDate) CoreNumbers {
	root := ReduceToSingle(birth.Day)
	month := ReduceToSingle(birth.Month)
	year := ReduceToSingle(birth.Year)
	return CoreNumbers{
		Root:    root,
		Month:   month,
		Year:    year,
		Destiny: ReduceToSingle(root + month + year),
	}
}

// BasicNumbers returns the [reduced day, reduced two-digit year] pair used
// by the extended overlay rules.
func BasicNumbers(day, year int) [2]int {
	return [2]int{ReduceToSingle(day), ReduceToSingle(year % 100)}
}

// PersonalYear derives the personal year number for a target year.
func PersonalYear(birthMonth, birthDay, targetYear int) int {
	return ReduceToSingle(birthMonth + birthDay + ReduceToSingle(targetYear))
}

// PersonalMonth derives the personal month number. It is display-only and
// never added to any grid count.
func PersonalMonth(personalYear, calendarMonth int) int {
	return ReduceToSingle(personalYear + calendarMonth)
}
