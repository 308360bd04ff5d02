package numerology

// overlayActive is the set of numbers eligible for conditional overlay
// additions. 6 and 8 are excluded and keep their natal-only count.
var overlayActive = map[int]bool{
	1: true, 2: true, 3: true, 4: true, 5: true, 7: true, 9: true,
}

// OverlayActive reports whether a number belongs to the overlay-active set.
func OverlayActive(number int) bool {
	return overlayActive[number]
}

// AnnualGrid layers one year's numbers over the natal grid. Mahadasha and
// Antardasha are always added, with no active-set filtering.
func AnnualGrid(natal Grid, maha, antar int) Grid {
	grid := natal
	grid.Add(maha)
	grid.Add(antar)
	return grid
}

// ExtendedBaseGrid builds the extended base used for period-level readings:
// the Mahadasha is always added; the Personal Year and each Basic Number
// are added only when overlay-active.
func ExtendedBaseGrid(natal Grid, maha, personalYear int, basics [2]int) Grid {
	grid := natal
	grid.Add(maha)
	if OverlayActive(personalYear) {
		grid.Add(personalYear)
	}
	for _, basic := range basics {
		if OverlayActive(basic) {
			grid.Add(basic)
		}
	}
	return grid
}

// PeriodGrid adds exactly one occurrence of the period's pratyantar number
// on top of the annual grid. The pratyantar is always added.
func PeriodGrid(annual Grid, pratyantar int) Grid {
	grid := annual
	grid.Add(pratyantar)
	return grid
}
