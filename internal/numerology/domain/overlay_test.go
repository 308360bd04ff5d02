package numerology

import "testing"

func TestAnnualGridAlwaysAdds(t *testing.T) {
	natal := GridFromDigits([]int{3, 3, 6})
	annual := AnnualGrid(natal, 6, 8)

	// Maha and antar are always added, even for 6 and 8 which are outside
	// the overlay-active set.
	if got := annual.Count(6); got != 2 {
		t.Fatalf("count(6) = %d, want 2", got)
	}
	if got := annual.Count(8); got != 1 {
		t.Fatalf("count(8) = %d, want 1", got)
	}
	if got := annual.Total(); got != natal.Total()+2 {
		t.Fatalf("total = %d, want %d", got, natal.Total()+2)
	}
	// The natal grid itself stays untouched.
	if got := natal.Count(6); got != 1 {
		t.Fatalf("natal mutated: count(6) = %d", got)
	}
}

func TestExtendedBaseGridActiveSet(t *testing.T) {
	natal := GridFromDigits([]int{1, 6, 8})

	// Maha 8 is always added; personal year 6 and basic 8 are filtered out;
	// basic 4 is overlay-active and added.
	base := ExtendedBaseGrid(natal, 8, 6, [2]int{8, 4})
	if got := base.Count(8); got != 2 {
		t.Fatalf("count(8) = %d, want 2 (maha added, basic filtered)", got)
	}
	if got := base.Count(6); got != 1 {
		t.Fatalf("count(6) = %d, want 1 (personal year filtered)", got)
	}
	if got := base.Count(4); got != 1 {
		t.Fatalf("count(4) = %d, want 1", got)
	}
	if got := base.Total(); got != natal.Total()+2 {
		t.Fatalf("total = %d, want %d", got, natal.Total()+2)
	}
}

func TestPeriodGridAddsPratyantar(t *testing.T) {
	annual := GridFromDigits([]int{2, 2, 8})

	// Pratyantar is always added, no active-set filter.
	period := PeriodGrid(annual, 8)
	if got := period.Count(8); got != 2 {
		t.Fatalf("count(8) = %d, want 2", got)
	}
	if got := period.Total(); got != annual.Total()+1 {
		t.Fatalf("total = %d, want %d", got, annual.Total()+1)
	}
}

func TestOverlayActiveSet(t *testing.T) {
	for _, number := range []int{1, 2, 3, 4, 5, 7, 9} {
		if !OverlayActive(number) {
			t.Fatalf("%d must be overlay-active", number)
		}
	}
	for _, number := range []int{6, 8} {
		if OverlayActive(number) {
			t.Fatalf("%d must not be overlay-active", number)
		}
	}
}
