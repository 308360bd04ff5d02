package numerology

import (
	"testing"
	"time"
)

func TestParseBirthDate(t *testing.T) {
	birth, err := ParseBirthDate("30/06/1986")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if birth.Day != 30 || birth.Month != 6 || birth.Year != 1986 {
		t.Fatalf("unexpected birthdate: %+v", birth)
	}
}

func TestParseBirthDateLeapDay(t *testing.T) {
	if _, err := ParseBirthDate("29/02/2000"); err != nil {
		t.Fatalf("29/02/2000 must validate: %v", err)
	}
}

func TestParseBirthDateRejects(t *testing.T) {
	cases := []string{
		"31/02/1990",
		"29/02/1999",
		"00/06/1986",
		"30/13/1986",
		"30/06/1899",
		"30/06/2101",
		"30-06-1986",
		"30/06",
		"aa/06/1986",
	}
	for _, input := range cases {
		_, err := ParseBirthDate(input)
		if err == nil {
			t.Fatalf("expected %q to fail validation", input)
		}
		if !IsValidation(err) {
			t.Fatalf("expected ValidationError for %q, got %v", input, err)
		}
	}
}

func TestAnniversaryLeapDaySubstitution(t *testing.T) {
	birth, err := ParseBirthDate("29/02/2000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	nonLeap := birth.Anniversary(2025)
	want := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !nonLeap.Equal(want) {
		t.Fatalf("non-leap anniversary = %s, want %s", nonLeap, want)
	}
	leap := birth.Anniversary(2024)
	want = time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !leap.Equal(want) {
		t.Fatalf("leap anniversary = %s, want %s", leap, want)
	}
}

func TestBirthDateString(t *testing.T) {
	birth, _ := ParseBirthDate("05/01/1990")
	if got := birth.String(); got != "05/01/1990" {
		t.Fatalf("String() = %q", got)
	}
}
