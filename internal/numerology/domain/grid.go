package numerology

import "strings"

// loShuPositions maps each number 1-9 to its fixed (row, col) cell in the
// Lo Shu layout:
//
//	[3,1,9]
//	[6,7,5]
//	[2,8,4]
var loShuPositions = map[int][2]int{
	1: {0, 1},
	2: {2, 0},
	3: {0, 0},
	4: {2, 2},
	5: {1, 2},
	6: {1, 0},
	7: {1, 1},
	8: {2, 1},
	9: {0, 2},
}

// Grid is a digit-frequency grid over the numbers 1-9. The zero value is an
// empty grid; copying a Grid copies its counts, so overlay composition works
// by plain assignment.
type Grid struct {
	counts [10]int
}

// GridFromDigits folds a digit multiset into a grid. Order is irrelevant,
// only counts matter. Values outside 1-9 are ignored.
func GridFromDigits(digits []int) Grid {
	var grid Grid
	for _, digit := range digits {
		grid.Add(digit)
	}
	return grid
}

// Add increments the count for a number 1-9.
func (g *Grid) Add(number int) {
	if number >= 1 && number <= 9 {
		g.counts[number]++
	}
}

// Count returns the occurrence count for a number.
func (g Grid) Count(number int) int {
	if number < 1 || number > 9 {
		return 0
	}
	return g.counts[number]
}

// Total returns the total cell population across all numbers.
func (g Grid) Total() int {
	total := 0
	for number := 1; number <= 9; number++ {
		total += g.counts[number]
	}
	return total
}

// Cell renders the display string for a number: the number's character
// repeated count times, or empty when the count is 0.
func (g Grid) Cell(number int) string {
	count := g.Count(number)
	if count == 0 {
		return ""
	}
	return strings.Repeat(string(rune('0'+number)), count)
}

// Dict returns the sparse number-to-string representation, omitting
// numbers with a zero count.
func (g Grid) Dict() map[int]string {
	dict := make(map[int]string)
	for number := 1; number <= 9; number++ {
		if cell := g.Cell(number); cell != "" {
			dict[number] = cell
		}
	}
	return dict
}

// Array renders the fixed 3x3 Lo Shu array. Empty cells are nil.
func (g Grid) Array() [3][3]*string {
	var result [3][3]*string
	for number := 1; number <= 9; number++ {
		if cell := g.Cell(number); cell != "" {
			pos := loShuPositions[number]
			value := cell
			result[pos[0]][pos[1]] = &value
		}
	}
	return result
}

// NatalDigits builds the digit multiset for the natal grid: day digits,
// month digits, year digits (last two), the destiny digit, and the root.
//
// The psychic-extra rule controls where the root comes from: for a
// two-digit day not ending in 0 the root is appended separately after the
// destiny digit; otherwise it rides along with the day digits. The
// resulting multiset is identical either way, the branch only changes
// provenance order.
func NatalDigits(birth BirthDate, destiny int) []int {
	root := ReduceToSingle(birth.Day)
	psychicExtra := birth.Day >= 10 && birth.Day%10 != 0

	var digits []int
	digits = append(digits, dayDigits(birth.Day, !psychicExtra)...)
	digits = append(digits, splitDigits(birth.Month)...)
	digits = append(digits, splitDigits(birth.Year%100)...)
	digits = append(digits, destiny)
	if psychicExtra {
		digits = append(digits, root)
	}
	return digits
}

// NatalGrid builds the natal grid for a birthdate and destiny number.
func NatalGrid(birth BirthDate, destiny int) Grid {
	return GridFromDigits(NatalDigits(birth, destiny))
}

func dayDigits(day int, includeRoot bool) []int {
	digits := splitDigits(day)
	if includeRoot {
		digits = append(digits, ReduceToSingle(day))
	}
	return digits
}

// splitDigits returns the nonzero tens and ones digits of a two-digit value.
func splitDigits(value int) []int {
	var digits []int
	if tens := value / 10; tens > 0 {
		digits = append(digits, tens)
	}
	if ones := value % 10; ones > 0 {
		digits = append(digits, ones)
	}
	return digits
}
