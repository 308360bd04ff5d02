package numerology

// DigitSum sums the decimal digits of a non-negative integer.
func DigitSum(number int) int {
	sum := 0
	for number > 0 {
		sum += number % 10
		number /= 10
	}
	return sum
}

// ReduceToSingle repeatedly applies DigitSum until the value is below 10.
// Master numbers (11, 22, ...) are reduced like any other value. An input
// of 0 stays 0; calendar components never produce it.
func ReduceToSingle(number int) int {
	for number >= 10 {
		number = DigitSum(number)
	}
	return number
}
