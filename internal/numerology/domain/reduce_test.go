package numerology

import "testing"

func TestDigitSum(t *testing.T) {
	cases := []struct {
		input int
		want  int
	}{
		{0, 0},
		{7, 7},
		{24, 6},
		{1986, 24},
		{999, 27},
	}
	for _, tc := range cases {
		if got := DigitSum(tc.input); got != tc.want {
			t.Fatalf("DigitSum(%d) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestReduceToSingle(t *testing.T) {
	cases := []struct {
		input int
		want  int
	}{
		{24, 6},
		{30, 3},
		{9, 9},
		{11, 2},
		{22, 4},
		{1986, 6},
		{0, 0},
	}
	for _, tc := range cases {
		if got := ReduceToSingle(tc.input); got != tc.want {
			t.Fatalf("ReduceToSingle(%d) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestReduceToSingleRange(t *testing.T) {
	for n := 1; n <= 10000; n++ {
		got := ReduceToSingle(n)
		if got < 1 || got > 9 {
			t.Fatalf("ReduceToSingle(%d) = %d, out of [1,9]", n, got)
		}
	}
}
