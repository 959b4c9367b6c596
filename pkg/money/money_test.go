package money

import (
	"testing"
)

func TestFromPesos_Rounding(t *testing.T) {
	testCases := []struct {
		pesos float64
		want  Centavos
	}{
		{0, 0},
		{1, 100},
		{19.99, 1999},
		{0.005, 1},
		{10.004, 1000},
		{-2.50, -250},
		{1234.56, 123456},
	}

	for _, tc := range testCases {
		if got := FromPesos(tc.pesos); got != tc.want {
			t.Errorf("FromPesos(%v) = %d, want %d", tc.pesos, got, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	testCases := []struct {
		amount Centavos
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{123450, "1234.50"},
		{-305, "-3.05"},
	}

	for _, tc := range testCases {
		if got := tc.amount.String(); got != tc.want {
			t.Errorf("Centavos(%d).String() = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestPesosRoundTrip(t *testing.T) {
	for _, c := range []Centavos{0, 1, 99, 100, 123456, -250} {
		if got := FromPesos(c.Pesos()); got != c {
			t.Errorf("FromPesos(Pesos(%d)) = %d, want %d", c, got, c)
		}
	}
}
