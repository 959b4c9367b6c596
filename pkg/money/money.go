package money

import (
	"fmt"
	"math"
)

// Centavos is a monetary amount in integer minor units (1 peso = 100
// centavos). All ledger arithmetic happens in this type so repeated
// allocation/reversal cycles cannot accumulate floating-point drift.
type Centavos int64

// FromPesos converts a peso amount (as received from API clients) to
// centavos, rounding half away from zero.
func FromPesos(pesos float64) Centavos {
	return Centavos(math.Round(pesos * 100))
}

// Pesos converts back to a float peso amount for display payloads.
func (c Centavos) Pesos() float64 {
	return float64(c) / 100
}

// String formats the amount as a plain decimal, e.g. "1234.50" or "-3.05".
func (c Centavos) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Min returns the smaller of two amounts.
func Min(a, b Centavos) Centavos {
	if a < b {
		return a
	}
	return b
}
