package ledger

import "testing"

func TestNormalizeCategory(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"Rice", "Rice"},
		{" Rice ", "Rice"},
		{"Cooking   Oil", "Cooking Oil"},
		{"\tLoad\n", "Load"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range testCases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		paid, amount int64
		want         DebtStatus
	}{
		{0, 10000, DebtStatusUnpaid},
		{1, 10000, DebtStatusPartial},
		{9999, 10000, DebtStatusPartial},
		{10000, 10000, DebtStatusPaid},
		{0, 0, DebtStatusUnpaid}, // zero-amount adjustment entry
	}

	for _, tc := range testCases {
		if got := StatusFor(centavos(tc.paid), centavos(tc.amount)); got != tc.want {
			t.Errorf("StatusFor(%d, %d) = %s, want %s", tc.paid, tc.amount, got, tc.want)
		}
	}
}
