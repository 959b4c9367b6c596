package ledger

import "strings"

// NormalizeCategory trims and collapses internal whitespace so "Rice " and
// "Rice" land in the same bucket. Display case is preserved; equality
// comparisons in SQL fold case on top of this.
func NormalizeCategory(category string) string {
	return strings.Join(strings.Fields(category), " ")
}
