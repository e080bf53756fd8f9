package sanitizer

import "strings"

// NormalizeSeatNumber uppercases a seat label so "a1" and "A1" address the
// same seat.
func NormalizeSeatNumber(seatNumber string) string {
	p := Pipeline{
		strings.TrimSpace,
		strings.ToUpper,
	}
	return p.Apply(seatNumber)
}

// NormalizeSeatNumbers also drops duplicates: a seat requested twice in one
// booking counts once against the availability counters.
func NormalizeSeatNumbers(seatNumbers []string) []string {
	return SanitizeSlice(seatNumbers, NormalizeSeatNumber)
}
