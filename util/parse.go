package util

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a numeric form value. ok is false when s is empty after
// trimming. Non-numeric text returns NaN with ok=true; overflowing input
// returns ±Inf.
func ParseNumber(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return math.NaN(), true
	}
	return v, true
}

// ParseInt parses a string to int, returning 0 on error.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	v, _ := strconv.Atoi(s)
	return v
}

// IsNumericRune reports whether r can appear in a number typed into a
// numeric input: digits, sign, decimal point and exponent.
func IsNumericRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		return true
	}
	return false
}
