package util

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// RoundTo rounds v to the given number of decimal places using the same
// rule as ToFixed. NaN and ±Inf pass through unchanged.
func RoundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(ToFixed(v, places), 64)
	if err != nil {
		return v
	}
	return r
}

// ToFixed formats v with exactly places decimals the way a browser's
// Number.prototype.toFixed does: the exact binary value of v is rounded,
// ties go away from zero, and negatives that round to zero keep their sign
// ("-0.0"). Magnitudes of 1e21 and above use exponent notation.
func ToFixed(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatFloat(v, places)
	}
	if places < 0 {
		places = 0
	}
	abs := math.Abs(v)
	if abs >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	x := new(big.Float).SetPrec(256).SetFloat64(abs)
	x.Mul(x, new(big.Float).SetPrec(256).SetInt(scale))

	n, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(x, new(big.Float).SetPrec(256).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if places > 0 {
		if len(digits) <= places {
			digits = strings.Repeat("0", places+1-len(digits)) + digits
		}
		digits = digits[:len(digits)-places] + "." + digits[len(digits)-places:]
	}
	if v < 0 {
		return "-" + digits
	}
	return digits
}

// FormatFloat formats v with the given decimals, spelling non-finite values
// the way a browser prints them.
func FormatFloat(v float64, places int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', places, 64)
}

// FormatQuantity renders a chart or report value with thousands separators
// and no trailing zeros: 2200 -> "2,200", 7.5 -> "7.5".
func FormatQuantity(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatFloat(v, 0)
	}
	return humanize.Commaf(v)
}
