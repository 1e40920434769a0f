package calculator

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MaxDigits bounds how many characters, separator excluded, an entry
	// may hold.
	MaxDigits = 15

	// MaxDisplayLength is the longest fixed-point rendering shown before
	// falling back to significant digits.
	MaxDisplayLength = 15

	fractionDigits    = 10
	significantDigits = 10

	// InternalSeparator and DisplaySeparator are the decimal separators of
	// the two representations.
	InternalSeparator = "."
	DisplaySeparator  = ","
)

// FormatForDisplay turns internal numeric text into the string shown on the
// display. Unparseable text renders as ErrorMarker.
func FormatForDisplay(text string) string {
	num, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return ErrorMarker
	}
	str := toFixed(num)
	if len(str) > MaxDisplayLength {
		str = toPrecision(num)
	}
	if str == "-0" {
		// negative zero, or a negative value too small to show
		str = "0"
	}

	return ToDisplay(str)
}

// ToDisplay swaps the internal separator for the display one.
func ToDisplay(text string) string {
	return strings.Replace(text, InternalSeparator, DisplaySeparator, 1)
}

// ToInternal swaps the display separator for the internal one.
func ToInternal(text string) string {
	return strings.Replace(text, DisplaySeparator, InternalSeparator, 1)
}

// toFixed renders num with ten fractional digits and strips the zero-only
// remainder, so whole numbers carry no separator.
func toFixed(num float64) string {
	if math.Abs(num) >= 1e21 {
		return NumberText(num)
	}
	str := strconv.FormatFloat(num, 'f', fractionDigits, 64)
	str = strings.TrimRight(str, "0")
	return strings.TrimSuffix(str, InternalSeparator)
}

// toPrecision renders num with ten significant digits, in fixed notation
// when the decimal exponent is in [-6, 10) and in exponential notation
// otherwise.
func toPrecision(num float64) string {
	exp := strconv.FormatFloat(num, 'e', significantDigits-1, 64)
	mantissa, exponent, _ := strings.Cut(exp, "e")
	e, err := strconv.Atoi(exponent)
	if err != nil {
		return exp
	}
	if e < -6 || e >= significantDigits {
		return mantissa + "e" + jsExponent(e)
	}
	return strconv.FormatFloat(num, 'f', significantDigits-1-e, 64)
}

// NumberText is the shortest text that parses back to num, in fixed notation
// for magnitudes in [1e-6, 1e21) and exponential notation outside it.
func NumberText(num float64) string {
	if num == 0 {
		return "0"
	}
	abs := math.Abs(num)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(num, 'f', -1, 64)
	}
	exp := strconv.FormatFloat(num, 'e', -1, 64)
	mantissa, exponent, _ := strings.Cut(exp, "e")
	e, err := strconv.Atoi(exponent)
	if err != nil {
		return exp
	}
	return mantissa + "e" + jsExponent(e)
}

func jsExponent(e int) string {
	if e < 0 {
		return strconv.Itoa(e)
	}
	return "+" + strconv.Itoa(e)
}
