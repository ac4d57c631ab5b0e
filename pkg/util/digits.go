package util

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DigitsOnly drops every rune that is not an ASCII digit.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// ParseDigits reads an integer out of free text such as "$12,499".
// It fails when no digit is left or the value overflows int64.
func ParseDigits(s string) (int64, bool) {
	d := DigitsOnly(s)
	if d == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// RoundString rounds half away from zero and formats without decimals.
func RoundString(f float64) string {
	return strconv.FormatInt(int64(math.Round(f)), 10)
}
