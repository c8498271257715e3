// Package sensenum computes sense number labels: counter alphabets, parent
// label joining and the single-sense policy. Parent labels are threaded
// through an explicit stack so numbering can be exercised without rendering.
package sensenum

import (
	"strconv"
	"strings"
)

// Numbering style tokens.
const (
	StyleDecimal    = "%d"
	StyleLowerAlpha = "%a"
	StyleUpperAlpha = "%A"
	StyleLowerRoman = "%i"
	StyleUpperRoman = "%I"
	// StyleOutline counts in decimal and always dot-joins the parent label
	// ("2.1"), whatever the parent numbering style says. A top-level sense
	// has no parent label and is numbered "1".
	StyleOutline    = "%O"
)

// Parent numbering tokens.
const (
	ParentJoined = "%j"
	ParentDotted = "%."
	ParentNone   = ""
)

// Format renders ordinal n (1-based) in style. Unknown styles and n < 1
// report false.
func Format(style string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	switch style {
	case StyleDecimal, StyleOutline:
		return strconv.Itoa(n), true
	case StyleLowerAlpha:
		return alpha(n, 'a'), true
	case StyleUpperAlpha:
		return alpha(n, 'A'), true
	case StyleLowerRoman:
		return strings.ToLower(roman(n)), true
	case StyleUpperRoman:
		return roman(n), true
	default:
		return "", false
	}
}

// alpha is bijective base 26: a..z, aa..az, ba...
func alpha(n int, base byte) string {
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, base+byte(n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman falls back to decimal above 3999.
func roman(n int) string {
	if n > 3999 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
