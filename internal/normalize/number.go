// Package normalize handles locale-ambiguous numeric and date strings.
// Converts vendor-formatted values into canonical floats and ISO dates.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rePlainNumber    = regexp.MustCompile(`^-?\d+$`)
	reInvisibleChars = regexp.MustCompile("[  ​]")
	reNonNumeric     = regexp.MustCompile(`[^\d.-]`)
	reDigitsOnly     = regexp.MustCompile(`\D`)
	reDottedGrouping = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)
	currencySymbols  = []string{"€", "EUR", "$", "£"}
	largeValueCutoff = 100000.0
)

// ParseNumber converts an ambiguous numeric string into a float64.
// Total function: unparseable input yields 0.
//
// Separator resolution: when both ',' and '.' appear, the right-most of the
// two is the decimal separator. A lone ',' is decimal when followed by
// exactly two digits (or when the value starts with "0,"), otherwise
// thousands. A lone '.' is thousands only under strict three-digit grouping.
func ParseNumber(raw string) float64 {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	s := raw
	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = reInvisibleChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	// Trailing '-' denotes negative in some ledger formats.
	negative := false
	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
		s = strings.TrimSpace(s)
	}

	if rePlainNumber.MatchString(s) {
		v, _ := strconv.ParseFloat(s, 64)
		return applySign(v, negative)
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		if commaIsDecimal(s) {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasDot:
		if reDottedGrouping.MatchString(strings.ReplaceAll(s, " ", "")) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	s = reNonNumeric.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	// Guard against a stripped decimal comma: '25 267,18' read as 2526718.
	if v > largeValueCutoff && strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		parts := strings.SplitN(raw, ",", 2)
		if len(parts) == 2 && len(reDigitsOnly.ReplaceAllString(parts[1], "")) == 2 {
			redo := strings.ReplaceAll(raw, " ", "")
			redo = strings.ReplaceAll(redo, ",", ".")
			redo = reNonNumeric.ReplaceAllString(redo, "")
			if v2, err := strconv.ParseFloat(redo, 64); err == nil {
				return applySign(v2, negative)
			}
		}
	}
	return applySign(v, negative)
}

func commaIsDecimal(s string) bool {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "0,") || strings.HasPrefix(trimmed, "-0,") {
		return true
	}
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return false
	}
	return len(reDigitsOnly.ReplaceAllString(parts[1], "")) == 2
}

func applySign(v float64, negative bool) float64 {
	if negative && v > 0 {
		return -v
	}
	return v
}

// FormatAmount renders counts and rates: integral values without a
// fraction, everything else at two decimals.
func FormatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatMoney renders monetary values at minor-currency precision.
func FormatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
