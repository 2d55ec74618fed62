package normalize

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain integer", "1234", 1234},
		{"plain decimal", "1234.56", 1234.56},
		{"negative decimal", "-12.5", -12.5},
		{"european thousands", "1.234,56", 1234.56},
		{"us thousands", "1,234.56", 1234.56},
		{"french spaced thousands", "1 234,56", 1234.56},
		{"narrow nbsp thousands", "25 267,18", 25267.18},
		{"comma decimal two digits", "12,34", 12.34},
		{"comma thousands three digits", "1,234", 1234},
		{"leading zero comma is decimal", "0,50", 0.5},
		{"comma four digits is thousands", "2,9000", 29000},
		{"dot strict grouping is thousands", "1.234.567", 1234567},
		{"dot grouping single group", "1.234", 1234},
		{"dot loose is decimal", "1.2345", 1.2345},
		{"currency euro", "€ 99,90", 99.9},
		{"currency word", "1.250,00 EUR", 1250},
		{"trailing minus", "123,45-", -123.45},
		{"empty", "", 0},
		{"garbage", "n/a", 0},
		{"stripped decimal comma guard", "25 267,18", 25267.18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumber(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestParseNumberRoundTrip formats the same value in European and US styles
// and requires both parses to agree.
func TestParseNumberRoundTrip(t *testing.T) {
	for _, whole := range []int64{0, 1, 12, 999, 1000, 12345, 1234567} {
		for cents := 0; cents <= 99; cents += 7 {
			want := float64(whole) + float64(cents)/100
			eu := fmt.Sprintf("%s,%02d", groupDigits(whole, "."), cents)
			us := fmt.Sprintf("%s.%02d", groupDigits(whole, ","), cents)
			if got := ParseNumber(eu); math.Abs(got-want) > 1e-9 {
				t.Errorf("ParseNumber(%q) = %v, want %v", eu, got, want)
			}
			if got := ParseNumber(us); math.Abs(got-want) > 1e-9 {
				t.Errorf("ParseNumber(%q) = %v, want %v", us, got, want)
			}
		}
	}
}

func groupDigits(v int64, sep string) string {
	s := fmt.Sprintf("%d", v)
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)
	return strings.Join(groups, sep)
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(3); got != "3" {
		t.Errorf("FormatAmount(3) = %q, want %q", got, "3")
	}
	if got := FormatAmount(2.5); got != "2.50" {
		t.Errorf("FormatAmount(2.5) = %q, want %q", got, "2.50")
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(30); got != "30.00" {
		t.Errorf("FormatMoney(30) = %q, want %q", got, "30.00")
	}
	if got := FormatMoney(12.5); got != "12.50" {
		t.Errorf("FormatMoney(12.5) = %q, want %q", got, "12.50")
	}
}
