package normalize

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces", "Whey   Protein\t1kg", "Whey Protein 1kg"},
		{"preserves newlines", "line one  \n  line two", "line one\nline two"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"doubled stream", "RRaaww", "Raw"},
		{"untouched", "Raw", "Raw"},
		{"doubled with spaces", "WWhheeyy  PPrroo", "Whey Pro"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Deduplicate(tt.in); got != tt.want {
				t.Errorf("Deduplicate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
