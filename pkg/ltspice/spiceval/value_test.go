package spiceval

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestParsePrefixes(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"2.5", 2.5},
		{"1e3", 1000},
		{"10k", 1e4},
		{"4.7K", 4.7e3},
		{"1Meg", 1e6},
		{"1MEG", 1e6},
		{"2M", 2e-3},
		{"2m", 2e-3},
		{"3u", 3e-6},
		{"3µ", 3e-6},
		{"1g", 1e9},
		{"10n", 1e-8},
		{"2p", 2e-12},
		{"5f", 5e-15},
		{"-3.3e-2mA", -3.3e-5},
		{"+12", 12},
		{".5", 0.5},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.in, err)
			continue
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestParseIgnoresUnits(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"5V", 5},
		{"10kHz", 1e4},
		{"10nF", 1e-8},
		{"4.7kΩ", 4.7e3},
		{"2.5A", 2.5},
		{"100 mV", 0.1},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.in, err)
			continue
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestParseRejectsNonNumbers(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "+", "-", "{R}", "SINE(0 1 10)"} {
		_, err := Parse(in)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, expected error", in)
			continue
		}
		if !errors.Is(err, ErrNotNumber) {
			t.Errorf("Parse(%q) error = %v, want ErrNotNumber", in, err)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1000, "1000"},
		{1e-6, "1e-06"},
		{2.5, "2.5"},
		{5, "5"},
		{0.022, "0.022"},
		{-3.3e-5, "-3.3e-05"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
