// Package spiceval converts LTspice component value strings to numbers:
// SI-prefixed magnitudes like "10k" or "3uF" and SINE() source
// specifications.
package spiceval

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotNumber reports a value string with no leading numeric magnitude,
// such as a "{param}" expression or free text.
var ErrNotNumber = errors.New("spiceval: not a number")

// valueRe splits a value into its numeric part and the suffix carrying the
// SI prefix and units, e.g. "-3.3e-2mA" into "-3.3e-2" and "mA".
var valueRe = regexp.MustCompile(`^([+-]?\d*\.?\d*(?:[eE][+-]?\d+)?)(.*)$`)

// Parse converts an LTspice value with an optional SI prefix and unit to a
// float. Prefixes match ignoring case except micro, which is written "u" or
// "µ"; "M" means milli unless written "Meg". Unit letters after the prefix
// are ignored, so a femto "f" prefix wins over a farad unit reading, as in
// SPICE itself.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("spiceval: empty value: %w", ErrNotNumber)
	}

	m := valueRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("spiceval: %q: %w", s, ErrNotNumber)
	}
	num, suffix := m[1], strings.TrimSpace(m[2])
	if num == "" || num == "+" || num == "-" {
		return 0, fmt.Errorf("spiceval: %q: %w", s, ErrNotNumber)
	}

	base, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("spiceval: %q: %w", s, ErrNotNumber)
	}

	return base * multiplier(suffix), nil
}

func multiplier(suffix string) float64 {
	lower := strings.ToLower(suffix)
	switch {
	case strings.HasPrefix(lower, "meg"):
		return 1e6
	case strings.HasPrefix(lower, "g"):
		return 1e9
	case strings.HasPrefix(lower, "k"):
		return 1e3
	case strings.HasPrefix(suffix, "u"), strings.HasPrefix(suffix, "µ"):
		return 1e-6
	case strings.HasPrefix(lower, "m"):
		return 1e-3
	case strings.HasPrefix(lower, "n"):
		return 1e-9
	case strings.HasPrefix(lower, "p"):
		return 1e-12
	case strings.HasPrefix(lower, "f"):
		return 1e-15
	default:
		// No prefix; whatever remains is a plain unit like "V" or "Hz".
		return 1
	}
}

// Format renders a magnitude in the canonical form used on netlist lines:
// the shortest representation that round-trips, so "1000" and "1e-06".
func Format(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
