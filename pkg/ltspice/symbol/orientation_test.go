package symbol

import (
	"errors"
	"testing"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
)

func TestParseOrientation(t *testing.T) {
	valid := []string{"R0", "R90", "R180", "R270", "M0", "M90", "M180", "M270"}
	for _, code := range valid {
		o, err := ParseOrientation(code)
		if err != nil {
			t.Errorf("ParseOrientation(%q) failed: %v", code, err)
			continue
		}
		if o.String() != code {
			t.Errorf("ParseOrientation(%q).String() = %q", code, o.String())
		}
	}

	// Bare R and M are the zero rotation.
	for code, want := range map[string]string{"R": "R0", "M": "M0"} {
		o, err := ParseOrientation(code)
		if err != nil {
			t.Fatalf("ParseOrientation(%q) failed: %v", code, err)
		}
		if o.String() != want {
			t.Errorf("ParseOrientation(%q) = %s, want %s", code, o, want)
		}
	}
}

func TestParseOrientationRejectsUnknownCodes(t *testing.T) {
	for _, code := range []string{"", "R45", "R360", "X0", "90", "MR90"} {
		_, err := ParseOrientation(code)
		var ue *UnsupportedOrientationError
		if !errors.As(err, &ue) {
			t.Errorf("ParseOrientation(%q) error = %v, want UnsupportedOrientationError", code, err)
			continue
		}
		if ue.Code != code {
			t.Errorf("error carries code %q, want %q", ue.Code, code)
		}
	}
}

func TestOrientationApply(t *testing.T) {
	in := asc.Point{X: 16, Y: 96}
	cases := []struct {
		code string
		want asc.Point
	}{
		{"R0", asc.Point{X: 16, Y: 96}},
		{"R90", asc.Point{X: -96, Y: 16}},
		{"R180", asc.Point{X: -16, Y: -96}},
		{"R270", asc.Point{X: 96, Y: -16}},
		{"M0", asc.Point{X: -16, Y: 96}},
		{"M90", asc.Point{X: -96, Y: -16}},
		{"M180", asc.Point{X: 16, Y: -96}},
		{"M270", asc.Point{X: 96, Y: 16}},
	}
	for _, c := range cases {
		o, err := ParseOrientation(c.code)
		if err != nil {
			t.Fatalf("ParseOrientation(%q) failed: %v", c.code, err)
		}
		if got := o.Apply(in); got != c.want {
			t.Errorf("%s.Apply(%v) = %v, want %v", c.code, in, got, c.want)
		}
	}
}

func TestOrientationDirection(t *testing.T) {
	cases := map[string]string{
		"R0": "down", "R90": "left", "R180": "up", "R270": "right",
		"M0": "down", "M90": "left", "M180": "up", "M270": "right",
	}
	for code, want := range cases {
		o, err := ParseOrientation(code)
		if err != nil {
			t.Fatalf("ParseOrientation(%q) failed: %v", code, err)
		}
		if got := o.Direction(); got != want {
			t.Errorf("%s.Direction() = %q, want %q", code, got, want)
		}
	}
}
