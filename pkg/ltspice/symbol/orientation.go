// Package symbol holds the component family library: pin offset tables,
// netlist templates and the orientation transform used to project symbol
// pins onto schematic coordinates.
package symbol

import (
	"fmt"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
)

// UnsupportedOrientationError reports an orientation code outside the eight
// supported ones (R0 R90 R180 R270 and their M mirror variants).
type UnsupportedOrientationError struct {
	Code string
}

func (e *UnsupportedOrientationError) Error() string {
	return fmt.Sprintf("symbol: unsupported orientation %q", e.Code)
}

// Orientation is a symbol placement transform: an optional mirror across
// the vertical axis followed by 0 to 3 counter-clockwise quarter turns.
type Orientation struct {
	turns  int
	mirror bool
}

// ParseOrientation parses an .asc orientation code. LTspice writes R0, R90,
// R180, R270 and the mirrored M0, M90, M180, M270; a bare "R" or "M" is the
// zero rotation.
func ParseOrientation(code string) (Orientation, error) {
	if code == "" {
		return Orientation{}, &UnsupportedOrientationError{Code: code}
	}
	o := Orientation{}
	switch code[0] {
	case 'R':
	case 'M':
		o.mirror = true
	default:
		return Orientation{}, &UnsupportedOrientationError{Code: code}
	}
	switch code[1:] {
	case "", "0":
		o.turns = 0
	case "90":
		o.turns = 1
	case "180":
		o.turns = 2
	case "270":
		o.turns = 3
	default:
		return Orientation{}, &UnsupportedOrientationError{Code: code}
	}
	return o, nil
}

// Apply transforms a pin offset from the symbol's canonical R0 frame into
// the placed frame. One quarter turn maps (x,y) to (-y,x), matching the
// upstream rotation table; mirroring negates x before any rotation.
func (o Orientation) Apply(p asc.Point) asc.Point {
	if o.mirror {
		p.X = -p.X
	}
	for i := 0; i < o.turns; i++ {
		p.X, p.Y = -p.Y, p.X
	}
	return p
}

// Direction returns the drawing hint for this orientation: R0 symbols point
// down, and each quarter turn advances down, left, up, right. Mirrored
// codes share the hint of their unmirrored rotation.
func (o Orientation) Direction() string {
	switch o.turns {
	case 1:
		return "left"
	case 2:
		return "up"
	case 3:
		return "right"
	default:
		return "down"
	}
}

// String renders the canonical code.
func (o Orientation) String() string {
	prefix := "R"
	if o.mirror {
		prefix = "M"
	}
	return fmt.Sprintf("%s%d", prefix, o.turns*90)
}
