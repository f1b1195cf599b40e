// Package asc provides parsing for LTspice schematic capture files (.asc)
package asc

import "fmt"

// Point is a location on the schematic's integer grid. Electrical identity
// is exact-coordinate equality; there is no snapping or tolerance.
type Point struct {
	X int
	Y int
}

// Key renders the canonical zero-padded coordinate key ("0048_0112") used
// in node tables and diagnostics.
func (p Point) Key() string {
	return fmt.Sprintf("%04d_%04d", p.X, p.Y)
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Wire is a zero-impedance connection between two grid points. The endpoint
// order carries no electrical meaning, only the drawing direction hint.
type Wire struct {
	P1 Point
	P2 Point
}

// Flag anchors a net label to a grid point. The label "0" is the reserved
// ground token.
type Flag struct {
	At    Point
	Label string
}

// GroundLabel is the reserved net label marking the reference node.
const GroundLabel = "0"

// IsGround reports whether the flag carries the reserved ground label.
func (f Flag) IsGround() bool {
	return f.Label == GroundLabel
}

// PinDir is the declared direction of a schematic port.
type PinDir string

const (
	PinIn    PinDir = "In"
	PinOut   PinDir = "Out"
	PinBiDir PinDir = "BiDir"
)

// IOPin marks a grid point as an external port. LTspice always pairs an
// IOPIN record with a FLAG at the same point carrying the port's label.
type IOPin struct {
	At  Point
	Dir PinDir
}

// Attributes holds the SYMATTR assignments of one symbol instance as a
// structured record. Keys not modeled here are preserved in Other.
type Attributes struct {
	InstName    string            // Instance name, e.g. "R1"
	Value       string            // Primary value, e.g. "10k" or "SINE(0 1 10)"
	Value2      string            // Secondary value, e.g. "AC 1"
	SpiceLine   string            // Extra SPICE parameters
	SpiceModel  string            // Model reference
	Description string            // Free-form description
	Other       map[string]string // Any remaining SYMATTR keys
}

// Set assigns one SYMATTR key/value pair to its structured field.
func (a *Attributes) Set(key, value string) {
	switch key {
	case "InstName":
		a.InstName = value
	case "Value":
		a.Value = value
	case "Value2":
		a.Value2 = value
	case "SpiceLine":
		a.SpiceLine = value
	case "SpiceModel":
		a.SpiceModel = value
	case "Description":
		a.Description = value
	default:
		if a.Other == nil {
			a.Other = make(map[string]string)
		}
		a.Other[key] = value
	}
}

// Window is a text-window placement attached to a symbol. It affects only
// how LTspice draws attribute text, never connectivity.
type Window struct {
	Kind   int    // Attribute slot (0 = InstName, 3 = Value, ...)
	At     Point  // Offset from the symbol anchor
	Anchor string // Text anchor, e.g. "Left", "VBottom"
	Size   int    // Font size index
}

// Symbol is one placed component instance.
type Symbol struct {
	Kind    string     // Symbol/family name, e.g. "res" or "Opamps/UniversalOpamp2"
	At      Point      // Anchor position
	Orient  string     // Orientation code: R0 R90 R180 R270 M0 M90 M180 M270
	Attr    Attributes // Structured SYMATTR record
	Windows []Window   // WINDOW placements, drawing only
}

// Name returns the instance name, or "?" when the schematic omits it.
func (s Symbol) Name() string {
	if s.Attr.InstName == "" {
		return "?"
	}
	return s.Attr.InstName
}

// Text is a free text annotation or SPICE directive. The payload is kept
// verbatim; directives are not interpreted here.
type Text struct {
	Raw string
}

// Sheet describes the drawing sheet declared in the file header.
type Sheet struct {
	Number int
	Width  int
	Height int
}

// Schematic is the decoded content of one .asc file. All slices preserve
// file declaration order, which downstream node numbering depends on.
type Schematic struct {
	Version string   // Header version token, normally "4"
	Sheet   Sheet    // Drawing sheet dimensions
	Wires   []Wire   // Wire segments
	Symbols []Symbol // Component instances
	Flags   []Flag   // Net labels, including grounds
	IOPins  []IOPin  // Port markers
	Texts   []Text   // Annotations and directives
}

// Grounds returns the ground flags in declaration order.
func (s *Schematic) Grounds() []Flag {
	var gs []Flag
	for _, f := range s.Flags {
		if f.IsGround() {
			gs = append(gs, f)
		}
	}
	return gs
}

// FlagAt returns the first flag placed exactly at p.
func (s *Schematic) FlagAt(p Point) (Flag, bool) {
	for _, f := range s.Flags {
		if f.At == p {
			return f, true
		}
	}
	return Flag{}, false
}
