package symbol

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
)

func TestDefaultLibraryFamilies(t *testing.T) {
	lib := DefaultLibrary()

	for _, name := range []string{
		"res", "cap", "polcap", "ind", "voltage", "current", "battery",
		"ammeter", "voltmeter", "opamp", "Opamps/UniversalOpamp2",
	} {
		if _, err := lib.Lookup(name); err != nil {
			t.Errorf("Lookup(%q) failed: %v", name, err)
		}
	}
}

func TestLookupCaseInsensitiveAndAliases(t *testing.T) {
	lib := DefaultLibrary()

	for _, kind := range []string{"res", "Res", "RES", "res2", "RES2"} {
		f, err := lib.Lookup(kind)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", kind, err)
		}
		if f.Name != "res" {
			t.Errorf("Lookup(%q) = family %s, want res", kind, f.Name)
		}
	}

	f, err := lib.Lookup("opamps/universalopamp2")
	if err != nil {
		t.Fatalf("Lookup lowercased opamp failed: %v", err)
	}
	if f.Template != TemplateOpAmp5 {
		t.Errorf("Expected opamp5 template, got %s", f.Template)
	}
}

func TestLookupUnknownFamily(t *testing.T) {
	_, err := DefaultLibrary().Lookup("transmissionline")
	var ue *UnsupportedComponentError
	if !errors.As(err, &ue) {
		t.Fatalf("Lookup error = %v, want UnsupportedComponentError", err)
	}
	if ue.Kind != "transmissionline" {
		t.Errorf("error carries kind %q", ue.Kind)
	}
}

func TestProjectTwoTerminalMatchesRotationTable(t *testing.T) {
	lib := DefaultLibrary()
	at := asc.Point{X: 144, Y: 32}

	// Expected pin pairs per orientation, from the R0 offsets (16,16) and
	// (16,96) for a resistor.
	cases := []struct {
		orient string
		p1, p2 asc.Point
	}{
		{"R0", asc.Point{X: 160, Y: 48}, asc.Point{X: 160, Y: 128}},
		{"R90", asc.Point{X: 128, Y: 48}, asc.Point{X: 48, Y: 48}},
		{"R180", asc.Point{X: 128, Y: 16}, asc.Point{X: 128, Y: -64}},
		{"R270", asc.Point{X: 160, Y: 16}, asc.Point{X: 240, Y: 16}},
	}
	for _, c := range cases {
		pins, err := lib.ProjectPins("res", at, c.orient)
		if err != nil {
			t.Fatalf("ProjectPins(res, %s) failed: %v", c.orient, err)
		}
		if len(pins) != 2 {
			t.Fatalf("Expected 2 pins, got %d", len(pins))
		}
		if pins[0].At != c.p1 || pins[1].At != c.p2 {
			t.Errorf("%s: pins %v %v, want %v %v", c.orient, pins[0].At, pins[1].At, c.p1, c.p2)
		}
	}
}

func TestProjectUniversalOpamp(t *testing.T) {
	lib := DefaultLibrary()
	pins, err := lib.ProjectPins("Opamps/UniversalOpamp2", asc.Point{X: 400, Y: 160}, "R0")
	if err != nil {
		t.Fatalf("ProjectPins failed: %v", err)
	}

	want := map[string]asc.Point{
		"in-": {X: 368, Y: 144},
		"in+": {X: 368, Y: 176},
		"out": {X: 432, Y: 160},
		"vcc": {X: 400, Y: 128},
		"vee": {X: 400, Y: 192},
	}
	if len(pins) != len(want) {
		t.Fatalf("Expected %d pins, got %d", len(want), len(pins))
	}
	for _, p := range pins {
		if p.At != want[p.Name] {
			t.Errorf("Pin %s at %v, want %v", p.Name, p.At, want[p.Name])
		}
	}
}

func TestProjectRejectsBadOrientation(t *testing.T) {
	_, err := DefaultLibrary().ProjectPins("res", asc.Point{}, "R45")
	var ue *UnsupportedOrientationError
	if !errors.As(err, &ue) {
		t.Fatalf("ProjectPins error = %v, want UnsupportedOrientationError", err)
	}
}

func TestLoadLibraryValidation(t *testing.T) {
	cases := []struct {
		name string
		toml string
	}{
		{"no families", ``},
		{"bad template", "[families.widget]\ntemplate = \"wat\"\npins = [{ name = \"1\", x = 0, y = 0 }]\n"},
		{"no pins", "[families.widget]\ntemplate = \"passive\"\n"},
		{"wrong arity", "[families.widget]\ntemplate = \"passive\"\npins = [{ name = \"1\", x = 0, y = 0 }]\n"},
		{"duplicate pin", "[families.widget]\ntemplate = \"passive\"\npins = [{ name = \"1\", x = 0, y = 0 }, { name = \"1\", x = 0, y = 8 }]\n"},
		{"opamp missing pin", "[families.widget]\ntemplate = \"opamp3\"\npins = [{ name = \"in+\", x = 0, y = 0 }, { name = \"out\", x = 8, y = 0 }]\n"},
	}
	for _, c := range cases {
		if _, err := LoadLibrary(strings.NewReader(c.toml)); err == nil {
			t.Errorf("%s: expected load error", c.name)
		}
	}
}

func TestLoadLibraryFile(t *testing.T) {
	content := `[families.gadget]
prefix = "G"
template = "generic"
pins = [
  { name = "1", x = 0, y = 0 },
  { name = "2", x = 0, y = 32 },
]
`
	path := filepath.Join(t.TempDir(), "families.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write table: %v", err)
	}

	lib, err := LoadLibraryFile(path)
	if err != nil {
		t.Fatalf("LoadLibraryFile failed: %v", err)
	}
	f, err := lib.Lookup("gadget")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if f.Prefix != "G" || len(f.Pins) != 2 {
		t.Errorf("Unexpected family: %+v", f)
	}

	if _, err := LoadLibraryFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestFamilyPinLookup(t *testing.T) {
	f, err := DefaultLibrary().Lookup("opamp")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if p, ok := f.Pin("out"); !ok || p.Offset != (asc.Point{X: 32, Y: 64}) {
		t.Errorf("Pin(out) = %+v, %v", p, ok)
	}
	if _, ok := f.Pin("vcc"); ok {
		t.Errorf("3-pin opamp should not have a vcc pin")
	}
}
