package symbol

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
)

// UnsupportedComponentError reports a symbol kind absent from the library.
type UnsupportedComponentError struct {
	Kind string
}

func (e *UnsupportedComponentError) Error() string {
	return fmt.Sprintf("symbol: unsupported component family %q", e.Kind)
}

// Template selects the netlist line shape a family emits.
type Template string

const (
	TemplatePassive Template = "passive" // <name> <n1> <n2> <value>
	TemplateSource  Template = "source"  // passive shape plus DC/AC resolution
	TemplateOpAmp3  Template = "opamp3"  // <name> <out> 0 opamp <in+> <in->
	TemplateOpAmp5  Template = "opamp5"  // <name> <out> <vee> opamp <in+> <in->
	TemplateMeter   Template = "meter"   // <name> <n1> <n2>, renumbered per family
	TemplateGeneric Template = "generic" // <name> <n1> <n2> <value>
)

func (t Template) valid() bool {
	switch t {
	case TemplatePassive, TemplateSource, TemplateOpAmp3, TemplateOpAmp5,
		TemplateMeter, TemplateGeneric:
		return true
	}
	return false
}

// Pin is one named pin with its offset in the family's canonical R0 frame.
type Pin struct {
	Name   string
	Offset asc.Point
}

// Family describes one component family: how its pins sit around the
// anchor and how its netlist line is rendered.
type Family struct {
	Name          string   // Canonical .asc symbol name, e.g. "res"
	Prefix        string   // Reference prefix LTspice assigns, e.g. "R"
	NetlistPrefix string   // Replacement prefix on emission ("E", "BAT"); empty keeps InstName
	Template      Template // Line template
	Renumber      bool     // Number instances per family (AM1, VM1, ...) ignoring InstName
	Hint          string   // Extra drawing hint appended after the direction
	Aliases       []string // Alternate .asc symbol names
	Pins          []Pin    // Pin offsets in declaration order
}

// Pin returns the named pin.
func (f *Family) Pin(name string) (Pin, bool) {
	for _, p := range f.Pins {
		if p.Name == name {
			return p, true
		}
	}
	return Pin{}, false
}

// ProjectPins places the family's pins for an instance anchored at `at`
// with the given orientation. Pure function of its inputs.
func (f *Family) ProjectPins(at asc.Point, o Orientation) []PlacedPin {
	pins := make([]PlacedPin, len(f.Pins))
	for i, p := range f.Pins {
		d := o.Apply(p.Offset)
		pins[i] = PlacedPin{
			Name: p.Name,
			At:   asc.Point{X: at.X + d.X, Y: at.Y + d.Y},
		}
	}
	return pins
}

// PlacedPin is a pin projected to absolute schematic coordinates.
type PlacedPin struct {
	Name string
	At   asc.Point
}

// Library is an immutable registry of component families, looked up
// case-insensitively by family name or alias.
type Library struct {
	byName   map[string]*Family
	families []*Family
}

// NewLibrary validates the families and builds the lookup registry.
func NewLibrary(families []*Family) (*Library, error) {
	l := &Library{byName: make(map[string]*Family)}
	for _, f := range families {
		if err := validateFamily(f); err != nil {
			return nil, err
		}
		for _, name := range append([]string{f.Name}, f.Aliases...) {
			key := strings.ToLower(name)
			if other, dup := l.byName[key]; dup {
				return nil, fmt.Errorf("symbol: family name %q claimed by both %s and %s", name, other.Name, f.Name)
			}
			l.byName[key] = f
		}
		l.families = append(l.families, f)
	}
	sort.Slice(l.families, func(i, j int) bool { return l.families[i].Name < l.families[j].Name })
	return l, nil
}

// validateFamily enforces the completeness contract: a family the library
// advertises must be emittable, so a broken entry is a configuration error
// caught at load time rather than a per-file failure.
func validateFamily(f *Family) error {
	if f.Name == "" {
		return fmt.Errorf("symbol: family with empty name")
	}
	if !f.Template.valid() {
		return fmt.Errorf("symbol: family %s: unknown template %q", f.Name, f.Template)
	}
	if len(f.Pins) == 0 {
		return fmt.Errorf("symbol: family %s: no pins defined", f.Name)
	}
	seen := make(map[string]bool, len(f.Pins))
	for _, p := range f.Pins {
		if p.Name == "" {
			return fmt.Errorf("symbol: family %s: pin with empty name", f.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("symbol: family %s: duplicate pin %q", f.Name, p.Name)
		}
		seen[p.Name] = true
	}
	var required []string
	switch f.Template {
	case TemplateOpAmp3:
		required = []string{"in+", "in-", "out"}
	case TemplateOpAmp5:
		required = []string{"in+", "in-", "out", "vcc", "vee"}
	default:
		if len(f.Pins) != 2 {
			return fmt.Errorf("symbol: family %s: template %s needs exactly 2 pins, has %d", f.Name, f.Template, len(f.Pins))
		}
	}
	for _, name := range required {
		if !seen[name] {
			return fmt.Errorf("symbol: family %s: template %s missing pin %q", f.Name, f.Template, name)
		}
	}
	return nil
}

// Lookup resolves a symbol kind to its family.
func (l *Library) Lookup(kind string) (*Family, error) {
	if f, ok := l.byName[strings.ToLower(kind)]; ok {
		return f, nil
	}
	return nil, &UnsupportedComponentError{Kind: kind}
}

// Families lists the registered families sorted by name.
func (l *Library) Families() []*Family {
	out := make([]*Family, len(l.families))
	copy(out, l.families)
	return out
}

// ProjectPins looks up the kind, parses the orientation code and places
// the family's pins for an instance anchored at `at`.
func (l *Library) ProjectPins(kind string, at asc.Point, orient string) ([]PlacedPin, error) {
	f, err := l.Lookup(kind)
	if err != nil {
		return nil, err
	}
	o, err := ParseOrientation(orient)
	if err != nil {
		return nil, err
	}
	return f.ProjectPins(at, o), nil
}

type libraryConfig struct {
	Families map[string]familyConfig `toml:"families"`
}

type familyConfig struct {
	Prefix        string      `toml:"prefix"`
	NetlistPrefix string      `toml:"netlist_prefix"`
	Template      string      `toml:"template"`
	Renumber      bool        `toml:"renumber"`
	Hint          string      `toml:"hint"`
	Aliases       []string    `toml:"aliases"`
	Pins          []pinConfig `toml:"pins"`
}

type pinConfig struct {
	Name string `toml:"name"`
	X    int    `toml:"x"`
	Y    int    `toml:"y"`
}

// LoadLibrary reads a TOML family table, validates it and returns the
// registry. The embedded default table uses the same format, so a partial
// or experimental table can be swapped in per invocation.
func LoadLibrary(r io.Reader) (*Library, error) {
	var cfg libraryConfig
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("symbol: failed to decode family table: %w", err)
	}
	if len(cfg.Families) == 0 {
		return nil, fmt.Errorf("symbol: family table defines no families")
	}

	names := make([]string, 0, len(cfg.Families))
	for name := range cfg.Families {
		names = append(names, name)
	}
	sort.Strings(names)

	families := make([]*Family, 0, len(names))
	for _, name := range names {
		fc := cfg.Families[name]
		f := &Family{
			Name:          name,
			Prefix:        fc.Prefix,
			NetlistPrefix: fc.NetlistPrefix,
			Template:      Template(fc.Template),
			Renumber:      fc.Renumber,
			Hint:          fc.Hint,
			Aliases:       fc.Aliases,
		}
		for _, pc := range fc.Pins {
			f.Pins = append(f.Pins, Pin{Name: pc.Name, Offset: asc.Point{X: pc.X, Y: pc.Y}})
		}
		families = append(families, f)
	}
	return NewLibrary(families)
}

// LoadLibraryFile reads a TOML family table from disk.
func LoadLibraryFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("symbol: failed to open family table: %w", err)
	}
	defer f.Close()

	l, err := LoadLibrary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

//go:embed families.toml
var defaultFamiliesTOML string

var defaultLibrary = sync.OnceValue(func() *Library {
	l, err := LoadLibrary(strings.NewReader(defaultFamiliesTOML))
	if err != nil {
		panic(fmt.Sprintf("symbol: embedded family table is broken: %v", err))
	}
	return l
})

// DefaultLibrary returns the built-in family table. The value is shared
// and immutable.
func DefaultLibrary() *Library {
	return defaultLibrary()
}
