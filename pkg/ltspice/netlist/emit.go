// Package netlist reconstructs electrical connectivity from a parsed
// schematic and renders circuit netlists. Component pins are projected
// onto the wire grid, connectivity is rebuilt with a union-find over grid
// points, nets receive canonical names with ground normalization, and one
// line is emitted per component.
package netlist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
	"github.com/OpenTraceLab/ltnet/pkg/ltspice/spiceval"
	"github.com/OpenTraceLab/ltnet/pkg/ltspice/symbol"
)

// Options control netlist rendering.
type Options struct {
	Minimal        bool // component lines only: no wires, no ports, no hints
	WireDirections bool // emit W wire lines with ; right / ; down hints
	NamedNodes     bool // keep non-ground flag labels as net names
	ReorientRLC    bool // flip left/up passives to right/down
	Ports          bool // emit P lines for IOPIN markers
	SingleGround   bool // fail when ground flags sit on disjoint nets
}

// DefaultOptions returns the standard rendering configuration: wire lines
// with direction hints, named nets, reoriented passives and ports all on.
func DefaultOptions() Options {
	return Options{
		WireDirections: true,
		NamedNodes:     true,
		ReorientRLC:    true,
		Ports:          true,
	}
}

// Generator renders netlists against one component library. A Generator
// holds no per-file state and may be reused across schematics.
type Generator struct {
	Library *symbol.Library
	Options Options
}

// NewGenerator returns a Generator for lib with DefaultOptions.
func NewGenerator(lib *symbol.Library) *Generator {
	return &Generator{Library: lib, Options: DefaultOptions()}
}

// Result is one generated netlist along with the node assignment behind
// it.
type Result struct {
	Lines []string
	Nodes *NodeMap
}

// Netlist returns the lines joined into a single newline-terminated
// string, or "" for an empty result.
func (r *Result) Netlist() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

// Generate converts sch using the default library and options.
func Generate(sch *asc.Schematic) (*Result, error) {
	return NewGenerator(symbol.DefaultLibrary()).Generate(sch)
}

// Generate runs the full pipeline on one schematic: project pins, build
// the connectivity graph, resolve node names, emit lines. Wire lines come
// first, then one line per symbol in declaration order, then port lines.
// Any error aborts the file; no partial netlist is returned.
func (gen *Generator) Generate(sch *asc.Schematic) (*Result, error) {
	placements, err := Project(sch, gen.Library)
	if err != nil {
		return nil, err
	}
	g := BuildGraph(sch, placements)
	nodes, err := ResolveNodes(g, sch.Flags, gen.Options)
	if err != nil {
		return nil, err
	}

	e := &emitter{
		opts:     gen.Options,
		nodes:    nodes,
		counters: make(map[string]int),
	}

	var lines []string
	if gen.Options.WireDirections && !gen.Options.Minimal {
		for _, w := range sch.Wires {
			line, err := e.wireLine(w)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}
	}
	for i := range placements {
		line, err := e.componentLine(&placements[i])
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if gen.Options.Ports && !gen.Options.Minimal {
		ports, err := e.portLines(sch)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ports...)
	}

	return &Result{Lines: lines, Nodes: nodes}, nil
}

// emitter carries the mutable per-file rendering state, most importantly
// the per-family meter counters.
type emitter struct {
	opts     Options
	nodes    *NodeMap
	counters map[string]int
}

func (e *emitter) wireLine(w asc.Wire) (string, error) {
	n1, err := e.nodes.Name(w.P1)
	if err != nil {
		return "", err
	}
	n2, err := e.nodes.Name(w.P2)
	if err != nil {
		return "", err
	}

	dx, dy := w.P2.X-w.P1.X, w.P2.Y-w.P1.Y
	var dir string
	if abs(dx) > abs(dy) {
		dir = "right"
		if dx < 0 {
			dir = "left"
		}
	} else {
		dir = "down"
		if dy < 0 {
			dir = "up"
		}
	}

	// Wires only ever point right or down in the output.
	switch dir {
	case "up":
		n1, n2, dir = n2, n1, "down"
	case "left":
		n1, n2, dir = n2, n1, "right"
	}

	return fmt.Sprintf("W %s %s; %s", n1, n2, dir), nil
}

func (e *emitter) componentLine(pl *Placement) (string, error) {
	fam := pl.Family
	name := cleanName(pl.Symbol.Name())
	dir := pl.Orientation.Direction()

	pinNodes := make([]string, len(pl.Pins))
	byName := make(map[string]string, len(pl.Pins))
	for i, pin := range pl.Pins {
		node, err := e.nodes.Name(pin.At)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		pinNodes[i] = node
		byName[pin.Name] = node
	}

	switch fam.Template {
	case symbol.TemplateOpAmp5:
		name = rewritePrefix(name, fam.NetlistPrefix)
		return fmt.Sprintf("%s %s %s opamp %s %s",
			name, byName["out"], byName["vee"], byName["in+"], byName["in-"]), nil

	case symbol.TemplateOpAmp3:
		// A three-pin op amp has no supply pins; its reference is ground.
		name = rewritePrefix(name, fam.NetlistPrefix)
		return fmt.Sprintf("%s %s 0 opamp %s %s",
			name, byName["out"], byName["in+"], byName["in-"]), nil

	case symbol.TemplateMeter:
		if fam.Renumber {
			e.counters[fam.Prefix]++
			name = fmt.Sprintf("%s%d", fam.Prefix, e.counters[fam.Prefix])
		}
		return e.finish(fmt.Sprintf("%s %s %s", name, pinNodes[0], pinNodes[1]), dir, fam.Hint), nil

	case symbol.TemplateSource:
		name = rewritePrefix(name, fam.NetlistPrefix)
		value := sourceValue(pl.Symbol.Attr)
		return e.finish(fmt.Sprintf("%s %s %s %s", name, pinNodes[0], pinNodes[1], value), dir, fam.Hint), nil

	default:
		n1, n2 := pinNodes[0], pinNodes[1]
		if e.opts.ReorientRLC && fam.Hint == "" {
			switch dir {
			case "left":
				n1, n2, dir = n2, n1, "right"
			case "up":
				n1, n2, dir = n2, n1, "down"
			}
		}
		value := pl.Symbol.Attr.Value
		if mag, err := spiceval.Parse(value); err == nil {
			value = spiceval.Format(mag)
		}
		return e.finish(fmt.Sprintf("%s %s %s %s", name, n1, n2, value), dir, fam.Hint), nil
	}
}

// portLines renders one P line per IOPIN in declaration order. The port
// label comes from the flag at the same point, falling back to a
// coordinate-derived placeholder when the flag is missing.
func (e *emitter) portLines(sch *asc.Schematic) ([]string, error) {
	var lines []string
	for i, pin := range sch.IOPins {
		node, err := e.nodes.Name(pin.At)
		if err != nil {
			return nil, err
		}
		label := ""
		if f, ok := sch.FlagAt(pin.At); ok && !f.IsGround() {
			label = cleanName(f.Label)
		}
		if label == "" {
			label = fmt.Sprintf("PORT_%d_%d", pin.At.X, pin.At.Y)
		}
		lines = append(lines, fmt.Sprintf("P%d %s 0; down, v=%s", i+1, node, label))
	}
	return lines, nil
}

// finish appends the drawing hint unless minimal output is requested.
func (e *emitter) finish(line, dir, hint string) string {
	if e.opts.Minimal {
		return line
	}
	if hint != "" {
		return line + "; " + dir + ", " + hint
	}
	return line + "; " + dir
}

// sourceValue renders a source's value. A Value2 "AC <amp>" specification
// wins, then a SINE() amplitude from Value, then the DC magnitude with SI
// conversion. A trailing V or A unit is stripped first; a value that
// parses as none of these stays verbatim.
func sourceValue(attr asc.Attributes) string {
	value := attr.Value
	if n := len(value); n > 0 {
		switch value[n-1] {
		case 'V', 'v', 'A', 'a':
			value = value[:n-1]
		}
	}

	if fields := strings.Fields(attr.Value2); len(fields) >= 2 && strings.EqualFold(fields[0], "ac") {
		if amp, err := strconv.ParseFloat(fields[1], 64); err == nil {
			return fmt.Sprintf("ac %.6f", amp)
		}
	}
	if sine, err := spiceval.ParseSine(value); err == nil {
		return fmt.Sprintf("ac %.6f", sine.Amp)
	}
	if mag, err := spiceval.Parse(value); err == nil {
		return spiceval.Format(mag)
	}
	return value
}

var instNumber = regexp.MustCompile(`^[A-Z]+(\d+)$`)

// rewritePrefix swaps the letter prefix of names like U3 for the family's
// netlist prefix, turning op amps into E3 and batteries into BAT3. Names
// that do not follow the letters-then-digits shape pass through.
func rewritePrefix(name, prefix string) string {
	if prefix == "" {
		return name
	}
	m := instNumber.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	return prefix + m[1]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
