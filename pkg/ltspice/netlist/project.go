package netlist

import (
	"fmt"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
	"github.com/OpenTraceLab/ltnet/pkg/ltspice/symbol"
)

// Placement is a symbol instance bound to its component family, with pins
// projected to absolute grid coordinates.
type Placement struct {
	Symbol      *asc.Symbol
	Family      *symbol.Family
	Orientation symbol.Orientation
	Pins        []symbol.PlacedPin
}

// Project resolves every symbol in the schematic against the library and
// computes its absolute pin positions, preserving declaration order. The
// first unknown family or orientation aborts the pass; the error names the
// instance and its anchor coordinates.
func Project(sch *asc.Schematic, lib *symbol.Library) ([]Placement, error) {
	placements := make([]Placement, 0, len(sch.Symbols))
	for i := range sch.Symbols {
		sym := &sch.Symbols[i]
		fam, err := lib.Lookup(sym.Kind)
		if err != nil {
			return nil, fmt.Errorf("netlist: %s at %s: %w", sym.Name(), sym.At.Key(), err)
		}
		orient, err := symbol.ParseOrientation(sym.Orient)
		if err != nil {
			return nil, fmt.Errorf("netlist: %s at %s: %w", sym.Name(), sym.At.Key(), err)
		}
		placements = append(placements, Placement{
			Symbol:      sym,
			Family:      fam,
			Orientation: orient,
			Pins:        fam.ProjectPins(sym.At, orient),
		})
	}
	return placements, nil
}
