package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
	"github.com/OpenTraceLab/ltnet/pkg/ltspice/netlist"
	"github.com/OpenTraceLab/ltnet/pkg/ltspice/symbol"
	"github.com/spf13/cobra"
)

var (
	minimalOut   bool
	noWires      bool
	noPorts      bool
	noNamedNodes bool
	noReorient   bool
	singleGround bool
	familiesFile string
	outputFile   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <schematic.asc> [more.asc...]",
	Short: "Convert schematics to netlists",
	Long: `Convert one or more LTspice schematic files to netlists.

Each file is converted independently; the netlists are written to stdout
in argument order, separated by a blank line.

Examples:
  ltnet convert rc.asc                       # Full netlist with wires and ports
  ltnet convert --minimal rc.asc             # Component lines only
  ltnet convert --no-named-nodes rc.asc      # Number every net, ignore labels
  ltnet convert --single-ground bridge.asc   # Fail on disjoint ground nets
  ltnet convert -o out.net rc.asc            # Write to a file`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addConvertFlags(convertCmd)
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"write netlists to this file instead of stdout (\"-\" for stdout)")
}

// addConvertFlags registers the conversion options shared by convert and
// watch.
func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&minimalOut, "minimal", false,
		"emit component lines only, without wires, ports or drawing hints")
	cmd.Flags().BoolVar(&noWires, "no-wires", false,
		"omit wire lines")
	cmd.Flags().BoolVar(&noPorts, "no-ports", false,
		"omit port lines")
	cmd.Flags().BoolVar(&noNamedNodes, "no-named-nodes", false,
		"number all nets, ignoring net labels")
	cmd.Flags().BoolVar(&noReorient, "no-reorient", false,
		"keep left/up passives as drawn instead of flipping them")
	cmd.Flags().BoolVar(&singleGround, "single-ground", false,
		"fail when ground flags sit on disjoint nets")
	cmd.Flags().StringVar(&familiesFile, "families", "",
		"component family table (TOML) replacing the built-in one")
}

func buildLibrary() (*symbol.Library, error) {
	if familiesFile == "" {
		return symbol.DefaultLibrary(), nil
	}
	lib, err := symbol.LoadLibraryFile(familiesFile)
	if err != nil {
		return nil, fmt.Errorf("error loading family table: %w", err)
	}
	return lib, nil
}

func buildGenerator() (*netlist.Generator, error) {
	lib, err := buildLibrary()
	if err != nil {
		return nil, err
	}
	gen := netlist.NewGenerator(lib)
	gen.Options.Minimal = minimalOut
	gen.Options.WireDirections = !noWires
	gen.Options.Ports = !noPorts
	gen.Options.NamedNodes = !noNamedNodes
	gen.Options.ReorientRLC = !noReorient
	gen.Options.SingleGround = singleGround
	return gen, nil
}

// convertTo parses one schematic and writes its netlist to w.
func convertTo(w io.Writer, gen *netlist.Generator, path string) error {
	sch, err := asc.ParseFile(path)
	if err != nil {
		return err
	}
	r, err := gen.Generate(sch)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := io.WriteString(w, r.Netlist()); err != nil {
		return fmt.Errorf("error writing netlist: %w", err)
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	gen, err := buildGenerator()
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if outputFile != "" && outputFile != "-" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("error creating %s: %w", outputFile, err)
		}
		defer f.Close()
		out = f
	}

	for i, path := range args {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := convertTo(out, gen, path); err != nil {
			return err
		}
		slog.Debug("converted", "path", path)
	}
	return nil
}
