package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
	"github.com/OpenTraceLab/ltnet/pkg/ltspice/symbol"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <schematic.asc> [more.asc...]",
	Short: "Show schematic summary information",
	Long: `Display a summary of one or more LTspice schematic files: record
counts, placed components grouped by family prefix, and net labels.

Unsupported components are listed rather than rejected, so info works on
schematics that convert would refuse.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&familiesFile, "families", "",
		"component family table (TOML) replacing the built-in one")
}

func runInfo(cmd *cobra.Command, args []string) error {
	lib, err := buildLibrary()
	if err != nil {
		return err
	}
	for i, path := range args {
		if i > 0 {
			fmt.Println()
		}
		if err := showInfo(lib, path); err != nil {
			return err
		}
	}
	return nil
}

func showInfo(lib *symbol.Library, path string) error {
	sch, err := asc.ParseFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("Schematic: %s\n", path)
	fmt.Printf("Version: %s\n", sch.Version)
	if sch.Sheet.Width > 0 {
		fmt.Printf("Sheet: %dx%d\n", sch.Sheet.Width, sch.Sheet.Height)
	}
	fmt.Println()

	fmt.Println("Statistics:")
	fmt.Printf("  Components: %d\n", len(sch.Symbols))
	fmt.Printf("  Wires: %d\n", len(sch.Wires))
	fmt.Printf("  Flags: %d (%d ground)\n", len(sch.Flags), len(sch.Grounds()))
	fmt.Printf("  Ports: %d\n", len(sch.IOPins))
	fmt.Printf("  Annotations: %d\n", len(sch.Texts))

	if len(sch.Symbols) > 0 {
		fmt.Println()
		fmt.Println("Components:")

		byPrefix := make(map[string][]string)
		var unsupported []string
		for _, sym := range sch.Symbols {
			fam, err := lib.Lookup(sym.Kind)
			if err != nil {
				unsupported = append(unsupported, fmt.Sprintf("%s (%s)", sym.Name(), sym.Kind))
				continue
			}
			byPrefix[fam.Prefix] = append(byPrefix[fam.Prefix], sym.Name())
		}

		var prefixes []string
		for p := range byPrefix {
			prefixes = append(prefixes, p)
		}
		sort.Strings(prefixes)
		for _, p := range prefixes {
			fmt.Printf("  %s: %s\n", p, strings.Join(byPrefix[p], ", "))
		}
		if len(unsupported) > 0 {
			fmt.Printf("  unsupported: %s\n", strings.Join(unsupported, ", "))
		}
	}

	var labels []string
	for _, f := range sch.Flags {
		if !f.IsGround() {
			labels = append(labels, f.Label)
		}
	}
	if len(labels) > 0 {
		sort.Strings(labels)
		fmt.Println()
		fmt.Println("Net Labels:")
		for _, l := range labels {
			fmt.Printf("  %s\n", l)
		}
	}
	return nil
}
