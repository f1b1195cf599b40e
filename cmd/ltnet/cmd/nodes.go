package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
	"github.com/spf13/cobra"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes <schematic.asc>",
	Short: "Show the coordinate to node assignment",
	Long: `Display every connection point of a schematic with the net it
resolved to, sorted by coordinates. Useful when a netlist joins or splits
nets unexpectedly.

Examples:
  ltnet nodes rc.asc
  ltnet nodes --no-named-nodes rc.asc   # Numbers instead of labels`,
	Args: cobra.ExactArgs(1),
	RunE: runNodes,
}

func init() {
	rootCmd.AddCommand(nodesCmd)
	nodesCmd.Flags().BoolVar(&noNamedNodes, "no-named-nodes", false,
		"number all nets, ignoring net labels")
	nodesCmd.Flags().BoolVar(&singleGround, "single-ground", false,
		"fail when ground flags sit on disjoint nets")
	nodesCmd.Flags().StringVar(&familiesFile, "families", "",
		"component family table (TOML) replacing the built-in one")
}

func runNodes(cmd *cobra.Command, args []string) error {
	gen, err := buildGenerator()
	if err != nil {
		return err
	}
	sch, err := asc.ParseFile(args[0])
	if err != nil {
		return err
	}
	r, err := gen.Generate(sch)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	points := r.Nodes.Points()
	nets := make(map[string]bool)
	for _, pn := range points {
		nets[pn.Name] = true
	}

	fmt.Printf("Schematic: %s\n", args[0])
	fmt.Printf("Points: %d\n", len(points))
	fmt.Printf("Nets: %d\n", len(nets))
	fmt.Println()
	for _, pn := range points {
		fmt.Printf("%s : %s\n", pn.At.Key(), pn.Name)
	}
	return nil
}
