package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List the supported component families",
	Long: `List every component family the converter knows: the .asc symbol
name, the reference prefix, the netlist line template and the pin names.

With --families the table from that file is shown instead of the built-in
one.`,
	Args: cobra.NoArgs,
	RunE: runFamilies,
}

func init() {
	rootCmd.AddCommand(familiesCmd)
	familiesCmd.Flags().StringVar(&familiesFile, "families", "",
		"component family table (TOML) replacing the built-in one")
}

func runFamilies(cmd *cobra.Command, args []string) error {
	lib, err := buildLibrary()
	if err != nil {
		return err
	}

	fmt.Printf("%-24s %-7s %-8s %s\n", "Family", "Prefix", "Template", "Pins")
	for _, f := range lib.Families() {
		pins := make([]string, len(f.Pins))
		for i, p := range f.Pins {
			pins[i] = p.Name
		}
		fmt.Printf("%-24s %-7s %-8s %s\n", f.Name, f.Prefix, f.Template, strings.Join(pins, ", "))
		if len(f.Aliases) > 0 {
			fmt.Printf("%-24s aliases: %s\n", "", strings.Join(f.Aliases, ", "))
		}
	}
	return nil
}
