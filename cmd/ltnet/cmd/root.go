package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "ltnet",
	Short: "LTspice schematic to netlist converter",
	Long: `ltnet reconstructs circuit topology from LTspice schematic capture
files (.asc) and emits a flat netlist suitable for symbolic analysis.

Examples:
  ltnet convert rc.asc                # Print the netlist
  ltnet convert --minimal rc.asc      # Component lines only
  ltnet nodes rc.asc                  # Coordinate to node table
  ltnet info rc.asc                   # Schematic summary
  ltnet families                      # Supported component families
  ltnet watch examples/               # Re-convert schematics on change`,
	Version: "0.9.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging routes logs to stderr so netlist output on stdout stays
// clean for piping.
func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if logJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
}
