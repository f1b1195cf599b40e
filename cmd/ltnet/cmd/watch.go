package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/OpenTraceLab/ltnet/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchDebounce time.Duration
	watchPatterns []string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir> [dir...]",
	Short: "Re-convert schematics when they change",
	Long: `Watch directory trees for schematic changes and print the fresh
netlist on every save. Netlists go to stdout, status messages to stderr.

Runs until interrupted.

Examples:
  ltnet watch .
  ltnet watch --minimal examples/
  ltnet watch --pattern 'amp-*.asc' boards/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addConvertFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond,
		"how long to wait after the last change before converting")
	watchCmd.Flags().StringSliceVar(&watchPatterns, "pattern", nil,
		"file name patterns to watch (default *.asc)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	gen, err := buildGenerator()
	if err != nil {
		return err
	}

	w, err := watch.New(watchDebounce, watchPatterns, func(paths []string) {
		sort.Strings(paths)
		for _, path := range paths {
			if err := convertTo(os.Stdout, gen, path); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					slog.Warn("schematic removed", "path", path)
					continue
				}
				slog.Error("conversion failed", "path", path, "error", err)
				continue
			}
			slog.Info("converted", "path", path)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(args); err != nil {
		return err
	}
	slog.Info("watching for schematic changes", "paths", args)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
