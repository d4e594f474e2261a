package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codeadmin-peritiae/docs/internal/notebook"
)

var (
	fmtPreserveOutputs bool
	fmtIgnoreWarn      bool
	fmtTest            bool
)

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <notebook.ipynb> [...]",
	Short: "Format notebooks to the docs style",
	Long: `Normalize notebook files: remove empty cells, strip outputs, rewrite
Colab metadata, and write key-sorted, 2-space-indented JSON.

A notebook with warnings (missing license, missing required patterns) is
not written unless --ignore-warn is set. Skipped files fail the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runFmtAction(args)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVar(&fmtPreserveOutputs, "preserve-outputs", false, "Keep existing output cells")
	fmtCmd.Flags().BoolVar(&fmtIgnoreWarn, "ignore-warn", false, "Overwrite notebook despite warnings")
	fmtCmd.Flags().BoolVar(&fmtTest, "test", false, "Check formatting without writing files")
}

// runFmtAction formats each notebook in turn. A skipped file (not a
// notebook, malformed JSON, or unresolved warnings) leaves the run failed
// but does not stop the remaining files.
func runFmtAction(paths []string) error {
	loader := notebook.NewLoader()
	didSkip := false

	for _, path := range paths {
		slog.Info("formatting notebook", "path", path)

		if filepath.Ext(path) != ".ipynb" {
			slog.Warn("not an .ipynb file, skipping", "path", path)
			didSkip = true
			continue
		}

		nb, source, err := loader.Load(path)
		if err != nil {
			slog.Warn("unable to load notebook, skipping", "path", path, "error", err)
			didSkip = true
			continue
		}

		result := notebook.Format(nb, notebook.FormatOptions{
			PreserveOutputs: fmtPreserveOutputs,
			Path:            path,
		})
		for _, warning := range result.Warnings {
			slog.Warn(warning, "path", path)
		}

		if !fmtIgnoreWarn && !result.Clean() {
			slog.Warn("found warnings, notebook not written, skipping", "path", path)
			didSkip = true
			continue
		}

		formatted, err := notebook.Marshal(nb)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", path, err)
		}

		if fmtTest {
			if !bytes.Equal(source, formatted) {
				slog.Warn("notebook is not formatted", "path", path)
				didSkip = true
			}
			continue
		}

		//nolint:gosec // G306: notebooks are world-readable documentation
		if err := os.WriteFile(path, formatted, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	if didSkip {
		return fmt.Errorf("some notebooks were skipped")
	}
	return nil
}
