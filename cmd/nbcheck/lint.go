package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeadmin-peritiae/docs/internal/config"
	"github.com/codeadmin-peritiae/docs/internal/notebook"
	"github.com/codeadmin-peritiae/docs/internal/output"
	"github.com/codeadmin-peritiae/docs/internal/runner"
	"github.com/codeadmin-peritiae/docs/internal/styles"
	"github.com/codeadmin-peritiae/docs/internal/version"
)

var (
	lintStyles  []string
	lintProfile string
	lintFormat  string
	lintOutFile string
	lintDetails bool
	lintStrict  bool
	lintJobs    int
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint [flags] <notebook.ipynb> [...]",
	Short: "Run style rule sets over notebook files",
	Long: `Run the registered lint rules over one or more notebook files and
report pass/fail status per rule.

Styles:
  --style google,tensorflow    Built-in rule sets to run
  --profile team.yaml          Extra rules from a profile file

A file that is not a notebook or fails to parse is skipped; skipped files
still fail the run. A rule whose scope matches no cells passes vacuously.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLintAction(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringSliceVar(&lintStyles, "style", []string{"google"}, "Style rule sets to run (comma-separated)")
	lintCmd.Flags().StringVar(&lintProfile, "profile", "", "Extra rules profile (YAML)")
	lintCmd.Flags().StringVar(&lintFormat, "format", "console", "Output format: console, json, yaml, junit, sarif")
	lintCmd.Flags().StringVarP(&lintOutFile, "output", "o", "", "Output file path (default: stdout)")
	lintCmd.Flags().BoolVar(&lintDetails, "details", false, "Show per-cell results under each rule")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Validate notebooks against the nbformat schema")
	lintCmd.Flags().IntVar(&lintJobs, "jobs", 0, "Number of parallel workers (default: number of CPUs)")
}

// runLintAction implements the core logic for the lint command
func runLintAction(ctx context.Context, paths []string) error {
	slog.Debug("building rule registry", "styles", lintStyles)

	registry, err := styles.NewRegistry(lintStyles...)
	if err != nil {
		return err
	}

	if lintProfile != "" {
		profile, err := config.LoadProfile(lintProfile)
		if err != nil {
			return fmt.Errorf("failed to load rules profile: %w", err)
		}
		if err := profile.CheckVersion(version.Version); err != nil {
			return err
		}
		rules, err := profile.BuildRules()
		if err != nil {
			return err
		}
		if err := registry.RegisterAll(rules...); err != nil {
			return fmt.Errorf("failed to register profile rules: %w", err)
		}
		slog.Debug("loaded rules profile", "name", profile.Metadata.Name, "rules", len(rules))
	}

	slog.Debug("registry ready", "rules", registry.Len())

	loader := notebook.NewLoader()
	loader.Strict = lintStrict

	run := runner.New(registry, loader)
	run.Jobs = lintJobs

	result, err := run.Run(ctx, version.Version, paths)
	if err != nil {
		return err
	}

	slog.Debug("lint complete",
		"duration", result.Duration,
		"total_files", result.Summary.TotalFiles,
		"passed", result.Summary.PassedFiles,
		"failed", result.Summary.FailedFiles,
		"skipped", result.Summary.SkippedFiles)

	writer := os.Stdout
	if lintOutFile != "" {
		//nolint:gosec // G304: User-controlled output file path is intentional
		file, err := os.Create(lintOutFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = file.Close() // Best-effort cleanup
		}()
		writer = file
	}

	formatter, err := output.NewFormatter(lintFormat, writer, output.Options{
		Verbose: lintDetails,
		Indent:  true,
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if !result.Success() {
		return fmt.Errorf("lint failed: %d passed, %d failed, %d skipped",
			result.Summary.PassedFiles,
			result.Summary.FailedFiles,
			result.Summary.SkippedFiles)
	}

	return nil
}
