package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/codeadmin-peritiae/docs/internal/config"
	"github.com/codeadmin-peritiae/docs/internal/version"
)

var initOutPath string

// initCmd scaffolds a rules profile interactively.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a rules profile interactively",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runInitAction()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initOutPath, "output", "o", "nbcheck-rules.yaml", "Profile file to write")
}

// runInitAction prompts for profile details and writes a starter profile.
func runInitAction() error {
	var (
		name     string
		scope    string
		cond     string
		ruleName string
		pattern  string
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Value(&name),
			huh.NewInput().
				Title("First rule name").
				Value(&ruleName),
			huh.NewInput().
				Title("Pattern the scoped cells must contain (regexp)").
				Value(&pattern),
			huh.NewSelect[string]().
				Title("Rule scope").
				Options(
					huh.NewOption("Whole file", "file"),
					huh.NewOption("All cells", "cells"),
					huh.NewOption("Code cells", "code"),
					huh.NewOption("Prose cells", "text").Selected(true),
				).
				Value(&scope),
			huh.NewSelect[string]().
				Title("Aggregation condition").
				Options(
					huh.NewOption("Any matching cell passes the rule", "any").Selected(true),
					huh.NewOption("Every matching cell must pass", "all"),
				).
				Value(&cond),
		),
	).Run()
	if err != nil {
		return err
	}

	profile := config.Profile{
		Metadata: config.ProfileMetadata{
			Name:       name,
			MinVersion: version.Version,
		},
		Rules: []config.RuleSpec{{
			Name:      ruleName,
			Scope:     scope,
			Condition: cond,
			Pattern:   pattern,
		}},
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	//nolint:gosec // G306: profile files are plain configuration
	if err := os.WriteFile(initOutPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	fmt.Printf("Wrote %s\n", initOutPath)
	return nil
}
