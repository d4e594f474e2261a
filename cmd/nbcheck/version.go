package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeadmin-peritiae/docs/internal/version"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nbcheck",
	Run: func(_ *cobra.Command, _ []string) {
		info := version.Get()
		fmt.Printf("nbcheck version %s\n", info.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
