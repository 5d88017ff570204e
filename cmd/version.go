package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohit-756/interview-bot/internal/api"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)
	},
}

func init() {
	api.Version = version
	rootCmd.AddCommand(versionCmd)
}
