package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags, the way the rest of the pack's
// cobra CLIs stamp their binaries.
var Version = "0.1.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("coral version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
