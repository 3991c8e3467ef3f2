package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coral/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `repl loads every library given by -l (falling back to coral.toml's
libraries list) and starts an interactive read-eval-print loop. Type "exit"
or "quit" to leave, "reload" to re-read the libraries from disk.`,
	RunE: startRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringSliceVarP(&libraryPaths, "library", "l", nil, "library file to load (repeatable)")
}

func startRepl(*cobra.Command, []string) error {
	paths := libraryPaths
	if len(paths) == 0 {
		paths = cfg.Libraries
	}

	sess, err := repl.NewSession(paths, cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("loading libraries: %w", err)
	}
	return repl.Start(sess, os.Stdout)
}
