package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coral/loader"
	"coral/repl"
)

var libraryPaths []string

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Load libraries and reduce a single query to normal form",
	Long: `run loads every library given by -l (falling back to coral.toml's
libraries list) and reduces the query argument to normal form, printing the
result and any print built-in output.

Examples:
  coral run -l math "+ (one) (one)"
  coral run "print hello"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringSliceVarP(&libraryPaths, "library", "l", nil, "library file to load (repeatable)")
}

func runQuery(_ *cobra.Command, args []string) error {
	paths := libraryPaths
	if len(paths) == 0 {
		paths = cfg.Libraries
	}

	set, err := loader.LoadAllCached(paths, cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("loading libraries: %w", err)
	}

	result, err := repl.Eval(args[0], set, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}
