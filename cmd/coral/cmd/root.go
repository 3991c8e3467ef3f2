// ==============================================================================================
// FILE: cmd/coral/cmd/root.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: The cobra root command: global flags (library paths, config
//          file, verbosity) shared by every subcommand.
// ==============================================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"coral/config"
)

var (
	configPath string
	verbose    bool
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "coral",
	Short: "Coral term-rewriting language interpreter",
	Long: `coral runs programs written in Coral, a small first-order term
rewriting language: atoms, variables, applications, and rewrite rules
reduced to normal form.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "coral.toml", "path to coral.toml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func loadConfig(*cobra.Command, []string) error {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", configPath, err)
	}
	cfg = loaded
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
