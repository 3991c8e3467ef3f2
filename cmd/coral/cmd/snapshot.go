package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coral/loader"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Rebuild the binary rule-set cache from coral.toml's libraries",
	Long: `snapshot loads every library in coral.toml's libraries list and
writes a binary cache to snapshot_path, so a later run/repl/serve skips
re-tokenizing and re-parsing when the sources haven't changed.`,
	RunE: rebuildSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func rebuildSnapshot(*cobra.Command, []string) error {
	if cfg.SnapshotPath == "" {
		return fmt.Errorf("coral.toml has no snapshot_path configured")
	}

	set, err := loader.LoadAll(cfg.Libraries)
	if err != nil {
		return fmt.Errorf("loading libraries: %w", err)
	}
	if err := loader.SaveSnapshot(cfg.SnapshotPath, cfg.Libraries, set); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	fmt.Printf("wrote snapshot to %s (%d rules)\n", cfg.SnapshotPath, set.Len())
	return nil
}
