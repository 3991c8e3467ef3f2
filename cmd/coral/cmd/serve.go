package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"coral/loader"
	"coral/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over HTTP",
	Long: `serve loads every library given by -l (falling back to
coral.toml's libraries list) and exposes POST /api/reduce over HTTP,
guarded by a bearer JWT. A token for the "cli" subject is minted and
printed at startup.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringSliceVarP(&libraryPaths, "library", "l", nil, "library file to load (repeatable)")
}

func runServe(*cobra.Command, []string) error {
	paths := libraryPaths
	if len(paths) == 0 {
		paths = cfg.Libraries
	}

	set, err := loader.LoadAllCached(paths, cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("loading libraries: %w", err)
	}

	secret := []byte(cfg.Serve.JWTSecret)
	if len(secret) == 0 {
		secret = []byte("coral-dev-secret")
		logrus.Warn("no serve.jwt_secret configured in coral.toml; using an insecure development secret")
	}

	tok, err := server.IssueToken(secret, "cli", 24*time.Hour)
	if err != nil {
		return fmt.Errorf("minting startup token: %w", err)
	}
	fmt.Printf("bearer token (24h): %s\n", tok)

	addr := cfg.Serve.Addr
	fmt.Printf("listening on %s\n", addr)
	return http.ListenAndServe(addr, server.New(set, secret).Router())
}
