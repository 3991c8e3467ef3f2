// ==============================================================================================
// FILE: cmd/coral/main.go
// ==============================================================================================
// PURPOSE: Entry point. All flag parsing and subcommand wiring lives in
//          cmd/coral/cmd, in cobra's package-level-registration style.
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"coral/cmd/coral/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
