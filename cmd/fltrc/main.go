// Command fltrc is the file-transfer client (C7): it uploads a local
// file to a remote fltrd server, downloads a remote file locally, or
// drives the interactive traversal engine for both, then exits with
// the precise code spec.md §6 assigns to each outcome.
package main

import (
	"fmt"
	"os"

	"github.com/fltrhq/fltr/cmd/fltrc/commands"
	"github.com/fltrhq/fltr/internal/client"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(client.ExitUsage)
	}
	os.Exit(commands.ExitCode)
}
