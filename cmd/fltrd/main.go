// Command fltrd runs the file-transfer RPC server (C6): it listens on a
// TCP port, optionally advertises itself to the host's ONC-RPC
// portmapper, and dispatches upload_file/download_file/pick_file calls
// until a shutdown signal arrives.
package main

import (
	"fmt"
	"os"

	"github.com/fltrhq/fltr/cmd/fltrd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
