// Command mpdump drains a multipart/form-data body from a file or stdin
// and reports on its parts, exercising internal/engine/multipart outside
// of an HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/yourusername/bolt/cmd/mpdump/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
