// Command tap is a PTY multiplexer and introspection server: it runs a
// program under a pseudo-terminal, exposes its scrollback, cursor, and
// live output over a per-session Unix socket, and lets a single
// terminal attach and detach without killing the child.
package main

import (
	"fmt"
	"os"

	"github.com/andrewgazelka/tap/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
