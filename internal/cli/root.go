// Package cli implements tap's subcommand dispatcher: the thin front-end
// that loads configuration, resolves which session a command targets, and
// either runs a PTY host in this process or speaks the socket wire
// protocol as a client of one already running.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrewgazelka/tap/internal/rundir"
)

var debug bool

// NewRootCmd builds the tap root command with all subcommands wired in.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tap",
		Short: "A PTY multiplexer and introspection server",
		Long:  "tap runs a command under a PTY, keeps it alive across detach, and exposes its scrollback, cursor, and input over a local socket.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !debug {
				log.SetOutput(io.Discard)
				return nil
			}
			return setupDebugLog()
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log to ~/.tap/logs/<ts>.log")

	root.AddCommand(
		newStartCmd(),
		newDaemonCmd(),
		newAttachCmd(),
		newListCmd(),
		newScrollbackCmd(),
		newCursorCmd(),
		newSizeCmd(),
		newInjectCmd(),
		newSubscribeCmd(),
	)
	return root
}

func setupDebugLog() error {
	dir := rundir.LogDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, time.Now().UTC().Format("20060102T150405Z")+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	log.SetOutput(f)
	return nil
}
