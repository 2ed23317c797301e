package cli

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrewgazelka/tap/internal/host"
	"github.com/andrewgazelka/tap/internal/rundir"
	"github.com/andrewgazelka/tap/internal/socketserver"
	"github.com/andrewgazelka/tap/internal/tapconfig"
)

func newStartCmd() *cobra.Command {
	var detached bool
	var name string

	cmd := &cobra.Command{
		Use:   "start [-- cmd...]",
		Short: "Start a new session under a PTY",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				existing, _ := listSessionIDs()
				generated, err := host.GenerateUniqueName(existing)
				if err != nil {
					return err
				}
				name = generated
			}

			if detached {
				if err := forkDaemon(name, args); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "session %q started (detached). Use 'tap attach %s' to connect.\n", name, name)
				return nil
			}

			code, err := runAttached(name, args)
			if err != nil {
				return err
			}
			os.Exit(code)
			return nil
		},
	}
	cmd.Flags().BoolVar(&detached, "detached", false, "Start without attaching the local terminal")
	cmd.Flags().StringVar(&name, "name", "", "Session id (auto-generated if omitted)")
	return cmd
}

func listSessionIDs() ([]string, error) {
	sessions, err := registryList()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids, nil
}

func runAttached(sessionID string, command []string) (int, error) {
	cfg, err := tapconfig.Load()
	if err != nil {
		return 1, fmt.Errorf("load config: %w", err)
	}

	h, err := host.Start(host.StartOpts{
		SessionID: sessionID,
		Command:   command,
		Config:    cfg,
		Attached:  true,
	})
	if err != nil {
		return 1, err
	}

	go socketserver.Serve(h.Listener(), h)

	_, detached := h.RunAttached()
	if detached {
		h.DetachTeardown()
		go func() {
			h.RunDetached()
			h.Teardown()
		}()
		return 0, nil
	}
	return h.Teardown(), nil
}

// forkDaemon re-execs this binary with the hidden _daemon subcommand,
// detaching it from the current terminal, and waits for its socket to
// appear.
func forkDaemon(sessionID string, command []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("find executable: %w", err)
	}

	daemonArgs := append([]string{"_daemon", "--name", sessionID, "--"}, command...)
	c := exec.Command(exe, daemonArgs...)

	devNull, err := os.Open(os.DevNull)
	if err != nil {
		return fmt.Errorf("open /dev/null: %w", err)
	}
	c.Stdin = devNull
	c.Stdout = devNull
	c.Stderr = devNull

	if err := c.Start(); err != nil {
		devNull.Close()
		return fmt.Errorf("start daemon: %w", err)
	}
	go func() {
		c.Wait()
		devNull.Close()
	}()

	sockPath := rundir.SocketPath(sessionID)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		if _, err := os.Stat(sockPath); err == nil {
			return nil
		}
	}
	return fmt.Errorf("daemon did not start (socket %s not found)", sockPath)
}
