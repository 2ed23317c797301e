// Package host implements the PTY host: the process that owns a PTY
// master, runs the child under it, maintains the scrollback, fans output
// out to socket subscribers, and arbitrates attach/detach of the local
// terminal and socket clients.
package host

import (
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/andrewgazelka/tap/internal/editorhelper"
	"github.com/andrewgazelka/tap/internal/keys"
	"github.com/andrewgazelka/tap/internal/registry"
	"github.com/andrewgazelka/tap/internal/rundir"
	"github.com/andrewgazelka/tap/internal/scrollback"
	"github.com/andrewgazelka/tap/internal/tapconfig"
	"github.com/andrewgazelka/tap/internal/termcolor"
	"github.com/andrewgazelka/tap/internal/wire"
)

const (
	defaultRows        = 24
	defaultCols        = 80
	ptyWriteTimeout    = 2 * time.Second
	maxScrollbackLines = 10000
	readBufSize        = 4096
)

// Host owns one session's PTY master, child process, scrollback, broadcast
// fan-out, attach slot, and main loop.
type Host struct {
	SessionID    string
	SocketPath   string
	RegistryPath string

	Ptm *os.File
	Cmd *exec.Cmd

	Scrollback *scrollback.Store
	Broadcast  *Broadcast
	Input      chan []byte
	AttachSlot *AttachSlot

	Classifier *keys.Classifier
	Config     *tapconfig.Config

	// ioMu guards Output/InputSrc/attachConn during the brief windows where
	// attach or detach swaps them out from under the main loop.
	ioMu       sync.Mutex
	Output     io.Writer
	InputSrc   io.Reader
	attachConn net.Conn // non-nil while a client is attached over the wire

	Restore *term.State // original termios, nil if never raw

	rows, cols, childRows int

	stopWinch func()
	listener  net.Listener

	ended atomic.Bool
}

// StartOpts configures a new session.
type StartOpts struct {
	SessionID string
	Command   []string
	Config    *tapconfig.Config
	Attached  bool // whether the local TTY is attached at startup
}

// Start creates the runtime directory, resolves a command vector, opens a
// PTY, forks the child, registers the session, and returns a ready Host.
// The caller is responsible for driving RunAttached or RunDetached next.
func Start(opts StartOpts) (*Host, error) {
	if _, err := rundir.Ensure(); err != nil {
		return nil, fmt.Errorf("ensure runtime dir: %w", err)
	}

	command := opts.Command
	if len(command) == 0 {
		command = []string{defaultShell()}
	}
	command = withShellFlags(command)

	rows, cols := defaultRows, defaultCols
	if opts.Attached {
		if c, r, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
			cols, rows = c, r
		}
	}

	h := &Host{
		SessionID:    opts.SessionID,
		SocketPath:   rundir.SocketPath(opts.SessionID),
		RegistryPath: rundir.SessionsFile(),
		Scrollback:   scrollback.New(rows, cols, maxScrollbackLines),
		Broadcast:    NewBroadcast(),
		Input:        make(chan []byte, 256),
		AttachSlot:   &AttachSlot{},
		Config:       opts.Config,
		rows:         rows,
		cols:         cols,
		childRows:    rows,
	}

	h.Cmd = exec.Command(command[0], command[1:]...)
	h.Cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	h.Cmd.Env = append(h.Cmd.Env, colorEnv(termcolor.Detect())...)

	ptm, err := pty.StartWithSize(h.Cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}
	h.Ptm = ptm

	if err := registry.Add(h.RegistryPath, registry.Session{
		ID:       h.SessionID,
		PID:      h.Cmd.Process.Pid,
		Started:  time.Now().UTC(),
		Command:  command,
		Attached: opts.Attached,
		Cols:     cols,
		Rows:     rows,
		Term:     "xterm-256color",
		Socket:   h.SocketPath,
	}); err != nil {
		ptm.Close()
		return nil, fmt.Errorf("register session: %w", err)
	}

	ln, err := net.Listen("unix", h.SocketPath)
	if err != nil {
		ptm.Close()
		return nil, fmt.Errorf("listen on socket: %w", err)
	}
	h.listener = ln

	escapeMS := uint64(50)
	if h.Config != nil {
		escapeMS = h.Config.Timing.EscapeTimeoutMS
	}
	editorBind := "Ctrl-e"
	if h.Config != nil {
		editorBind = h.Config.Keybind.Editor
	}
	bindings := []keys.Binding{{Action: keys.ActionDetach, Key: keys.Keybind{Mod: keys.ModCtrl, Char: 'd'}}}
	if kb, err := keys.ParseKeybind(editorBind); err == nil {
		bindings = append([]keys.Binding{{Key: kb, Action: keys.ActionOpenEditor}}, bindings...)
	}
	h.Classifier = keys.NewClassifier(bindings, time.Duration(escapeMS)*time.Millisecond)

	if opts.Attached {
		h.Output = os.Stdout
		h.InputSrc = os.Stdin
	} else {
		h.Output = io.Discard
		h.InputSrc = newBlockingReader()
	}

	return h, nil
}

// Listener exposes the session's Unix listener to the socket server.
func (h *Host) Listener() net.Listener { return h.listener }

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// withShellFlags appends the interactive/login flag a shell needs to behave
// like a normal login session, per the shell basename.
func withShellFlags(command []string) []string {
	base := command[0]
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	switch base {
	case "nu", "nushell":
		return append(append([]string{}, command...), "-l")
	case "bash", "zsh":
		return append(append([]string{}, command...), "-i")
	default:
		return command
	}
}

// Resize updates the scrollback, PTY winsize, and cached dimensions.
func (h *Host) Resize(rows, cols int) {
	h.rows, h.cols, h.childRows = rows, cols, rows
	h.Scrollback.Resize(rows, cols)
	pty.Setsize(h.Ptm, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// swapIO atomically replaces Output/InputSrc, used by attach/detach
// transitions.
func (h *Host) swapIO(out io.Writer, in io.Reader) {
	h.ioMu.Lock()
	h.Output, h.InputSrc = out, in
	h.ioMu.Unlock()
}

func (h *Host) currentOutput() io.Writer {
	h.ioMu.Lock()
	defer h.ioMu.Unlock()
	return h.Output
}

// setAttachConn records (or clears, with nil) the connection currently
// attached over the wire, so Teardown can deliver a final SessionEnded.
func (h *Host) setAttachConn(conn net.Conn) {
	h.ioMu.Lock()
	h.attachConn = conn
	h.ioMu.Unlock()
}

// writePTY writes to the master with a timeout, matching the host's
// obligation to never hang its main loop on a stalled child.
func (h *Host) writePTY(p []byte) (int, error) {
	type result struct {
		n   int
		err error
	}
	ch := make(chan result, 1)
	go func() {
		n, err := h.Ptm.Write(p)
		ch <- result{n, err}
	}()
	timer := time.NewTimer(ptyWriteTimeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.n, r.err
	case <-timer.C:
		return 0, fmt.Errorf("pty write timed out")
	}
}

// openEditor is invoked from the main loop on ActionOpenEditor: it snapshots
// the scrollback and cursor, computes a viewport-anchored cursor line, and
// spawns the configured editor synchronously on the captured text.
func (h *Host) openEditor() {
	content := h.Scrollback.GetLines(nil)
	row, _ := h.Scrollback.CursorPosition()

	totalLines := len(strings.Split(content, "\r\n"))
	cursorLine := totalLines - defaultRows + row + 1
	if cursorLine < 1 {
		cursorLine = 1
	}

	editorCmd := "vi"
	if h.Config != nil {
		editorCmd = h.Config.ResolveEditor()
	}

	term.Restore(int(os.Stdin.Fd()), h.Restore)
	_, editErr := editorhelper.Open(editorCmd, content, editorhelper.Position{Line: cursorLine})
	if restored, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
		h.Restore = restored
	}
	if editErr != nil {
		fmt.Fprintf(os.Stderr, "tap: editor: %v\r\n", editErr)
	}
}

// Teardown removes the socket file and registry entry, waits for the child
// to compute its exit code, notifies any attached client with a final
// SessionEnded response, and closes the broadcast. It is safe to call once,
// after the main loop has observed master EOF.
func (h *Host) Teardown() int {
	h.ended.Store(true)
	if h.stopWinch != nil {
		h.stopWinch()
	}
	h.listener.Close()
	os.Remove(h.SocketPath)
	registry.Remove(h.RegistryPath, h.SessionID)
	code := waitExitCode(h.Cmd)
	h.notifyAttachEnded(code)
	h.Broadcast.Close()
	return code
}

// notifyAttachEnded sends a final SessionEnded response to a connected
// attach client, if any, and closes the connection so its read loop
// unblocks and releases the attach slot.
func (h *Host) notifyAttachEnded(exitCode int) {
	h.ioMu.Lock()
	conn := h.attachConn
	h.ioMu.Unlock()
	if conn == nil {
		return
	}
	wire.SendResponse(conn, wire.Response{Type: wire.RespSessionEnded, ExitCode: exitCode})
	conn.Close()
}

// DetachTeardown marks the session detached (not removed) in the registry,
// for the case where the user detached rather than the child exiting.
func (h *Host) DetachTeardown() {
	registry.SetAttached(h.RegistryPath, h.SessionID, false)
}

func waitExitCode(cmd *exec.Cmd) int {
	err := cmd.Wait()
	if err == nil {
		return 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return 1
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return exitErr.ExitCode()
}

// colorEnv turns the outer terminal's color hints into environment
// variables so theme-aware programs running inside the PTY (an editor, a
// prompt, a CLI agent) can match the attaching terminal instead of
// guessing or defaulting to a light-background palette.
func colorEnv(hints termcolor.Hints) []string {
	var env []string
	if hints.OscFg != "" {
		env = append(env, "TAP_OSC_FG="+hints.OscFg)
	}
	if hints.OscBg != "" {
		env = append(env, "TAP_OSC_BG="+hints.OscBg)
	}
	if hints.ColorFGBG != "" {
		env = append(env, "COLORFGBG="+hints.ColorFGBG)
	}
	return env
}
