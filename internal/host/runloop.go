package host

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/andrewgazelka/tap/internal/keys"
)

type readResult struct {
	data []byte
	err  error
}

// readLoop blocking-reads r into readBufSize chunks and publishes them on
// the returned channel, closing it once r returns an error (including EOF).
func readLoop(r io.Reader) <-chan readResult {
	ch := make(chan readResult, 1)
	go func() {
		defer close(ch)
		buf := make([]byte, readBufSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				ch <- readResult{data: cp}
			}
			if err != nil {
				ch <- readResult{err: err}
				return
			}
		}
	}()
	return ch
}

// RunAttached drives the session with the local TTY attached: it puts the
// terminal in raw mode, arms the SIGWINCH watcher, and services the PTY
// master, stdin, the input channel, and the escape-disambiguation timer
// until the child exits or the user detaches. It returns (exitCode,
// detached).
func (h *Host) RunAttached() (exitCode int, detached bool) {
	fd := int(os.Stdin.Fd())
	if restored, err := term.MakeRaw(fd); err == nil {
		h.Restore = restored
	}
	defer h.restoreTerminal()

	h.stopWinch = installSIGWINCH(int(h.Ptm.Fd()))

	ptyCh := readLoop(h.Ptm)
	stdinCh := readLoop(os.Stdin)

	var escapeTimer *time.Timer
	var escapeC <-chan time.Time

	armEscape := func() {
		if escapeTimer != nil {
			escapeTimer.Stop()
		}
		escapeTimer = time.NewTimer(h.Classifier.EscapeTimeout())
		escapeC = escapeTimer.C
	}
	disarmEscape := func() {
		if escapeTimer != nil {
			escapeTimer.Stop()
		}
		escapeC = nil
	}

	for {
		select {
		case r, ok := <-ptyCh:
			if !ok {
				return 0, false
			}
			if len(r.data) > 0 {
				h.Scrollback.Append(r.data)
				h.Broadcast.Publish(r.data)
				out := h.currentOutput()
				out.Write(r.data)
			}
			if r.err != nil {
				return 0, false
			}

		case r, ok := <-stdinCh:
			if !ok {
				return 0, false
			}
			if r.err != nil {
				return 0, false
			}
			res := h.Classifier.Feed(r.data)
			switch res.Kind {
			case keys.ResultPassthrough:
				disarmEscape()
				translated := keys.Translate(res.Passthrough)
				h.writePTY(translated)
			case keys.ResultAction:
				disarmEscape()
				switch res.Action {
				case keys.ActionOpenEditor:
					h.openEditor()
				case keys.ActionDetach:
					return 0, true
				}
			case keys.ResultNeedMore:
				armEscape()
			}

		case data := <-h.Input:
			h.writePTY(data)

		case <-escapeC:
			res := h.Classifier.Timeout()
			disarmEscape()
			if res.Kind == keys.ResultPassthrough {
				h.writePTY(keys.Translate(res.Passthrough))
			}
		}
	}
}

// RunDetached drives the session with no local TTY: it services the PTY
// master (feeding scrollback, broadcast, and, if populated, the attach
// slot's output) and the input channel until the child exits.
func (h *Host) RunDetached() {
	ptyCh := readLoop(h.Ptm)
	for {
		select {
		case r, ok := <-ptyCh:
			if !ok {
				return
			}
			if len(r.data) > 0 {
				h.Scrollback.Append(r.data)
				h.Broadcast.Publish(r.data)
				h.currentOutput().Write(r.data)
			}
			if r.err != nil {
				return
			}
		case data := <-h.Input:
			h.writePTY(data)
		}
	}
}

// restoreTerminal restores the original termios, unconditionally, on every
// exit path out of attached mode (including via defer on panic).
func (h *Host) restoreTerminal() {
	if h.Restore == nil {
		return
	}
	term.Restore(int(os.Stdin.Fd()), h.Restore)
	h.Restore = nil
}
