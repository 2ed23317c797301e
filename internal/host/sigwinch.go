package host

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// masterFD is a process-wide write-once slot holding the active session's
// PTY master file descriptor, so the SIGWINCH watcher (which carries no
// per-session context of its own) can reach it. Only one attached session
// runs per tap process, so a single slot suffices.
var masterFD atomic.Int32

func init() {
	masterFD.Store(-1)
}

// installSIGWINCH arms a SIGWINCH watcher that copies stdin's current
// window size onto the PTY master whenever the outer terminal is resized.
// It stores fd in the process-wide slot and returns a stop function.
//
// Go delivers signals to a channel rather than invoking a C-style signal
// handler, so the watcher is ordinary goroutine code; the only restriction
// worth keeping is that it touches nothing but the ioctl calls themselves.
func installSIGWINCH(fd int) (stop func()) {
	masterFD.Store(int32(fd))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigCh:
				propagateWinsize()
			case <-done:
				signal.Stop(sigCh)
				return
			}
		}
	}()

	return func() {
		close(done)
		masterFD.Store(-1)
	}
}

func propagateWinsize() {
	fd := int(masterFD.Load())
	if fd < 0 {
		return
	}
	ws, err := unix.IoctlGetWinsize(int(os.Stdin.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return
	}
	_ = unix.IoctlSetWinsize(fd, unix.TIOCSWINSZ, ws)
}
