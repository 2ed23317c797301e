// Package rundir resolves the runtime directory tap uses for per-session
// sockets and the session registry, and the filenames within it.
package rundir

import (
	"os"
	"path/filepath"
)

// Dir returns the tap runtime directory: $XDG_RUNTIME_DIR/tap if set,
// else ~/.tap, else /tmp/tap.
func Dir() string {
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, "tap")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".tap")
	}
	return filepath.Join(os.TempDir(), "tap")
}

// Ensure creates the runtime directory (mode 0700) if it doesn't exist.
func Ensure() (string, error) {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// SessionsFile returns the path to the session registry file.
func SessionsFile() string {
	return filepath.Join(Dir(), "sessions.json")
}

// SocketPath returns the per-session Unix socket path for a session id.
func SocketPath(sessionID string) string {
	return filepath.Join(Dir(), sessionID+".sock")
}

// LogDir returns the directory --debug logs are written under.
func LogDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".tap", "logs")
}
