// Package registry manages the crash-safe JSON session list tap keeps under
// the runtime directory, guarded by an advisory file lock so concurrent
// `tap start` invocations don't race each other's reads and writes.
package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/flock"
)

// Session is one entry in the session registry.
type Session struct {
	ID       string    `json:"id"`
	PID      int       `json:"pid"`
	Started  time.Time `json:"started"`
	Command  []string  `json:"command"`
	Attached bool      `json:"attached"`
	Cols     int       `json:"cols"`
	Rows     int       `json:"rows"`
	Term     string    `json:"term"`
	Socket   string    `json:"socket"`
}

// Mutate reads the session list at path under an exclusive advisory lock,
// invokes f on the in-memory slice, and writes the result back before
// releasing the lock. A missing or unparsable file is treated as an empty
// list rather than an error.
func Mutate(path string, f func([]Session) []Session) error {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("open session registry: %w", err)
	}
	defer file.Close()

	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock session registry: %w", err)
	}
	defer lock.Unlock()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read session registry: %w", err)
	}

	var sessions []Session
	if len(data) > 0 {
		if err := json.Unmarshal(data, &sessions); err != nil {
			sessions = nil
		}
	}

	sessions = f(sessions)

	out, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session registry: %w", err)
	}

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("truncate session registry: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek session registry: %w", err)
	}
	if _, err := file.Write(out); err != nil {
		return fmt.Errorf("write session registry: %w", err)
	}
	return nil
}

// Add inserts or replaces (by ID) a session entry.
func Add(path string, s Session) error {
	return Mutate(path, func(sessions []Session) []Session {
		out := make([]Session, 0, len(sessions)+1)
		for _, existing := range sessions {
			if existing.ID != s.ID {
				out = append(out, existing)
			}
		}
		return append(out, s)
	})
}

// Remove deletes the entry with the given ID, if present.
func Remove(path string, id string) error {
	return Mutate(path, func(sessions []Session) []Session {
		out := make([]Session, 0, len(sessions))
		for _, existing := range sessions {
			if existing.ID != id {
				out = append(out, existing)
			}
		}
		return out
	})
}

// SetAttached flips the attached flag for the entry with the given ID.
func SetAttached(path string, id string, attached bool) error {
	return Mutate(path, func(sessions []Session) []Session {
		for i := range sessions {
			if sessions[i].ID == id {
				sessions[i].Attached = attached
			}
		}
		return sessions
	})
}

// List reads the session registry without locking and returns entries whose
// socket file still exists on disk, leaving out sessions whose host has
// already exited. Stale entries are not removed from the file.
func List(path string) ([]Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session registry: %w", err)
	}

	var sessions []Session
	if len(data) > 0 {
		if err := json.Unmarshal(data, &sessions); err != nil {
			return nil, nil
		}
	}

	live := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if _, err := os.Stat(s.Socket); err == nil {
			live = append(live, s)
		}
	}
	return live, nil
}
