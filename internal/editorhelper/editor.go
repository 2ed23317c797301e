// Package editorhelper spawns the user's external editor on a scrollback
// snapshot, synchronously, so the host can let a user browse and edit the
// captured terminal history in $EDITOR rather than scrolling raw output.
package editorhelper

import (
	"fmt"
	"os"
	"os/exec"
)

// Position is a 1-based cursor hint into the edited content.
type Position struct {
	Line int
	Col  int // 0 means unspecified
}

// Open writes content to a temporary file, runs editorCmd against it with a
// cursor-position hint in the conventional "+LINE" vi/vim form, waits for
// it to exit, and returns the (possibly edited) file contents.
//
// editorCmd is the raw command string from configuration/environment (e.g.
// "vim", "code -w"); it is split on spaces, no shell is invoked.
func Open(editorCmd string, content string, pos Position) (string, error) {
	f, err := os.CreateTemp("", "tap-scrollback-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	args := splitCommand(editorCmd)
	if len(args) == 0 {
		return "", fmt.Errorf("empty editor command")
	}
	if pos.Line > 0 {
		args = append(args, cursorArg(pos))
	}
	args = append(args, path)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run editor %q: %w", editorCmd, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return string(edited), nil
}

func cursorArg(pos Position) string {
	if pos.Col > 0 {
		return fmt.Sprintf("+call cursor(%d,%d)", pos.Line, pos.Col)
	}
	return fmt.Sprintf("+%d", pos.Line)
}

// splitCommand does a minimal whitespace split, sufficient for the
// "editor [flags...]" strings tap accepts from config/env -- it never
// invokes a shell, so quoting rules don't apply.
func splitCommand(s string) []string {
	var fields []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}
