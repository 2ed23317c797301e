// Package scrollback wraps the external terminal emulator with the
// lazy-initialization guard and reader-writer lock the PTY host needs to
// expose a queryable visible-screen-plus-history view to concurrent
// socket-request handlers while a single writer goroutine appends bytes.
package scrollback

import (
	"strings"
	"sync"

	headlessterm "github.com/danielgatis/go-headless-term"
)

const defaultMaxLines = 10000

// Store is a single-writer/many-reader scrollback. The zero value is not
// ready for use; construct with New.
type Store struct {
	mu   sync.RWMutex
	rows int
	cols int
	max  int
	term *headlessterm.Terminal
}

// New returns a Store that lazily constructs its terminal emulator on the
// first Append, once the initial PTY dimensions are known. rows/cols may be
// zero at construction time and fixed later via Resize before any Append.
func New(rows, cols, maxLines int) *Store {
	if maxLines <= 0 {
		maxLines = defaultMaxLines
	}
	return &Store{rows: rows, cols: cols, max: maxLines}
}

func (s *Store) ensureLocked() {
	if s.term != nil {
		return
	}
	rows, cols := s.rows, s.cols
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 80
	}
	s.term = headlessterm.New(
		headlessterm.WithSize(rows, cols),
		headlessterm.WithScrollback(newRing(s.max)),
	)
}

// Append feeds bytes through the emulator. Single-writer contract: callers
// must serialize their own calls (the host's main loop is the only writer).
func (s *Store) Append(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	s.term.Write(data)
}

// GetLines returns the visible screen contents, preceded by as much
// scrolled-off history as fits, joined with "\r\n". If n is nil the full
// retained contents (history + screen) are returned; otherwise only the
// last n lines. Before any Append this returns "".
func (s *Store) GetLines(n *int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.term == nil {
		return ""
	}

	lines := make([]string, 0, s.term.ScrollbackLen()+s.term.Rows())
	for i := 0; i < s.term.ScrollbackLen(); i++ {
		lines = append(lines, cellsToText(s.term.ScrollbackLine(i)))
	}
	for row := 0; row < s.term.Rows(); row++ {
		lines = append(lines, s.term.LineContent(row))
	}

	if n != nil && *n >= 0 && *n < len(lines) {
		lines = lines[len(lines)-*n:]
	}
	return strings.Join(lines, "\r\n")
}

// CursorPosition returns the zero-based (row, col) of the cursor. Before
// any Append this returns (0, 0).
func (s *Store) CursorPosition() (row, col int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.term == nil {
		return 0, 0
	}
	return s.term.CursorPos()
}

// Resize changes the emulator's dimensions, constructing it if this is the
// first call before any Append.
func (s *Store) Resize(rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows, s.cols = rows, cols
	if s.term == nil {
		s.ensureLocked()
		return
	}
	s.term.Resize(rows, cols)
}

// cellsToText converts a scrollback line's cells to text, trimming trailing
// spaces and skipping wide-character spacer cells -- the same algorithm the
// emulator applies internally to on-screen lines via Buffer.LineContent,
// reimplemented here because the library exposes no converter for raw
// []Cell scrollback lines.
func cellsToText(cells []headlessterm.Cell) string {
	lastNonSpace := -1
	for i := len(cells) - 1; i >= 0; i-- {
		c := cells[i]
		if c.Char != ' ' && c.Char != 0 && !c.IsWideSpacer() {
			lastNonSpace = i
			break
		}
	}
	if lastNonSpace < 0 {
		return ""
	}
	runes := make([]rune, 0, lastNonSpace+1)
	for i := 0; i <= lastNonSpace; i++ {
		c := cells[i]
		if c.IsWideSpacer() {
			continue
		}
		if c.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, c.Char)
		}
	}
	return string(runes)
}
