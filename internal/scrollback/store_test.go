package scrollback

import (
	"strings"
	"testing"

	headlessterm "github.com/danielgatis/go-headless-term"
)

func TestGetLinesBeforeAnyAppend(t *testing.T) {
	s := New(24, 80, 100)
	if got := s.GetLines(nil); got != "" {
		t.Errorf("GetLines(nil) = %q, want empty", got)
	}
	row, col := s.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("CursorPosition() = (%d,%d), want (0,0)", row, col)
	}
}

func TestAppendThenGetLines(t *testing.T) {
	s := New(24, 80, 100)
	s.Append([]byte("hello world\r\n"))
	got := s.GetLines(nil)
	if !strings.Contains(got, "hello world") {
		t.Fatalf("GetLines(nil) = %q, want to contain %q", got, "hello world")
	}
	row, col := s.CursorPosition()
	if row != 1 || col != 0 {
		t.Errorf("CursorPosition() = (%d,%d), want (1,0)", row, col)
	}
}

func TestGetLinesLimitsToLastN(t *testing.T) {
	s := New(24, 80, 100)
	s.Append([]byte("line1\r\nline2\r\nline3\r\n"))
	n := 1
	got := s.GetLines(&n)
	lines := strings.Split(got, "\r\n")
	if len(lines) != 1 {
		t.Fatalf("GetLines(1) returned %d lines: %q", len(lines), got)
	}
}

func TestScrollbackCap(t *testing.T) {
	s := New(5, 20, 10)
	for i := 0; i < 100; i++ {
		s.Append([]byte("x\r\n"))
	}
	n := 10000
	got := s.GetLines(&n)
	lines := strings.Split(got, "\r\n")
	if len(lines) > 10+5 {
		t.Fatalf("got %d lines, want capped near scrollback+screen size", len(lines))
	}
}

func TestResizeBeforeAppendConstructsTerminal(t *testing.T) {
	s := New(0, 0, 100)
	s.Resize(10, 40)
	s.Append([]byte("hi\r\n"))
	if got := s.GetLines(nil); !strings.Contains(got, "hi") {
		t.Fatalf("GetLines(nil) = %q", got)
	}
}

func cellLine(s string) []headlessterm.Cell {
	cells := make([]headlessterm.Cell, len(s))
	for i, r := range s {
		cells[i] = headlessterm.Cell{Char: r}
	}
	return cells
}

func TestRingWrapsAtCapacity(t *testing.T) {
	r := newRing(2)
	r.Push(cellLine("a"))
	r.Push(cellLine("b"))
	r.Push(cellLine("c"))
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if cellsToText(r.Line(0)) != "b" || cellsToText(r.Line(1)) != "c" {
		t.Fatalf("Line(0)=%q Line(1)=%q, want b,c", cellsToText(r.Line(0)), cellsToText(r.Line(1)))
	}
}
