package scrollback

import headlessterm "github.com/danielgatis/go-headless-term"

// ring is a bounded circular buffer implementing headlessterm.ScrollbackProvider.
// The emulation library ships no default implementation (only a NoopScrollback
// that discards everything), so tap supplies its own.
type ring struct {
	lines [][]headlessterm.Cell
	max   int
	start int
	count int
}

func newRing(max int) *ring {
	if max < 0 {
		max = 0
	}
	return &ring{lines: make([][]headlessterm.Cell, max), max: max}
}

func (r *ring) Push(line []headlessterm.Cell) {
	if r.max == 0 {
		return
	}
	cp := make([]headlessterm.Cell, len(line))
	copy(cp, line)

	if r.count < r.max {
		r.lines[(r.start+r.count)%r.max] = cp
		r.count++
		return
	}
	r.lines[r.start] = cp
	r.start = (r.start + 1) % r.max
}

func (r *ring) Len() int {
	return r.count
}

func (r *ring) Line(index int) []headlessterm.Cell {
	if index < 0 || index >= r.count {
		return nil
	}
	return r.lines[(r.start+index)%r.max]
}

func (r *ring) Clear() {
	r.lines = make([][]headlessterm.Cell, r.max)
	r.start = 0
	r.count = 0
}

func (r *ring) SetMaxLines(max int) {
	if max < 0 {
		max = 0
	}
	if max == r.max {
		return
	}
	keep := r.count
	if keep > max {
		keep = max
	}
	newLines := make([][]headlessterm.Cell, max)
	for i := 0; i < keep; i++ {
		newLines[i] = r.Line(r.count - keep + i)
	}
	r.lines = newLines
	r.start = 0
	r.count = keep
	r.max = max
}

func (r *ring) MaxLines() int {
	return r.max
}

var _ headlessterm.ScrollbackProvider = (*ring)(nil)
