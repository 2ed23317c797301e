// Package keys implements the raw-stdin input classifier and the
// enhanced-keyboard-protocol translator shared by the PTY host.
package keys

import (
	"bytes"
	"time"
)

// Action names a keybind's effect. The set is fixed by tap's own keymap
// (configured via tapconfig), not user-extensible beyond OpenEditor/Detach.
type Action string

const (
	ActionOpenEditor Action = "open_editor"
	ActionDetach     Action = "detach"
)

// Binding pairs a keybind with the action it triggers.
type Binding struct {
	Key    Keybind
	Action Action
}

// Result is what Classifier.Feed or Classifier.Timeout produces.
type Result struct {
	// Kind distinguishes the three possible outcomes.
	Kind ResultKind
	// Passthrough holds the raw bytes to forward to the child, valid
	// when Kind == ResultPassthrough.
	Passthrough []byte
	// Action holds the triggered action, valid when Kind == ResultAction.
	Action Action
}

type ResultKind int

const (
	ResultPassthrough ResultKind = iota
	ResultAction
	ResultNeedMore
)

type state int

const (
	stateIdle state = iota
	statePendingEscape
)

// Classifier interprets raw stdin reads as passthrough bytes, a bound
// keybind action, or a "need more input" signal while a bare ESC might
// still turn into the start of an Alt-sequence.
//
// A Classifier is not safe for concurrent use; it is driven exclusively by
// the host's main loop.
type Classifier struct {
	bindings      []Binding
	escapeTimeout time.Duration
	st            state
}

// NewClassifier builds a classifier with the given keybind table and
// escape timeout (the caller is responsible for arming a timer of this
// duration whenever HasPendingEscape becomes true, and calling Timeout
// when it fires).
func NewClassifier(bindings []Binding, escapeTimeout time.Duration) *Classifier {
	return &Classifier{bindings: bindings, escapeTimeout: escapeTimeout}
}

// EscapeTimeout returns the configured escape-disambiguation timeout.
func (c *Classifier) EscapeTimeout() time.Duration {
	return c.escapeTimeout
}

// HasPendingEscape reports whether the classifier is waiting to see if a
// lone ESC byte is the start of an Alt-sequence.
func (c *Classifier) HasPendingEscape() bool {
	return c.st == statePendingEscape
}

// Feed classifies one buffer read from stdin.
func (c *Classifier) Feed(buf []byte) Result {
	if c.st == statePendingEscape {
		c.st = stateIdle
		logical := append([]byte{0x1B}, buf...)
		return c.classifyIdle(logical)
	}
	return c.classifyIdle(buf)
}

func (c *Classifier) classifyIdle(buf []byte) Result {
	if len(buf) == 1 && buf[0] == 0x1B {
		c.st = statePendingEscape
		return Result{Kind: ResultNeedMore}
	}
	// A binding matches the key event at the start of buf; any bytes after
	// the matched event are dropped, since an action key normally arrives as
	// a read of its own.
	enhanced := buf
	if seq, _, ok := scanCSIu(buf); ok {
		enhanced = seq
	}
	for _, b := range c.bindings {
		if b.Key.matchesEnhanced(enhanced) || bytes.HasPrefix(buf, b.Key.legacyBytes()) {
			return Result{Kind: ResultAction, Action: b.Action}
		}
	}
	return Result{Kind: ResultPassthrough, Passthrough: buf}
}

// Timeout is called by the host when its armed escape-disambiguation timer
// fires while HasPendingEscape is true. It flushes the bare ESC as
// passthrough and returns to Idle.
func (c *Classifier) Timeout() Result {
	c.st = stateIdle
	return Result{Kind: ResultPassthrough, Passthrough: []byte{0x1B}}
}
