package keys

import (
	"testing"
	"time"
)

func testBindings() []Binding {
	return []Binding{
		{Key: Keybind{Mod: ModCtrl, Char: 'e'}, Action: ActionOpenEditor},
		{Key: Keybind{Mod: ModAlt, Char: 'd'}, Action: ActionDetach},
	}
}

func TestClassifierPassthrough(t *testing.T) {
	c := NewClassifier(testBindings(), 50*time.Millisecond)
	res := c.Feed([]byte("hello"))
	if res.Kind != ResultPassthrough || string(res.Passthrough) != "hello" {
		t.Fatalf("Feed(hello) = %+v", res)
	}
}

func TestClassifierLegacyCtrl(t *testing.T) {
	c := NewClassifier(testBindings(), 50*time.Millisecond)
	res := c.Feed([]byte{'e' & 0x1F})
	if res.Kind != ResultAction || res.Action != ActionOpenEditor {
		t.Fatalf("Feed(Ctrl-e legacy) = %+v", res)
	}
}

func TestClassifierLegacyAlt(t *testing.T) {
	c := NewClassifier(testBindings(), 50*time.Millisecond)
	res := c.Feed([]byte{0x1B, 'd'})
	if res.Kind != ResultAction || res.Action != ActionDetach {
		t.Fatalf("Feed(Alt-d legacy) = %+v", res)
	}
}

func TestClassifierEnhancedCtrl(t *testing.T) {
	c := NewClassifier(testBindings(), 50*time.Millisecond)
	res := c.Feed([]byte("\x1b[101;5u"))
	if res.Kind != ResultAction || res.Action != ActionOpenEditor {
		t.Fatalf("Feed(enhanced Ctrl-e) = %+v", res)
	}
}

func TestClassifierEnhancedAlt(t *testing.T) {
	c := NewClassifier(testBindings(), 50*time.Millisecond)
	res := c.Feed([]byte("\x1b[100;3u"))
	if res.Kind != ResultAction || res.Action != ActionDetach {
		t.Fatalf("Feed(enhanced Alt-d) = %+v", res)
	}
}

func TestClassifierPendingEscapeThenLetter(t *testing.T) {
	c := NewClassifier(testBindings(), 50*time.Millisecond)
	res := c.Feed([]byte{0x1B})
	if res.Kind != ResultNeedMore || !c.HasPendingEscape() {
		t.Fatalf("Feed(ESC) = %+v, pending=%v", res, c.HasPendingEscape())
	}
	res = c.Feed([]byte{'d'})
	if res.Kind != ResultAction || res.Action != ActionDetach {
		t.Fatalf("Feed(d) after pending ESC = %+v", res)
	}
	if c.HasPendingEscape() {
		t.Fatal("still pending after resolving")
	}
}

func TestClassifierTimeoutFlushesBareEscape(t *testing.T) {
	c := NewClassifier(testBindings(), 50*time.Millisecond)
	c.Feed([]byte{0x1B})
	res := c.Timeout()
	if res.Kind != ResultPassthrough || string(res.Passthrough) != "\x1b" {
		t.Fatalf("Timeout() = %+v", res)
	}
	if c.HasPendingEscape() {
		t.Fatal("still pending after timeout")
	}
}

func TestClassifierPendingEscapeThenUnboundPassesBothBytes(t *testing.T) {
	c := NewClassifier(testBindings(), 50*time.Millisecond)
	c.Feed([]byte{0x1B})
	res := c.Feed([]byte{'z'})
	if res.Kind != ResultPassthrough || string(res.Passthrough) != "\x1bz" {
		t.Fatalf("Feed(z) after pending ESC = %+v", res)
	}
}
