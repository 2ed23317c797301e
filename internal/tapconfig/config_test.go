package tapconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom(missing) error: %v", err)
	}
	want := Default()
	if cfg.Keybind.Editor != want.Keybind.Editor || cfg.Timing.EscapeTimeoutMS != want.Timing.EscapeTimeoutMS {
		t.Fatalf("LoadFrom(missing) = %+v, want %+v", cfg, want)
	}
}

func TestLoadFromParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "editor: vim\nkeybinds:\n  editor: Alt-e\ntiming:\n  escape_timeout_ms: 120\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Editor != "vim" {
		t.Errorf("Editor = %q", cfg.Editor)
	}
	if cfg.Keybind.Editor != "Alt-e" {
		t.Errorf("Keybind.Editor = %q", cfg.Keybind.Editor)
	}
	if cfg.Timing.EscapeTimeoutMS != 120 {
		t.Errorf("EscapeTimeoutMS = %d", cfg.Timing.EscapeTimeoutMS)
	}
}

func TestLoadFromRejectsBadKeybind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "keybinds:\n  editor: NotAKey\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid keybind")
	}
}

func TestResolveEditorPrecedence(t *testing.T) {
	cfg := Default()
	t.Setenv("VISUAL", "visual-editor")
	t.Setenv("EDITOR", "editor-editor")
	if got := cfg.ResolveEditor(); got != "visual-editor" {
		t.Errorf("ResolveEditor() = %q, want VISUAL", got)
	}

	t.Setenv("VISUAL", "")
	if got := cfg.ResolveEditor(); got != "editor-editor" {
		t.Errorf("ResolveEditor() = %q, want EDITOR", got)
	}

	t.Setenv("EDITOR", "")
	if got := cfg.ResolveEditor(); got != "vi" {
		t.Errorf("ResolveEditor() = %q, want vi", got)
	}

	cfg.Editor = "configured-editor"
	if got := cfg.ResolveEditor(); got != "configured-editor" {
		t.Errorf("ResolveEditor() = %q, want configured-editor", got)
	}
}
