package termcolor

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestColorToX11HexRGB(t *testing.T) {
	got := colorToX11(termenv.RGBColor("#ff8000"))
	want := "rgb:ffff/8080/0000"
	if got != want {
		t.Errorf("colorToX11 = %q, want %q", got, want)
	}
}

func TestColorToX11Nil(t *testing.T) {
	if got := colorToX11(nil); got != "" {
		t.Errorf("colorToX11(nil) = %q, want empty", got)
	}
}
