// Package termcolor detects the outer terminal's foreground/background
// colors so the PTY host can pass them to the child through its
// environment. The host does not itself answer a child's OSC 10/11 color
// queries.
package termcolor

import (
	"fmt"
	"os"
	"strconv"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Hints captures OSC 10/11 color responses plus a COLORFGBG fallback, as
// observed on the real stdout at host startup.
type Hints struct {
	OscFg     string
	OscBg     string
	ColorFGBG string
}

// Detect reads the current terminal's colors via termenv. When stdout is
// not a TTY it returns a zero Hints rather than guessing.
func Detect() Hints {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return Hints{}
	}

	var h Hints
	output := termenv.NewOutput(os.Stdout)
	if fg := output.ForegroundColor(); fg != nil {
		h.OscFg = colorToX11(fg)
	}
	if bg := output.BackgroundColor(); bg != nil {
		h.OscBg = colorToX11(bg)
	}

	h.ColorFGBG = os.Getenv("COLORFGBG")
	if h.ColorFGBG == "" {
		if output.HasDarkBackground() {
			h.ColorFGBG = "15;0"
		} else {
			h.ColorFGBG = "0;15"
		}
	}
	return h
}

// colorToX11 renders a termenv.Color as an X11 "rgb:RRRR/GGGG/BBBB" string,
// the format terminals expect in an OSC 10/11 response body.
func colorToX11(c termenv.Color) string {
	if c == nil {
		return ""
	}
	if rgbHex, ok := c.(termenv.RGBColor); ok {
		hex := string(rgbHex)
		if len(hex) == 7 && hex[0] == '#' {
			r, _ := strconv.ParseUint(hex[1:3], 16, 8)
			g, _ := strconv.ParseUint(hex[3:5], 16, 8)
			b, _ := strconv.ParseUint(hex[5:7], 16, 8)
			return fmt.Sprintf("rgb:%04x/%04x/%04x", r*0x101, g*0x101, b*0x101)
		}
	}
	rgb := termenv.ConvertToRGB(c)
	r := uint8(rgb.R*255 + 0.5)
	g := uint8(rgb.G*255 + 0.5)
	b := uint8(rgb.B*255 + 0.5)
	return fmt.Sprintf("rgb:%04x/%04x/%04x", uint16(r)*0x101, uint16(g)*0x101, uint16(b)*0x101)
}
