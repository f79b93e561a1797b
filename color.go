package termvideo

import "fmt"

// Terminal control sequences emitted during playback. The color forms must
// stay byte-identical to the forms DecodeLine recognizes so that encoded
// lines round-trip through the decoder.
const (
	// Reset clears all SGR attributes, including the foreground color.
	Reset = "\x1b[0m"
	// HideCursor makes the cursor invisible (DECTCEM).
	HideCursor = "\x1b[?25l"
	// ShowCursor makes the cursor visible again (DECTCEM).
	ShowCursor = "\x1b[?25h"
	// ClearScreen erases the whole display.
	ClearScreen = "\x1b[2J"
	// CursorHome moves the cursor to the top-left corner.
	CursorHome = "\x1b[H"
)

// Color is the foreground color carried by a cell. A nil Color means no
// override: the terminal's default foreground. Colors are immutable values
// compared with ==, which is how color-run transitions are detected.
type Color interface {
	// Sequence returns the SGR escape sequence that switches the terminal
	// foreground to this color.
	Sequence() string
}

// RGBColor is a 24-bit foreground color (SGR 38;2;r;g;b).
type RGBColor struct {
	R, G, B uint8
}

// Sequence returns the 24-bit foreground sequence for this color.
func (c RGBColor) Sequence() string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// IndexedColor is a 256-color palette foreground (SGR 38;5;index).
type IndexedColor struct {
	Index uint8
}

// Sequence returns the 256-color foreground sequence for this color.
func (c IndexedColor) Sequence() string {
	return fmt.Sprintf("\x1b[38;5;%dm", c.Index)
}

// ColorSequence returns the sequence that switches to c, or "" when c is
// nil. Callers emitting a transition into "no color" must write Reset
// themselves; an empty write would leave the previous color active.
func ColorSequence(c Color) string {
	if c == nil {
		return ""
	}
	return c.Sequence()
}
