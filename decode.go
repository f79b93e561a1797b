package termvideo

import (
	"strconv"
	"strings"
)

// Cell stores one visible character of a styled line together with the
// foreground color active at its position. Fg is nil for cells rendered in
// the terminal's default color.
type Cell struct {
	Char rune
	Fg   Color
}

// Line is a decoded styled line: one Cell per visible character position,
// with all escape sequences consumed.
type Line []Cell

// DecodeLine scans a styled line left to right and returns its per-cell
// glyph and color model.
//
// Recognized sequences are ESC [ followed by an SGR parameter list and a
// terminating 'm': an empty list or "0" resets the active color, "38;5;n"
// selects a 256-color palette entry, and "38;2;r;g;b" selects a 24-bit
// color. Any other parameter list is consumed without changing state.
// Malformed numeric fields leave the prior color active. An introducer with
// no terminating 'm' before the end of the line stops the scan; the
// remaining characters are dropped. Newlines are never emitted as glyphs.
//
// DecodeLine is a pure function; the active color is local to one call and
// never carries over between lines.
func DecodeLine(s string) Line {
	rs := []rune(s)
	n := len(rs)
	line := make(Line, 0, n)

	var active Color
	for i := 0; i < n; {
		if rs[i] == 0x1b && i+1 < n && rs[i+1] == '[' {
			j := i + 2
			for j < n && rs[j] != 'm' {
				j++
			}
			if j >= n {
				// Unterminated introducer: drop the rest of the line.
				break
			}
			if c, ok := parseSGR(string(rs[i+2 : j])); ok {
				active = c
			}
			i = j + 1
			continue
		}
		if rs[i] != '\n' {
			line = append(line, Cell{Char: rs[i], Fg: active})
		}
		i++
	}

	return line
}

// parseSGR interprets one SGR parameter list. The second return is true
// when the list is a recognized, well-formed color selection; otherwise the
// caller keeps its prior color.
func parseSGR(params string) (Color, bool) {
	if params == "" || params == "0" {
		return nil, true
	}

	parts := strings.Split(params, ";")
	switch {
	case len(parts) >= 3 && parts[0] == "38" && parts[1] == "5":
		idx, ok := colorComponent(parts[2])
		if !ok {
			return nil, false
		}
		return IndexedColor{Index: idx}, true

	case len(parts) >= 5 && parts[0] == "38" && parts[1] == "2":
		r, okR := colorComponent(parts[2])
		g, okG := colorComponent(parts[3])
		b, okB := colorComponent(parts[4])
		if !okR || !okG || !okB {
			return nil, false
		}
		return RGBColor{R: r, G: g, B: b}, true
	}

	return nil, false
}

// colorComponent parses a single 0..255 SGR color field.
func colorComponent(s string) (uint8, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 255 {
		return 0, false
	}
	return uint8(v), true
}
