package termvideo

import "github.com/unilibs/uniwidth"

// runeWidth returns the display width: 2 for wide characters (CJK, emoji),
// 1 for normal, 0 for zero-width (combining marks, control chars).
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// StringWidth returns the display width of a styled line's visible
// characters, with escape sequences excluded from the count.
func StringWidth(s string) int {
	w := 0
	for _, cell := range DecodeLine(s) {
		w += uniwidth.RuneWidth(cell.Char)
	}
	return w
}
