package termvideo

import (
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// scaleEpsilon is the tolerance within which an effective scale factor
// counts as 1.0 and the resampling pass is skipped.
const scaleEpsilon = 1e-6

// minScale is the hard floor applied to explicit scale factors, preventing
// degenerate zero or negative scales.
const minScale = 0.01

// Fallback terminal geometry when the real size cannot be queried.
const (
	fallbackCols = 80
	fallbackRows = 24
)

// SizeFunc reports the current terminal geometry in character cells. Fit
// mode calls it fresh for every frame so window resizes take effect
// mid-playback.
type SizeFunc func() (cols, rows int, err error)

// Resampler rescales styled frames on the character grid using
// nearest-neighbor cell mapping. Color escape sequences are re-emitted only
// where the color actually changes, so output size is proportional to the
// number of color runs rather than the cell count.
type Resampler struct {
	// Scale is the explicit scale factor (<1 downscales, >1 upscales).
	// Values below 0.01 are clamped up. Ignored when Fit is set.
	Scale float64

	// Fit derives the scale factor from the current terminal geometry
	// instead of Scale.
	Fit bool

	// Size queries the terminal geometry for fit mode. If nil, the
	// process's stdout terminal is queried, falling back to 80x24.
	Size SizeFunc
}

// Resample rescales one frame's styled lines. width and height are the
// document's declared geometry, used as fallbacks when the frame itself
// decodes to nothing. The input slice is returned unchanged when the
// effective scale is within epsilon of 1.0.
func (r *Resampler) Resample(lines []string, width, height int) []string {
	s := r.factor(width, height)
	if math.Abs(s-1.0) < scaleEpsilon {
		return lines
	}
	return r.resampleAt(lines, width, height, s)
}

// factor computes the effective scale factor per the configured mode.
func (r *Resampler) factor(width, height int) float64 {
	if !r.Fit {
		return math.Max(minScale, r.Scale)
	}

	cols, rows := r.terminalSize()
	sw := float64(cols) / float64(max(1, width))
	sh := float64(max(1, rows-1)) / float64(max(1, height))
	s := math.Min(sw, sh)
	if s <= 0 {
		s = 1.0
	}
	return s
}

// terminalSize resolves the geometry source and applies the 80x24 fallback.
func (r *Resampler) terminalSize() (cols, rows int) {
	size := r.Size
	if size == nil {
		size = stdoutSize
	}
	cols, rows, err := size()
	if err != nil || cols <= 0 || rows <= 0 {
		return fallbackCols, fallbackRows
	}
	return cols, rows
}

// stdoutSize queries the terminal attached to stdout.
func stdoutSize() (cols, rows int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// resampleAt performs the nearest-neighbor pass at scale s. Each source row
// keeps its own width; rows of unequal length are never padded to a
// rectangle. A source row with zero glyphs produces a bare reset line. When
// the frame has no rows at all, the declared height feeds the scale math
// but no placeholder rows are synthesized, so the output may be empty.
func (r *Resampler) resampleAt(lines []string, width, height int, s float64) []string {
	decoded := make([]Line, len(lines))
	for i, ln := range lines {
		decoded[i] = DecodeLine(ln)
	}

	srcH := len(decoded)
	if srcH == 0 {
		srcH = max(1, height)
	}

	tgtH := max(1, int(float64(srcH)*s))
	out := make([]string, 0, tgtH)
	for ro := 0; ro < tgtH; ro++ {
		rs := min(srcH-1, int(float64(ro)/s))
		if rs >= len(decoded) {
			continue
		}

		row := decoded[rs]
		if len(row) == 0 {
			out = append(out, Reset)
			continue
		}

		rowW := len(row)
		tgtW := max(1, int(float64(rowW)*s))
		cells := make(Line, 0, tgtW)
		for co := 0; co < tgtW; co++ {
			cs := min(rowW-1, int(float64(co)/s))
			cells = append(cells, row[cs])
		}
		out = append(out, encodeLine(cells))
	}

	return out
}

// encodeLine re-encodes a decoded line, emitting a color sequence only
// where the color changes and an unconditional trailing reset so no color
// bleeds into the next terminal line.
func encodeLine(cells Line) string {
	var b strings.Builder

	var prev Color = unsetColor{}
	for _, cell := range cells {
		if cell.Fg != prev {
			if cell.Fg == nil {
				b.WriteString(Reset)
			} else {
				b.WriteString(cell.Fg.Sequence())
			}
			prev = cell.Fg
		}
		b.WriteRune(cell.Char)
	}
	b.WriteString(Reset)

	return b.String()
}

// unsetColor is the "no color seen yet" sentinel for transition tracking.
// It is distinct from nil (no override) so the first cell of a row always
// emits a sequence, including an explicit reset for uncolored cells.
type unsetColor struct{}

func (unsetColor) Sequence() string { return "" }
