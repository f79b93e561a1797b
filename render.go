package termvideo

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// RenderConfig controls how frames are rendered to images.
type RenderConfig struct {
	// Font face to use for glyphs. If nil, uses basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell dimensions.
	// If zero, derived from font metrics.
	CellWidth  int
	CellHeight int

	// Cols and Rows fix the rendered grid geometry. If zero, derived from
	// the frame content. EncodeGIF sets them from the video's declared
	// geometry so every frame shares one canvas.
	Cols int
	Rows int

	// Palette resolves indexed colors. If nil, uses DefaultPalette.
	Palette *[256]color.RGBA

	// DefaultFG is the color for cells without an override. If nil, uses
	// DefaultForeground.
	DefaultFG *color.RGBA

	// DefaultBG is the canvas background. If nil, uses DefaultBackground.
	DefaultBG *color.RGBA
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return face, nil
}

// RenderFrame renders one frame's styled lines to an RGBA image. Wide
// glyphs advance two grid columns so CJK and emoji content keeps its
// terminal alignment.
func RenderFrame(f Frame, cfg *RenderConfig) *image.RGBA {
	if cfg == nil {
		cfg = &RenderConfig{}
	}

	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth := cfg.CellWidth
	cellHeight := cfg.CellHeight
	if cellWidth == 0 {
		adv, _ := face.GlyphAdvance('M')
		cellWidth = adv.Ceil()
		if cellWidth == 0 {
			cellWidth = 7 // fallback for basicfont
		}
	}
	if cellHeight == 0 {
		cellHeight = face.Metrics().Height.Ceil()
	}

	palette := cfg.Palette
	if palette == nil {
		palette = &DefaultPalette
	}

	defaultFG := DefaultForeground
	if cfg.DefaultFG != nil {
		defaultFG = *cfg.DefaultFG
	}
	defaultBG := DefaultBackground
	if cfg.DefaultBG != nil {
		defaultBG = *cfg.DefaultBG
	}

	decoded := make([]Line, len(f.Lines))
	for i, ln := range f.Lines {
		decoded[i] = DecodeLine(ln)
	}

	rows := cfg.Rows
	if rows == 0 {
		rows = max(1, len(decoded))
	}
	cols := cfg.Cols
	if cols == 0 {
		for _, row := range decoded {
			w := 0
			for _, cell := range row {
				w += runeWidth(cell.Char)
			}
			cols = max(cols, w)
		}
		cols = max(1, cols)
	}

	imgWidth := cols * cellWidth
	imgHeight := rows * cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(defaultBG), image.Point{}, draw.Src)

	metrics := face.Metrics()
	for rowIdx, row := range decoded {
		if rowIdx >= rows {
			break
		}

		col := 0
		for _, cell := range row {
			w := runeWidth(cell.Char)
			if col >= cols {
				break
			}
			if w == 0 || cell.Char == ' ' {
				col += w
				continue
			}

			x := col * cellWidth
			baseline := rowIdx*cellHeight + metrics.Ascent.Ceil()
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(resolveRGBA(cell.Fg, palette, defaultFG)),
				Face: face,
				Dot:  fixed.P(x, baseline),
			}
			d.DrawString(string(cell.Char))

			col += w
		}
	}

	return img
}

// EncodeGIF renders the whole video as an animated GIF. The per-frame delay
// comes from the document frame rate; GIF timing is in centiseconds, so
// rates above 100 fps are clamped to the minimum delay.
func EncodeGIF(v *Video, w io.Writer, cfg *RenderConfig) error {
	if v == nil || len(v.Frames) == 0 {
		return ErrNoFrames
	}

	if cfg == nil {
		cfg = &RenderConfig{}
	}

	// Every GIF frame must share one canvas, so pin the grid geometry:
	// declared video geometry first, widest frame content as fallback.
	c := *cfg
	if c.Cols == 0 {
		c.Cols = v.Width
	}
	if c.Rows == 0 {
		c.Rows = v.Height
	}
	for _, f := range v.Frames {
		c.Rows = max(c.Rows, len(f.Lines))
		for _, ln := range f.Lines {
			c.Cols = max(c.Cols, StringWidth(ln))
		}
	}
	c.Cols = max(1, c.Cols)
	c.Rows = max(1, c.Rows)
	cfg = &c

	delay := int(100.0 / v.FrameRate())
	if delay < 1 {
		delay = 1
	}

	gifPalette := make(color.Palette, 0, len(DefaultPalette))
	for _, c := range DefaultPalette {
		gifPalette = append(gifPalette, c)
	}

	out := &gif.GIF{LoopCount: 0}
	for _, f := range v.Frames {
		rgba := RenderFrame(f, cfg)
		paletted := image.NewPaletted(rgba.Bounds(), gifPalette)
		draw.FloydSteinberg.Draw(paletted, rgba.Bounds(), rgba, image.Point{})
		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
	}

	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("termvideo: encoding gif: %w", err)
	}
	return nil
}
