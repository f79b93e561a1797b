package termvideo

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"

	headlessterm "github.com/danielgatis/go-headless-term"
)

// castHeader is the first line of an asciicast v2 recording.
type castHeader struct {
	Version int `json:"version"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// ConvertOptions controls asciicast conversion.
type ConvertOptions struct {
	// FPS is the sampling rate of the produced video. Defaults to 30.
	FPS float64
}

// ConvertCast replays an asciicast v2 recording through a headless terminal
// and samples the screen at a fixed frame rate, producing a video document.
// Output events drive the emulation; resize events resize the screen. A
// final frame is always sampled after the last event, so a recording
// shorter than one frame interval still yields one frame.
func ConvertCast(r io.Reader, opts *ConvertOptions) (*Video, error) {
	fps := DefaultFPS
	if opts != nil && opts.FPS > 0 {
		fps = opts.FPS
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("termvideo: reading cast: %w", err)
		}
		return nil, fmt.Errorf("termvideo: empty cast")
	}

	var hdr castHeader
	if err := json.Unmarshal(sc.Bytes(), &hdr); err != nil {
		return nil, fmt.Errorf("termvideo: decoding cast header: %w", err)
	}
	if hdr.Version != 2 {
		return nil, fmt.Errorf("termvideo: unsupported cast version %d", hdr.Version)
	}

	cols := hdr.Width
	if cols <= 0 {
		cols = fallbackCols
	}
	rows := hdr.Height
	if rows <= 0 {
		rows = fallbackRows
	}

	screen := headlessterm.New(headlessterm.WithSize(rows, cols))
	v := &Video{Width: cols, Height: rows, FPS: fps}

	interval := 1.0 / fps
	next := interval
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		when, code, data, err := decodeCastEvent(line)
		if err != nil {
			return nil, err
		}

		for when >= next {
			v.Frames = append(v.Frames, Frame{Lines: snapshotLines(screen)})
			next += interval
		}

		switch code {
		case "o":
			screen.WriteString(data)
		case "r":
			var c, r int
			if _, err := fmt.Sscanf(data, "%dx%d", &c, &r); err == nil && c > 0 && r > 0 {
				screen.Resize(r, c)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("termvideo: reading cast: %w", err)
	}

	v.Frames = append(v.Frames, Frame{Lines: snapshotLines(screen)})
	return v, nil
}

// decodeCastEvent parses one [time, code, data] event line.
func decodeCastEvent(line []byte) (when float64, code, data string, err error) {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return 0, "", "", fmt.Errorf("termvideo: decoding cast event: %w", err)
	}
	if err := json.Unmarshal(raw[0], &when); err != nil {
		return 0, "", "", fmt.Errorf("termvideo: decoding cast event time: %w", err)
	}
	if err := json.Unmarshal(raw[1], &code); err != nil {
		return 0, "", "", fmt.Errorf("termvideo: decoding cast event code: %w", err)
	}
	if err := json.Unmarshal(raw[2], &data); err != nil {
		return 0, "", "", fmt.Errorf("termvideo: decoding cast event data: %w", err)
	}
	return when, code, data, nil
}

// snapshotLines encodes the emulated screen as styled lines, using the same
// run-length transition writer the resampler emits with. Wide characters
// keep their glyph and drop the spacer cell, preserving column alignment.
func snapshotLines(screen *headlessterm.Terminal) []string {
	lines := make([]string, 0, screen.Rows())
	for row := 0; row < screen.Rows(); row++ {
		cells := make(Line, 0, screen.Cols())
		for col := 0; col < screen.Cols(); col++ {
			c := screen.Cell(row, col)
			if c == nil {
				cells = append(cells, Cell{Char: ' '})
				continue
			}
			if c.IsWideSpacer() {
				continue
			}
			ch := c.Char
			if ch == 0 {
				ch = ' '
			}
			cells = append(cells, Cell{Char: ch, Fg: cellColor(c.Fg)})
		}
		lines = append(lines, encodeLine(cells))
	}
	return lines
}

// cellColor maps an emulator cell color onto the video color model. The
// default foreground maps to nil so unstyled text stays unstyled; named
// colors 0-15 become palette indices.
func cellColor(c color.Color) Color {
	switch v := c.(type) {
	case nil:
		return nil
	case color.RGBA:
		return RGBColor{R: v.R, G: v.G, B: v.B}
	case *headlessterm.IndexedColor:
		if v.Index >= 0 && v.Index < 256 {
			return IndexedColor{Index: uint8(v.Index)}
		}
		return nil
	case *headlessterm.NamedColor:
		if v.Name >= 0 && v.Name < 16 {
			return IndexedColor{Index: uint8(v.Name)}
		}
		return nil
	default:
		return nil
	}
}
