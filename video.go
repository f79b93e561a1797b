package termvideo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultFPS is the playback rate used when the document omits one.
const DefaultFPS = 30.0

// ErrNoFrames reports a video document with an empty frame list.
var ErrNoFrames = errors.New("termvideo: video has no frames")

// Frame is one frame of a terminal video: styled lines, top to bottom. Rows
// may have unequal visible widths; nothing pads them to a rectangle.
type Frame struct {
	Lines []string `json:"lines"`
}

// Video is a pre-recorded terminal video document. Width and Height are the
// declared character-grid geometry, used as scaling fallbacks when a frame
// is empty.
type Video struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    float64 `json:"fps"`
	Frames []Frame `json:"frames"`
}

// FrameRate returns the playback rate, substituting the default when the
// document carries a zero or negative fps.
func (v *Video) FrameRate() float64 {
	if v.FPS <= 0 {
		return DefaultFPS
	}
	return v.FPS
}

// DecodeVideo reads a video document from r. A document without frames is
// rejected with ErrNoFrames.
func DecodeVideo(r io.Reader) (*Video, error) {
	var v Video
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("termvideo: decoding video: %w", err)
	}
	if len(v.Frames) == 0 {
		return nil, ErrNoFrames
	}
	return &v, nil
}

// LoadVideo reads a video document from a file.
func LoadVideo(path string) (*Video, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("termvideo: opening video: %w", err)
	}
	defer f.Close()

	return DecodeVideo(f)
}
