package termvideo

import (
	"bufio"
	"context"
	"io"
	"math"
	"os"
	"time"
)

// Player plays a terminal video to an output stream at the document's frame
// rate. Playback is single-threaded: the only blocking point is the pacing
// sleep between frames.
type Player struct {
	video   *Video
	out     io.Writer
	loop    bool
	scale   float64
	fit     bool
	noClear bool
	size    SizeFunc

	// Clock hooks, replaced in tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Player during construction.
type Option func(*Player)

// WithLoop restarts playback from the first frame after the last one.
func WithLoop() Option {
	return func(p *Player) { p.loop = true }
}

// WithScale sets an explicit scale factor (<1 downscales, >1 upscales).
// Ignored when fit mode is enabled.
func WithScale(s float64) Option {
	return func(p *Player) { p.scale = s }
}

// WithFit scales every frame to the current terminal geometry, overriding
// any explicit scale factor.
func WithFit() Option {
	return func(p *Player) { p.fit = true }
}

// WithNoClear skips the initial screen clear.
func WithNoClear() Option {
	return func(p *Player) { p.noClear = true }
}

// WithOutput sets the output stream. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Player) { p.out = w }
}

// WithSizeFunc sets the terminal geometry source used by fit mode.
func WithSizeFunc(f SizeFunc) Option {
	return func(p *Player) { p.size = f }
}

// NewPlayer creates a player for the given video.
func NewPlayer(v *Video, opts ...Option) *Player {
	p := &Player{
		video: v,
		out:   os.Stdout,
		scale: 1.0,
		now:   time.Now,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play runs the playback loop until the frames are exhausted (non-looping)
// or ctx is cancelled. Cancellation is a normal stop, not an error. On
// every exit path, including write errors, the terminal is left with colors
// reset and the cursor visible.
//
// Pacing is deadline-based: each frame's deadline is startTime plus the
// frame index times the frame interval, so per-frame processing overhead
// never accumulates as drift. A loop restart resets both the index and the
// start time.
func (p *Player) Play(ctx context.Context) (err error) {
	if p.video == nil || len(p.video.Frames) == 0 {
		return ErrNoFrames
	}

	w := bufio.NewWriter(p.out)
	defer func() {
		// Mandatory terminal cleanup, regardless of how the loop exited.
		w.WriteString(Reset)
		w.WriteString(ShowCursor)
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = ferr
		}
	}()

	w.WriteString(HideCursor)
	if !p.noClear {
		w.WriteString(ClearScreen)
	}
	w.WriteString(CursorHome)
	if err := w.Flush(); err != nil {
		return err
	}

	scaling := p.fit || math.Abs(p.scale-1.0) > scaleEpsilon
	resampler := &Resampler{Scale: p.scale, Fit: p.fit, Size: p.size}
	interval := time.Duration(float64(time.Second) / p.video.FrameRate())

	index := 0
	start := p.now()
	for {
		lines := p.video.Frames[index].Lines
		if scaling {
			lines = resampler.Resample(lines, p.video.Width, p.video.Height)
		}

		w.WriteString(CursorHome)
		for _, ln := range lines {
			w.WriteString(ln)
			w.WriteByte('\n')
		}
		// One flush per frame keeps updates tear-free.
		if err := w.Flush(); err != nil {
			return err
		}

		index++
		if index >= len(p.video.Frames) {
			if !p.loop {
				return nil
			}
			index = 0
			start = p.now()
		}

		deadline := start.Add(time.Duration(float64(index) * float64(interval)))
		if d := deadline.Sub(p.now()); d > 0 {
			if p.sleep(ctx, d) != nil {
				return nil
			}
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// sleepContext blocks for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
