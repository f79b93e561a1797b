package termvideo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// testClock drives the player deterministically: now() returns a virtual
// time that only advances when a pacing sleep happens.
type testClock struct {
	t      time.Time
	slept  []time.Duration
	cancel func(sleeps int) bool
}

func newTestClock() *testClock {
	return &testClock{t: time.Unix(1000, 0)}
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) sleep(ctx context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
	if c.cancel != nil && c.cancel(len(c.slept)) {
		return context.Canceled
	}
	return ctx.Err()
}

func testVideo(frames ...string) *Video {
	v := &Video{Width: 2, Height: 1, FPS: 10}
	for _, f := range frames {
		v.Frames = append(v.Frames, Frame{Lines: []string{f}})
	}
	return v
}

func playWithClock(t *testing.T, v *Video, clock *testClock, opts ...Option) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	p := NewPlayer(v, append(opts, WithOutput(&buf))...)
	p.now = clock.now
	p.sleep = clock.sleep

	err := p.Play(context.Background())
	return buf.String(), err
}

func TestPlayerWritesFramesInOrder(t *testing.T) {
	out, err := playWithClock(t, testVideo("f1", "f2", "f3"), newTestClock())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	i1 := strings.Index(out, "f1")
	i2 := strings.Index(out, "f2")
	i3 := strings.Index(out, "f3")
	if i1 < 0 || i2 < 0 || i3 < 0 || !(i1 < i2 && i2 < i3) {
		t.Errorf("expected frames in order, got %q", out)
	}
}

func TestPlayerSetupAndCleanup(t *testing.T) {
	out, err := playWithClock(t, testVideo("f1"), newTestClock())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(out, HideCursor+ClearScreen+CursorHome) {
		t.Errorf("expected hide/clear/home prefix, got %q", out)
	}
	if !strings.HasSuffix(out, Reset+ShowCursor) {
		t.Errorf("expected reset+show-cursor suffix, got %q", out)
	}
}

func TestPlayerNoClear(t *testing.T) {
	out, err := playWithClock(t, testVideo("f1"), newTestClock(), WithNoClear())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(out, ClearScreen) {
		t.Errorf("expected no screen clear, got %q", out)
	}
}

func TestPlayerPacing(t *testing.T) {
	// 3 frames at 10 fps: the first renders immediately, the next two wait
	// on deadlines 0.1s and 0.2s from the fixed start time.
	clock := newTestClock()
	if _, err := playWithClock(t, testVideo("f1", "f2", "f3"), clock); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(clock.slept) != 2 {
		t.Fatalf("expected 2 pacing sleeps, got %d", len(clock.slept))
	}
	var total time.Duration
	for _, d := range clock.slept {
		if d != 100*time.Millisecond {
			t.Errorf("expected 100ms sleep against the fixed start, got %v", d)
		}
		total += d
	}
	if total != 200*time.Millisecond {
		t.Errorf("expected 200ms total blocking, got %v", total)
	}
}

func TestPlayerInterruptCleansUp(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlayer(testVideo("f1", "f2", "f3"), WithOutput(&buf))
	clock := newTestClock()
	p.now = clock.now
	p.sleep = clock.sleep

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Play(ctx); err != nil {
		t.Fatalf("interrupt must not be an error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "f1") {
		t.Errorf("expected first frame rendered, got %q", out)
	}
	if strings.Contains(out, "f2") {
		t.Errorf("expected playback stopped after interrupt, got %q", out)
	}
	if !strings.HasSuffix(out, Reset+ShowCursor) {
		t.Errorf("expected terminal cleanup after interrupt, got %q", out)
	}
}

func TestPlayerLoopRestartsClock(t *testing.T) {
	clock := newTestClock()
	clock.cancel = func(sleeps int) bool { return sleeps >= 5 }

	out, err := playWithClock(t, testVideo("f1", "f2"), clock, WithLoop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Loop wraparound renders frame 0 immediately against a fresh start
	// time, so every recorded sleep is exactly one interval: no drift
	// accumulates across loops.
	for i, d := range clock.slept {
		if d != 100*time.Millisecond {
			t.Errorf("sleep %d: expected 100ms, got %v", i, d)
		}
	}
	if n := strings.Count(out, "f1"); n < 2 {
		t.Errorf("expected looped playback to render frame 0 again, got %d occurrences", n)
	}
}

func TestPlayerScaledPlayback(t *testing.T) {
	v := testVideo("\x1b[38;5;1mAB")
	out, err := playWithClock(t, v, newTestClock(), WithScale(2.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "AABB") {
		t.Errorf("expected scaled frame 'AABB' in output, got %q", out)
	}
}

func TestPlayerFitUsesSizeFunc(t *testing.T) {
	called := 0
	v := testVideo("ABCD")
	v.Width, v.Height = 4, 1

	_, err := playWithClock(t, v, newTestClock(), WithFit(), WithSizeFunc(func() (int, int, error) {
		called++
		return 2, 10, nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if called == 0 {
		t.Error("expected fit mode to query the size function")
	}
}

func TestPlayerEmptyVideo(t *testing.T) {
	p := NewPlayer(&Video{})

	if err := p.Play(context.Background()); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

func TestPlayerDefaultFrameRate(t *testing.T) {
	v := testVideo("f1", "f2")
	v.FPS = 0
	clock := newTestClock()

	if _, err := playWithClock(t, v, clock); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Default 30 fps: one sleep of 1/30s.
	if len(clock.slept) != 1 {
		t.Fatalf("expected 1 sleep, got %d", len(clock.slept))
	}
	fps := 30.0
	want := time.Duration(float64(time.Second) / fps)
	if clock.slept[0] != want {
		t.Errorf("expected %v sleep, got %v", want, clock.slept[0])
	}
}
