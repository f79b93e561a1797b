// Package termvideo plays pre-recorded colored ASCII-art videos in a
// terminal, with optional rescaling to an explicit factor or to the current
// terminal geometry.
//
// A terminal video is a JSON document of styled frames: each frame is a
// list of lines that may embed foreground-color SGR sequences (24-bit
// 38;2;r;g;b, 256-color 38;5;n, and the 0 reset). This package decodes
// those lines into a per-cell glyph and color model, rescales the character
// grid with nearest-neighbor mapping, and re-encodes the result emitting a
// color sequence only where a color run actually changes.
//
// # Quick Start
//
// Load a video and play it at its recorded frame rate:
//
//	video, err := termvideo.LoadVideo("out.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	player := termvideo.NewPlayer(video, termvideo.WithFit(), termvideo.WithLoop())
//	if err := player.Play(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Cancelling ctx (for example from a SIGINT handler) stops playback
// cleanly; the player always leaves the terminal with colors reset and the
// cursor visible, whatever the exit path.
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Line] and [Cell]: the decoded per-character model of a styled line
//   - [Color]: a foreground override, either [RGBColor] or [IndexedColor]
//   - [Resampler]: rescales frames on the character grid
//   - [Player]: drives the drift-free playback loop
//   - [Video] and [Frame]: the JSON document model
//
// # Scaling
//
// Frames scale on the character grid, one glyph per cell, without
// sub-character interpolation:
//
//	r := &termvideo.Resampler{Scale: 0.5}
//	lines := r.Resample(frame.Lines, video.Width, video.Height)
//
// Fit mode queries the terminal geometry fresh for every frame instead,
// so resizing the window mid-playback takes effect immediately.
//
// # Pacing
//
// The player schedules each frame against a fixed virtual clock
// (startTime + index*interval) rather than sleeping one interval per
// frame, so per-frame rendering overhead never accumulates as drift.
// Looping resets both the frame index and the start time.
//
// # Conversion and Export
//
// [ConvertCast] turns an asciicast v2 recording into a video document by
// replaying it through a headless terminal and sampling the screen at a
// fixed rate. [RenderFrame] and [EncodeGIF] export frames as PNG-ready
// images or a whole video as an animated GIF, using x/image font rendering
// and the standard 256-color palette.
package termvideo
