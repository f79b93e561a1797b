package termvideo

import "testing"

func TestRGBColorSequence(t *testing.T) {
	got := RGBColor{R: 12, G: 200, B: 0}.Sequence()

	if got != "\x1b[38;2;12;200;0m" {
		t.Errorf("unexpected sequence %q", got)
	}
}

func TestIndexedColorSequence(t *testing.T) {
	got := IndexedColor{Index: 196}.Sequence()

	if got != "\x1b[38;5;196m" {
		t.Errorf("unexpected sequence %q", got)
	}
}

func TestColorSequenceNil(t *testing.T) {
	if got := ColorSequence(nil); got != "" {
		t.Errorf("expected empty sequence for nil color, got %q", got)
	}
}

func TestColorSequenceRoundTrip(t *testing.T) {
	// Emitted sequences must decode back to the same color.
	colors := []Color{
		RGBColor{R: 1, G: 2, B: 3},
		IndexedColor{Index: 42},
	}

	for _, c := range colors {
		line := DecodeLine(ColorSequence(c) + "X")
		if len(line) != 1 {
			t.Fatalf("expected 1 cell, got %d", len(line))
		}
		if line[0].Fg != c {
			t.Errorf("round trip mismatch: emitted %v, decoded %v", c, line[0].Fg)
		}
	}
}
