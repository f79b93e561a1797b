package termvideo

import "image/color"

// DefaultPalette is the standard 256-color palette used to resolve indexed
// colors when rendering frames to images: 16 named colors (0-15), 216 color
// cube (16-231), 24 grayscale steps (232-255).
var DefaultPalette = [256]color.RGBA{
	// Standard colors (0-7)
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White

	// Bright colors (8-15)
	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White

	// 216 color cube (16-231) and grayscale (232-255) are generated below.
}

func init() {
	// Generate 216 color cube (16-231)
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{
					R: uint8(r * 51),
					G: uint8(g * 51),
					B: uint8(b * 51),
					A: 255,
				}
				i++
			}
		}
	}

	// Generate grayscale (232-255)
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{gray, gray, gray, 255}
	}
}

// DefaultForeground is the color cells without a color override render with
// in image export (light gray).
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the image background color (black).
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// resolveRGBA resolves a cell color against a palette. A nil Color falls
// back to the default foreground.
func resolveRGBA(c Color, palette *[256]color.RGBA, defaultFG color.RGBA) color.RGBA {
	switch v := c.(type) {
	case RGBColor:
		return color.RGBA{R: v.R, G: v.G, B: v.B, A: 255}
	case IndexedColor:
		return palette[v.Index]
	default:
		return defaultFG
	}
}
