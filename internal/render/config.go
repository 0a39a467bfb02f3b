package render

import "image/color"

// Global render configuration for the logical canvas.
var (
	// Backdrop fills the canvas area outside the face.
	Backdrop = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}

	// Logical canvas size; scaled to framebuffer.
	CanvasWidth  = 1920
	CanvasHeight = 1080
)
