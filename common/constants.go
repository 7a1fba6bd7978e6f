package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit scales floor-plane world units for the debug overlay.
	PixelsPerUnit = 48.0
)
