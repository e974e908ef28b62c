package tracer

import "fmt"

// The channel layout of rendered pixels.
type PixelFormat uint8

const (
	// Tightly packed 8-bit RGB; used for file export.
	RGB8 PixelFormat = iota

	// 8-bit RGBA with opaque alpha; used for display surfaces.
	RGBA8
)

// Number of bytes per pixel.
func (f PixelFormat) Channels() int {
	if f == RGBA8 {
		return 4
	}
	return 3
}

func (f PixelFormat) String() string {
	switch f {
	case RGB8:
		return "rgb8"
	case RGBA8:
		return "rgba8"
	}
	return fmt.Sprintf("PixelFormat(%d)", uint8(f))
}

// Lookup a pixel format by name (rgb, rgb8, rgba or rgba8).
func ParsePixelFormat(name string) (PixelFormat, error) {
	switch name {
	case "rgb", "rgb8":
		return RGB8, nil
	case "rgba", "rgba8":
		return RGBA8, nil
	}
	return RGB8, fmt.Errorf("tracer: unsupported pixel format %q", name)
}
