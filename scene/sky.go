package scene

import (
	"fmt"

	"github.com/achilleasa/spheretrace/types"
)

// A tightly packed 8-bit environment image.
type Texture struct {
	Width    int
	Height   int
	Channels int

	// Row-major pixel data; len(Pixels) == Width*Height*Channels.
	Pixels []byte
}

// Validate texture dimensions against the pixel buffer.
func (t *Texture) Validate() error {
	if t.Width < 1 || t.Height < 1 {
		return fmt.Errorf("scene: invalid sky texture dimensions %dx%d", t.Width, t.Height)
	}
	if t.Channels != 1 && t.Channels != 3 && t.Channels != 4 {
		return fmt.Errorf("scene: unsupported sky texture channel count %d", t.Channels)
	}
	if exp := t.Width * t.Height * t.Channels; len(t.Pixels) != exp {
		return fmt.Errorf("scene: sky texture data len mismatch; expected %d bytes, got %d", exp, len(t.Pixels))
	}
	return nil
}

// Fetch the color of texel (x, y) with channels mapped to [0, 1].
// Single channel textures are treated as grayscale.
func (t *Texture) At(x, y int) types.Color {
	offset := (y*t.Width + x) * t.Channels
	if t.Channels == 1 {
		l := float32(t.Pixels[offset]) / 255.0
		return types.RGB(l, l, l)
	}
	return types.RGB(
		float32(t.Pixels[offset])/255.0,
		float32(t.Pixels[offset+1])/255.0,
		float32(t.Pixels[offset+2])/255.0,
	)
}

// The scene background. A sky without a texture renders as a vertical
// gradient; a scene without a sky has a black background.
type Sky struct {
	// Location of the environment image as referenced by the scene file.
	TexturePath string

	// The decoded environment image, if any.
	Texture *Texture
}

// Create a gradient sky.
func NewDefaultSky() *Sky {
	return &Sky{}
}
