package texture

import (
	"fmt"
	"image"

	"github.com/achilleasa/spheretrace/asset"
	"github.com/achilleasa/spheretrace/log"
	"github.com/achilleasa/spheretrace/scene"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	// Extra decoders for environment maps; imaging registers png, jpeg,
	// gif, bmp and tiff.
	_ "golang.org/x/image/webp"
)

// Environment maps with a side longer than this are downscaled on load.
// Background lookups are nearest-neighbor so larger maps only cost memory.
var MaxTextureSize uint = 4096

var logger = log.New("texture")

// Decode an image resource into a tightly packed RGB8 texture.
func New(res *asset.Resource) (*scene.Texture, error) {
	img, err := imaging.Decode(res, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %w", res.Path(), err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("texture: image %s has no pixels", res.Path())
	}

	if MaxTextureSize > 0 && (uint(bounds.Dx()) > MaxTextureSize || uint(bounds.Dy()) > MaxTextureSize) {
		logger.Infof("downscaling %s (%dx%d) to fit %d pixels", res.Path(), bounds.Dx(), bounds.Dy(), MaxTextureSize)
		img = resize.Thumbnail(MaxTextureSize, MaxTextureSize, img, resize.Bilinear)
	}

	return FromImage(img), nil
}

// Convert an image into an RGB8 texture. Alpha is discarded.
func FromImage(img image.Image) *scene.Texture {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()

	tex := &scene.Texture{
		Width:    w,
		Height:   h,
		Channels: 3,
		Pixels:   make([]byte, w*h*3),
	}

	wOffset := 0
	for rOffset := 0; rOffset < len(nrgba.Pix); rOffset += 4 {
		tex.Pixels[wOffset] = nrgba.Pix[rOffset]
		tex.Pixels[wOffset+1] = nrgba.Pix[rOffset+1]
		tex.Pixels[wOffset+2] = nrgba.Pix[rOffset+2]
		wOffset += 3
	}

	return tex
}

// Convert a texture back into an image.
func ToImage(tex *scene.Texture) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, tex.Width, tex.Height))
	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			c := tex.At(x, y).RGB8()
			offset := img.PixOffset(x, y)
			img.Pix[offset] = c[0]
			img.Pix[offset+1] = c[1]
			img.Pix[offset+2] = c[2]
			img.Pix[offset+3] = 255
		}
	}
	return img
}
