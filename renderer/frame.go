package renderer

import (
	"image"

	"github.com/achilleasa/spheretrace/tracer"
)

// A rendered frame. Rows are stored top to bottom.
type Frame struct {
	Width  int
	Height int
	Format tracer.PixelFormat

	// Tightly packed pixel data; len(Pix) == Width*Height*Format.Channels().
	Pix []byte
}

// Allocate a frame buffer.
func NewFrame(width, height int, format tracer.PixelFormat) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Format: format,
		Pix:    make([]byte, width*height*format.Channels()),
	}
}

// Number of bytes per frame row.
func (f *Frame) Stride() int {
	return f.Width * f.Format.Channels()
}

// Get the slice backing row y.
func (f *Frame) Row(y int) []byte {
	stride := f.Stride()
	return f.Pix[y*stride : (y+1)*stride]
}

// Get an image view of the frame. RGBA8 frames share their pixel buffer with
// the returned image; RGB8 frames are expanded into a new buffer.
func (f *Frame) Image() *image.NRGBA {
	rect := image.Rect(0, 0, f.Width, f.Height)
	if f.Format == tracer.RGBA8 {
		return &image.NRGBA{Pix: f.Pix, Stride: f.Stride(), Rect: rect}
	}

	img := image.NewNRGBA(rect)
	for src, dst := 0, 0; src < len(f.Pix); src, dst = src+3, dst+4 {
		img.Pix[dst] = f.Pix[src]
		img.Pix[dst+1] = f.Pix[src+1]
		img.Pix[dst+2] = f.Pix[src+2]
		img.Pix[dst+3] = 255
	}
	return img
}
