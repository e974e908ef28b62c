package output

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/disintegration/imaging"
)

type fileWriter struct {
	path string
}

func newFileWriter(path string) *fileWriter {
	return &fileWriter{path: path}
}

func (w *fileWriter) Target() string {
	return w.path
}

// Write the image to disk. The encoding is selected from the file
// extension; unknown extensions are written as PNG.
func (w *fileWriter) Write(ctx context.Context, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format := formatFromName(w.path)
	start := time.Now()
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("output: could not create %s: %w", w.path, err)
	}

	if err = imaging.Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("output: could not encode %s: %w", w.path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("output: could not write %s: %w", w.path, err)
	}

	logger.Noticef("wrote frame to %s in %d ms", w.path, time.Since(start).Nanoseconds()/1000000)
	return nil
}

func formatFromName(name string) imaging.Format {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return imaging.PNG
	}
	return format
}
