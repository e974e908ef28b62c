package output

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/achilleasa/spheretrace/log"
)

var logger = log.New("output")

// A destination for rendered frames.
type Writer interface {
	// Encode and store the image.
	Write(ctx context.Context, img image.Image) error

	// The location that images are written to.
	Target() string
}

// Create a writer for the given target. Targets of the form s3://bucket/key
// are uploaded using the supplied S3 settings; anything else is treated as
// a local file path.
func New(target string, cfg S3Config) (Writer, error) {
	if target == "" {
		return nil, fmt.Errorf("output: empty target")
	}
	if strings.HasPrefix(target, s3Scheme) {
		return newS3Writer(target, cfg)
	}
	return newFileWriter(target), nil
}
