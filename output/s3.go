package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
)

const s3Scheme = "s3://"

// Maximum time allowed for a single upload.
var UploadTimeout = 30 * time.Second

var contentTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// Connection settings for S3 compatible object stores.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Read S3 settings from the S3_ENDPOINT, S3_REGION, S3_ACCESS_KEY and
// S3_SECRET_KEY environment variables.
func S3ConfigFromEnv() S3Config {
	return S3Config{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
	}
}

type s3Writer struct {
	client s3iface.S3API
	bucket string
	key    string
	format imaging.Format
}

func newS3Writer(target string, cfg S3Config) (*s3Writer, error) {
	bucket, key, err := parseS3Target(target)
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("output: could not create S3 session: %w", err)
	}

	return &s3Writer{
		client: s3.New(sess),
		bucket: bucket,
		key:    key,
		format: formatFromName(key),
	}, nil
}

func (w *s3Writer) Target() string {
	return s3Scheme + w.bucket + "/" + w.key
}

// Encode the image in memory and upload it.
func (w *s3Writer) Write(ctx context.Context, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, w.format); err != nil {
		return fmt.Errorf("output: could not encode %s: %w", w.Target(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	start := time.Now()
	size := int64(buf.Len())
	_, err := w.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(w.bucket),
		Key:           aws.String(w.key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentTypes[w.format]),
	})
	if err != nil {
		return fmt.Errorf("output: failed to upload %s: %w", w.Target(), err)
	}

	logger.Noticef("uploaded frame to %s (%d bytes) in %d ms", w.Target(), size, time.Since(start).Nanoseconds()/1000000)
	return nil
}

// Split an s3://bucket/key target.
func parseS3Target(target string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(target, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("output: invalid S3 target %q; expected s3://bucket/key", target)
	}
	return bucket, key, nil
}
