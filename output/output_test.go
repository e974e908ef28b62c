package output

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 60), uint8(y * 100), 200, 255})
		}
	}
	return img
}

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()

	type spec struct {
		name   string
		exact  bool
		format imaging.Format
	}
	specs := []spec{
		{"frame.png", true, imaging.PNG},
		{"frame.jpg", false, imaging.JPEG},
		{"frame", true, imaging.PNG},
		{"frame.out", true, imaging.PNG},
	}

	src := testImage()
	for index, s := range specs {
		path := filepath.Join(dir, s.name)
		w, err := New(path, S3Config{})
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if w.Target() != path {
			t.Fatalf("[spec %d] expected target %s; got %s", index, path, w.Target())
		}
		if err = w.Write(context.Background(), src); err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}

		img, err := imaging.Open(path)
		if err != nil {
			t.Fatalf("[spec %d] could not decode written image: %v", index, err)
		}
		if img.Bounds() != src.Bounds() {
			t.Fatalf("[spec %d] expected bounds %v; got %v", index, src.Bounds(), img.Bounds())
		}
		if s.exact {
			got := imaging.Clone(img)
			if !bytes.Equal(got.Pix, src.Pix) {
				t.Fatalf("[spec %d] expected lossless pixel data", index)
			}
		}
	}
}

func TestFileWriterCancelled(t *testing.T) {
	w, _ := New(filepath.Join(t.TempDir(), "frame.png"), S3Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Write(ctx, testImage()); err != context.Canceled {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
}

func TestFileWriterBadPath(t *testing.T) {
	w, _ := New(filepath.Join(t.TempDir(), "missing", "frame.png"), S3Config{})
	if err := w.Write(context.Background(), testImage()); err == nil {
		t.Fatal("expected an error writing to a missing directory")
	}
}

func TestS3Writer(t *testing.T) {
	var (
		method, path, contentType string
		body                      []byte
	)
	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		method = req.Method
		path = req.URL.Path
		contentType = req.Header.Get("Content-Type")
		body, _ = io.ReadAll(req.Body)
		rw.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cfg := S3Config{
		Endpoint:  ts.URL,
		Region:    "eu-west-1",
		AccessKey: "access",
		SecretKey: "secret",
	}
	w, err := New("s3://renders/frames/frame-0001.png", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if exp := "s3://renders/frames/frame-0001.png"; w.Target() != exp {
		t.Fatalf("expected target %s; got %s", exp, w.Target())
	}

	src := testImage()
	if err = w.Write(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	if method != http.MethodPut {
		t.Fatalf("expected a PUT request; got %s", method)
	}
	if exp := "/renders/frames/frame-0001.png"; path != exp {
		t.Fatalf("expected path-style request to %s; got %s", exp, path)
	}
	if contentType != "image/png" {
		t.Fatalf("expected content type image/png; got %s", contentType)
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("could not decode uploaded image: %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Fatalf("expected bounds %v; got %v", src.Bounds(), img.Bounds())
	}
}

func TestS3WriterUploadError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	w, err := New("s3://renders/frame.jpg", S3Config{Endpoint: ts.URL, AccessKey: "a", SecretKey: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if err = w.Write(context.Background(), testImage()); err == nil {
		t.Fatal("expected upload error")
	}
}

func TestInvalidTargets(t *testing.T) {
	specs := []string{
		"",
		"s3://",
		"s3://bucket",
		"s3://bucket/",
		"s3:///key",
	}

	for index, target := range specs {
		if _, err := New(target, S3Config{}); err == nil {
			t.Fatalf("[spec %d] expected an error for target %q", index, target)
		}
	}
}

func TestS3ConfigFromEnv(t *testing.T) {
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_REGION", "us-west-2")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")

	exp := S3Config{
		Endpoint:  "http://localhost:9000",
		Region:    "us-west-2",
		AccessKey: "key",
		SecretKey: "secret",
	}
	if got := S3ConfigFromEnv(); got != exp {
		t.Fatalf("expected %+v; got %+v", exp, got)
	}
}
