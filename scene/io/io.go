package io

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/spheretrace/log"
	"github.com/achilleasa/spheretrace/scene"
)

var (
	ErrUnsupportedFormat   = errors.New("scene/io: unsupported scene file format")
	ErrTextureNotPersisted = errors.New("scene/io: sky texture has no path; write a zip bundle instead")
)

var logger = log.New("scene/io")

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition.
	Read() (*scene.Scene, error)
}

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write scene definition.
	Write(*scene.Scene) error
}

// Read scene from a .json file or a .zip bundle. The file may also be an
// http/https url.
func ReadScene(filename string) (*scene.Scene, error) {
	var reader Reader
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		reader = newJSONSceneReader(filename)
	case ".zip":
		reader = newZipSceneReader(filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	return reader.Read()
}

// Write scene to a .json file or a .zip bundle.
func WriteScene(sc *scene.Scene, filename string) error {
	var writer Writer
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		writer = newJSONSceneWriter(filename)
	case ".zip":
		writer = newZipSceneWriter(filename)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	return writer.Write(sc)
}
