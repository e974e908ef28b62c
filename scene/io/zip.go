package io

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	stdio "io"
	"os"
	"path"
	"time"

	"github.com/achilleasa/spheretrace/asset"
	"github.com/achilleasa/spheretrace/asset/texture"
	"github.com/achilleasa/spheretrace/scene"
	"github.com/disintegration/imaging"
)

const (
	sceneEntry = "scene.json"
	skyEntry   = "sky.png"
)

var ErrSkyTextureNotLoaded = errors.New("scene/io: sky texture must be loaded before bundling")

type zipSceneWriter struct {
	sceneFile string
}

// Create a new zip scene writer
func newZipSceneWriter(sceneFile string) *zipSceneWriter {
	return &zipSceneWriter{sceneFile: sceneFile}
}

// Write the scene definition and its sky texture to a zip file.
func (w *zipSceneWriter) Write(sc *scene.Scene) error {
	logger.Noticef("writing scene bundle to %s", w.sceneFile)
	start := time.Now()

	js := encodeScene(sc)
	var skyTex *scene.Texture
	if sc.Sky != nil {
		skyTex = sc.Sky.Texture
		if skyTex == nil && sc.Sky.TexturePath != "" {
			return ErrSkyTextureNotLoaded
		}
		if skyTex != nil {
			js.Sky.Texture = skyEntry
		}
	}

	zipFile, err := os.Create(w.sceneFile)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)

	cw, err := zw.Create(sceneEntry)
	if err != nil {
		return err
	}
	if err = writeJSON(cw, js); err != nil {
		return fmt.Errorf("scene/io: could not write %s: %w", sceneEntry, err)
	}

	if skyTex != nil {
		if cw, err = zw.Create(skyEntry); err != nil {
			return err
		}
		if err = imaging.Encode(cw, texture.ToImage(skyTex), imaging.PNG); err != nil {
			return fmt.Errorf("scene/io: could not write %s: %w", skyEntry, err)
		}
	}

	if err = zw.Close(); err != nil {
		return err
	}

	logger.Noticef("bundled scene in %d ms", time.Since(start).Nanoseconds()/1000000)
	return zipFile.Close()
}

type zipSceneReader struct {
	sceneFile string
}

// Create a new zip scene reader
func newZipSceneReader(sceneFile string) *zipSceneReader {
	return &zipSceneReader{sceneFile: sceneFile}
}

// Read scene definition from zip file.
func (r *zipSceneReader) Read() (*scene.Scene, error) {
	logger.Noticef("parsing scene bundle from %s", r.sceneFile)
	start := time.Now()

	res, err := asset.NewResource(r.sceneFile, nil)
	if err != nil {
		return nil, err
	}
	data, err := res.ReadAll()
	res.Close()
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("scene/io: could not open bundle %s: %w", r.sceneFile, err)
	}

	sceneRes, err := openEntry(zr, sceneEntry)
	if err != nil {
		return nil, err
	}

	sc, err := decodeScene(sceneRes, func(name string) (*asset.Resource, error) {
		return openEntry(zr, name)
	})
	if err != nil {
		return nil, err
	}

	logger.Noticef("parsed scene bundle in %d ms", time.Since(start).Nanoseconds()/1000000)
	return sc, nil
}

// Load a bundle entry into memory.
func openEntry(zr *zip.Reader, name string) (*asset.Resource, error) {
	f, err := zr.Open(path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("scene/io: bundle entry %s: %w", name, err)
	}
	defer f.Close()

	data, err := stdio.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("scene/io: could not read bundle entry %s: %w", name, err)
	}
	return asset.NewResourceFromStream(name, bytes.NewReader(data)), nil
}
