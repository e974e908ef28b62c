package io

import (
	"encoding/json"
	"fmt"
	stdio "io"
	"os"
	"time"

	"github.com/achilleasa/spheretrace/asset"
	"github.com/achilleasa/spheretrace/asset/texture"
	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/types"
)

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type jsonColor struct {
	Red   float32 `json:"red"`
	Green float32 `json:"green"`
	Blue  float32 `json:"blue"`
}

type jsonCamera struct {
	Origin jsonPoint `json:"origin"`
	LookAt jsonPoint `json:"look_at"`
	ViewUp jsonPoint `json:"view_up"`
	VFov   float64   `json:"vfov"`
	Aspect float64   `json:"aspect"`
}

type jsonMaterial struct {
	Type            string     `json:"type"`
	Albedo          *jsonColor `json:"albedo,omitempty"`
	Fuzz            *float64   `json:"fuzz,omitempty"`
	RefractiveIndex *float64   `json:"refractive_index,omitempty"`
}

type jsonObject struct {
	Center   jsonPoint    `json:"center"`
	Radius   float64      `json:"radius"`
	Material jsonMaterial `json:"material"`
}

type jsonSky struct {
	Texture string `json:"texture,omitempty"`
}

type jsonScene struct {
	Width           int          `json:"width"`
	Height          int          `json:"height"`
	SamplesPerPixel int          `json:"samples_per_pixel"`
	MaxDepth        int          `json:"max_depth"`
	Camera          *jsonCamera  `json:"camera"`
	Sky             *jsonSky     `json:"sky"`
	Objects         []jsonObject `json:"objects"`
}

func toPoint(v types.Vec3) jsonPoint {
	return jsonPoint{X: v[0], Y: v[1], Z: v[2]}
}

func (p jsonPoint) vec() types.Vec3 {
	return types.XYZ(p.X, p.Y, p.Z)
}

func toColor(c types.Color) *jsonColor {
	return &jsonColor{Red: c[0], Green: c[1], Blue: c[2]}
}

func (c *jsonColor) color() types.Color {
	return types.RGB(c.Red, c.Green, c.Blue)
}

func toMaterial(m scene.Material) jsonMaterial {
	out := jsonMaterial{Type: m.Type.String()}
	switch m.Type {
	case scene.LambertianMaterial:
		out.Albedo = toColor(m.Albedo)
	case scene.MetalMaterial:
		fuzz := m.Fuzz
		out.Albedo = toColor(m.Albedo)
		out.Fuzz = &fuzz
	case scene.GlassMaterial:
		index := m.RefractiveIndex
		out.RefractiveIndex = &index
	}
	return out
}

func (m *jsonMaterial) material() (scene.Material, error) {
	matType, err := scene.ParseMaterialType(m.Type)
	if err != nil {
		return scene.Material{}, err
	}

	switch matType {
	case scene.LambertianMaterial:
		if m.Albedo == nil {
			return scene.Material{}, fmt.Errorf("scene/io: %s material requires an albedo", m.Type)
		}
		return scene.Lambertian(m.Albedo.color()), nil
	case scene.MetalMaterial:
		if m.Albedo == nil {
			return scene.Material{}, fmt.Errorf("scene/io: %s material requires an albedo", m.Type)
		}
		var fuzz float64
		if m.Fuzz != nil {
			fuzz = *m.Fuzz
		}
		return scene.Metal(m.Albedo.color(), fuzz), nil
	case scene.GlassMaterial:
		if m.RefractiveIndex == nil {
			return scene.Material{}, fmt.Errorf("scene/io: %s material requires a refractive_index", m.Type)
		}
		return scene.Glass(*m.RefractiveIndex), nil
	}
	return scene.Light(), nil
}

// Convert a scene into its serialized form.
func encodeScene(sc *scene.Scene) *jsonScene {
	out := &jsonScene{
		Width:           sc.Width,
		Height:          sc.Height,
		SamplesPerPixel: sc.SamplesPerPixel,
		MaxDepth:        sc.MaxDepth,
		Objects:         make([]jsonObject, len(sc.Objects)),
	}
	if sc.Camera != nil {
		out.Camera = &jsonCamera{
			Origin: toPoint(sc.Camera.Origin),
			LookAt: toPoint(sc.Camera.LookAt),
			ViewUp: toPoint(sc.Camera.Up),
			VFov:   sc.Camera.VFov,
			Aspect: sc.Camera.Aspect,
		}
	}
	if sc.Sky != nil {
		out.Sky = &jsonSky{Texture: sc.Sky.TexturePath}
	}
	for i, obj := range sc.Objects {
		out.Objects[i] = jsonObject{
			Center:   toPoint(obj.Center),
			Radius:   obj.Radius,
			Material: toMaterial(obj.Material),
		}
	}
	return out
}

// Convert a serialized scene. Sky textures are not loaded.
func (js *jsonScene) scene() (*scene.Scene, error) {
	sc := &scene.Scene{
		Width:           js.Width,
		Height:          js.Height,
		SamplesPerPixel: js.SamplesPerPixel,
		MaxDepth:        js.MaxDepth,
		Objects:         make([]scene.Sphere, 0, len(js.Objects)),
	}
	if js.Camera != nil {
		sc.Camera = scene.NewCamera(
			js.Camera.Origin.vec(),
			js.Camera.LookAt.vec(),
			js.Camera.ViewUp.vec(),
			js.Camera.VFov,
			js.Camera.Aspect,
		)
	}
	if js.Sky != nil {
		sc.Sky = &scene.Sky{TexturePath: js.Sky.Texture}
	}
	for i := range js.Objects {
		obj := &js.Objects[i]
		mat, err := obj.Material.material()
		if err != nil {
			return nil, fmt.Errorf("scene/io: object %d: %w", i, err)
		}
		sc.AddSphere(scene.NewSphere(obj.Center.vec(), obj.Radius, mat))
	}
	return sc, nil
}

// Decode and validate a scene. Sky textures are opened with openTexture.
func decodeScene(res *asset.Resource, openTexture func(path string) (*asset.Resource, error)) (*scene.Scene, error) {
	var js jsonScene
	dec := json.NewDecoder(res)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&js); err != nil {
		return nil, fmt.Errorf("scene/io: could not parse %s: %w", res.Path(), err)
	}

	sc, err := js.scene()
	if err != nil {
		return nil, err
	}

	if sc.Sky != nil && sc.Sky.TexturePath != "" {
		texRes, err := openTexture(sc.Sky.TexturePath)
		if err != nil {
			return nil, fmt.Errorf("scene/io: could not open sky texture: %w", err)
		}
		defer texRes.Close()

		if sc.Sky.Texture, err = texture.New(texRes); err != nil {
			return nil, err
		}
	}

	if err = sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func writeJSON(w stdio.Writer, js *jsonScene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(js)
}

type jsonSceneReader struct {
	sceneFile string
}

func newJSONSceneReader(sceneFile string) *jsonSceneReader {
	return &jsonSceneReader{sceneFile: sceneFile}
}

// Read scene definition.
func (r *jsonSceneReader) Read() (*scene.Scene, error) {
	logger.Noticef("parsing scene from %s", r.sceneFile)
	start := time.Now()

	res, err := asset.NewResource(r.sceneFile, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	sc, err := decodeScene(res, func(path string) (*asset.Resource, error) {
		return asset.NewResource(path, res)
	})
	if err != nil {
		return nil, err
	}

	logger.Noticef("parsed scene in %d ms", time.Since(start).Nanoseconds()/1000000)
	return sc, nil
}

type jsonSceneWriter struct {
	sceneFile string
}

func newJSONSceneWriter(sceneFile string) *jsonSceneWriter {
	return &jsonSceneWriter{sceneFile: sceneFile}
}

// Write scene definition.
func (w *jsonSceneWriter) Write(sc *scene.Scene) error {
	if sc.Sky != nil && sc.Sky.Texture != nil && sc.Sky.TexturePath == "" {
		return ErrTextureNotPersisted
	}

	f, err := os.Create(w.sceneFile)
	if err != nil {
		return err
	}
	if err = writeJSON(f, encodeScene(sc)); err != nil {
		f.Close()
		return fmt.Errorf("scene/io: could not write %s: %w", w.sceneFile, err)
	}
	logger.Noticef("wrote scene to %s", w.sceneFile)
	return f.Close()
}
