package scene

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/olekukonko/tablewriter"
)

var (
	ErrInvalidDimensions = errors.New("scene: width and height must be at least 1")
	ErrInvalidSamples    = errors.New("scene: samples per pixel must be at least 1")
	ErrInvalidDepth      = errors.New("scene: max depth must not be negative")
	ErrCameraNotDefined  = errors.New("scene: no camera defined")
)

// A renderable scene. A scene must not be modified while it is being rendered.
type Scene struct {
	// Frame dimensions.
	Width  int
	Height int

	// Number of rays traced per pixel.
	SamplesPerPixel int

	// Maximum number of ray bounces.
	MaxDepth int

	Camera  *Camera
	Objects []Sphere

	// Optional background. A nil sky renders black.
	Sky *Sky
}

// Add a sphere to the scene.
func (s *Scene) AddSphere(sphere Sphere) {
	s.Objects = append(s.Objects, sphere)
}

// Return the emissive objects in scene order. The returned pointers refer
// to the scene's object list.
func (s *Scene) Lights() []*Sphere {
	lights := make([]*Sphere, 0)
	for i := range s.Objects {
		if s.Objects[i].Material.Type == LightMaterial {
			lights = append(lights, &s.Objects[i])
		}
	}
	return lights
}

// Check the scene for configuration errors.
func (s *Scene) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("%w; got %dx%d", ErrInvalidDimensions, s.Width, s.Height)
	}
	if s.SamplesPerPixel < 1 {
		return fmt.Errorf("%w; got %d", ErrInvalidSamples, s.SamplesPerPixel)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("%w; got %d", ErrInvalidDepth, s.MaxDepth)
	}
	if s.Camera == nil {
		return ErrCameraNotDefined
	}
	if s.Camera.VFov <= 0 || s.Camera.VFov >= 180 {
		return fmt.Errorf("scene: camera vfov must be in (0, 180); got %f", s.Camera.VFov)
	}
	if s.Camera.Aspect <= 0 {
		return fmt.Errorf("scene: camera aspect must be positive; got %f", s.Camera.Aspect)
	}

	for idx, obj := range s.Objects {
		if obj.Radius <= 0 {
			return fmt.Errorf("scene: object %d has non-positive radius %f", idx, obj.Radius)
		}
		switch obj.Material.Type {
		case LambertianMaterial, LightMaterial:
		case MetalMaterial:
			if obj.Material.Fuzz < 0 || obj.Material.Fuzz > 1 || math.IsNaN(obj.Material.Fuzz) {
				return fmt.Errorf("scene: object %d has metal fuzz %f outside [0, 1]", idx, obj.Material.Fuzz)
			}
		case GlassMaterial:
			if obj.Material.RefractiveIndex <= 0 {
				return fmt.Errorf("scene: object %d has non-positive refractive index %f", idx, obj.Material.RefractiveIndex)
			}
		default:
			return fmt.Errorf("scene: object %d has unsupported material type %d", idx, obj.Material.Type)
		}
	}

	if s.Sky != nil && s.Sky.Texture != nil {
		if err := s.Sky.Texture.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Scene statistics.
type Stats struct {
	Width, Height   int
	SamplesPerPixel int
	MaxDepth        int

	Objects int
	Lights  int

	// Object count per material type.
	Materials map[MaterialType]int

	// Sky description: none, gradient or texture WxH.
	Sky string
}

// Collect scene statistics.
func (s *Scene) Stats() Stats {
	stats := Stats{
		Width:           s.Width,
		Height:          s.Height,
		SamplesPerPixel: s.SamplesPerPixel,
		MaxDepth:        s.MaxDepth,
		Objects:         len(s.Objects),
		Lights:          len(s.Lights()),
		Materials:       make(map[MaterialType]int),
		Sky:             "none",
	}
	for _, obj := range s.Objects {
		stats.Materials[obj.Material.Type]++
	}
	if s.Sky != nil {
		stats.Sky = "gradient"
		if tex := s.Sky.Texture; tex != nil {
			stats.Sky = fmt.Sprintf("texture %dx%d", tex.Width, tex.Height)
		}
	}
	return stats
}

// Format stats as a table.
func (st Stats) String() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Frame", fmt.Sprintf("%dx%d", st.Width, st.Height)})
	table.Append([]string{"Samples per pixel", fmt.Sprintf("%d", st.SamplesPerPixel)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", st.MaxDepth)})
	table.Append([]string{"Sky", st.Sky})
	for t := LambertianMaterial; t <= LightMaterial; t++ {
		table.Append([]string{fmt.Sprintf("%s objects", t), fmt.Sprintf("%d", st.Materials[t])})
	}
	table.SetFooter([]string{"Objects", fmt.Sprintf("%d", st.Objects)})
	table.Render()
	return buf.String()
}
