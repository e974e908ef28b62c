package renderer

import "github.com/achilleasa/spheretrace/scene"

type Renderer interface {
	// Render a frame of the scene. The call blocks until every row has been
	// traced; if any row faults no frame is returned.
	Render(sc *scene.Scene) (*Frame, error)

	// Shutdown renderer and any attached tracer.
	Close()

	// Get statistics for the last rendered frame.
	Stats() FrameStats
}
