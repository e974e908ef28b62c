package renderer

import (
	"github.com/achilleasa/spheretrace/tracer"
	"github.com/achilleasa/spheretrace/types"
)

type Options struct {
	// Number of worker tracers. 0 selects runtime.NumCPU().
	Workers int

	// Output pixel layout; RGB8 for file export, RGBA8 for display surfaces.
	Format tracer.PixelFormat

	// Seed for the worker random sources. 0 selects a time based seed.
	Seed int64

	// Optional per-row randomness source factory. It is invoked
	// concurrently by the workers.
	NewSampler func(row int) types.Sampler
}
