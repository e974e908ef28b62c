package tracer

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime/debug"
	"time"

	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/types"
)

var (
	ErrBlockOutOfBounds = errors.New("tracer: block exceeds frame bounds")
	ErrBlockBufferSize  = errors.New("tracer: block pixel buffer has the wrong size")
	ErrRowPanic         = errors.New("tracer: panic while tracing row")
)

// A RowPanicError reports a fault while tracing a frame row.
type RowPanicError struct {
	TracerId string
	Row      int
	Value    interface{}
	Stack    []byte
}

func (e *RowPanicError) Error() string {
	return fmt.Sprintf("%s: tracer %s, row %d: %v", ErrRowPanic.Error(), e.TracerId, e.Row, e.Value)
}

func (e *RowPanicError) Unwrap() error {
	return ErrRowPanic
}

// A unit of work that is processed by a tracer: a band of consecutive
// frame rows.
type BlockRequest struct {
	Scene  *scene.Scene
	Lights []*scene.Sphere
	Format PixelFormat

	// Block start row and height.
	BlockY int
	BlockH int

	// Storage for the block rows. The tracer writes nothing else.
	Pixels []byte

	// Optional per-row randomness; when nil the tracer's own source is used.
	NewSampler func(row int) types.Sampler
}

// Tracer statistics.
type Stats struct {
	// The number of rows traced since the last reset.
	Rows int

	// Time spent tracing those rows.
	RenderTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Trace all rows of a block. Faults are reported as *RowPanicError.
	Trace(*BlockRequest) error

	// Retrieve statistics accumulated since the last reset.
	Stats() *Stats

	// Reset statistics.
	ResetStats()
}

// A tracer that runs the path tracing kernel on the calling goroutine.
// A cpuTracer must not be used concurrently.
type cpuTracer struct {
	id    string
	rng   *rand.Rand
	stats *Stats
}

// Create a new cpu tracer with its own random source.
func NewCPUTracer(id string, seed int64) Tracer {
	return &cpuTracer{
		id:    id,
		rng:   rand.New(rand.NewSource(seed)),
		stats: &Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Retrieve statistics.
func (tr *cpuTracer) Stats() *Stats {
	return tr.stats
}

// Reset statistics.
func (tr *cpuTracer) ResetStats() {
	tr.stats = &Stats{}
}

// Trace block rows.
func (tr *cpuTracer) Trace(req *BlockRequest) (err error) {
	sc := req.Scene
	if req.BlockY < 0 || req.BlockH < 0 || req.BlockY+req.BlockH > sc.Height {
		return ErrBlockOutOfBounds
	}
	rowLen := sc.Width * req.Format.Channels()
	if len(req.Pixels) != rowLen*req.BlockH {
		return ErrBlockBufferSize
	}

	start := time.Now()
	row := req.BlockY
	defer func() {
		if v := recover(); v != nil {
			err = &RowPanicError{TracerId: tr.id, Row: row, Value: v, Stack: debug.Stack()}
		}
		tr.stats.RenderTime += time.Since(start)
	}()

	for ; row < req.BlockY+req.BlockH; row++ {
		var rng types.Sampler = tr.rng
		if req.NewSampler != nil {
			rng = req.NewSampler(row)
		}
		offset := (row - req.BlockY) * rowLen
		RenderLine(req.Pixels[offset:offset+rowLen], req.Format, sc, req.Lights, row, rng)
		tr.stats.Rows++
	}

	return nil
}
