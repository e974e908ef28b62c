package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/achilleasa/spheretrace/log"
	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/tracer"
)

var logger = log.New("renderer")

// The rows of a single frame and the outcome of tracing them.
type frameJob struct {
	frame *Frame
	req   tracer.BlockRequest

	pending sync.WaitGroup
	aborted atomic.Bool
	errOnce sync.Once
	err     error
}

type rowJob struct {
	job *frameJob
	row int
}

// A renderer that splits frames into rows and traces them on a fixed pool
// of cpu tracers. Idle workers pull the next untraced row so faster workers
// end up tracing more rows.
type defaultRenderer struct {
	// Serializes Render and Close.
	sync.Mutex

	options Options
	tracers []tracer.Tracer
	rows    chan rowJob
	workers sync.WaitGroup
	closed  bool

	stats FrameStats
}

// Create a new renderer and start its workers.
func NewDefault(opts Options) (Renderer, error) {
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w; got %d", ErrInvalidWorkers, opts.Workers)
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &defaultRenderer{
		options: opts,
		tracers: make([]tracer.Tracer, opts.Workers),
		rows:    make(chan rowJob),
	}
	for i := range r.tracers {
		r.tracers[i] = tracer.NewCPUTracer(fmt.Sprintf("cpu-%d", i), seed+int64(i))
		r.workers.Add(1)
		go r.work(r.tracers[i])
	}
	logger.Debugf("started %d workers (format: %s)", opts.Workers, opts.Format)

	return r, nil
}

// Render a frame.
func (r *defaultRenderer) Render(sc *scene.Scene) (*Frame, error) {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	for _, tr := range r.tracers {
		tr.ResetStats()
	}

	job := &frameJob{
		frame: NewFrame(sc.Width, sc.Height, r.options.Format),
		req: tracer.BlockRequest{
			Scene:      sc,
			Lights:     sc.Lights(),
			Format:     r.options.Format,
			NewSampler: r.options.NewSampler,
		},
	}

	start := time.Now()
	job.pending.Add(sc.Height)
	for y := 0; y < sc.Height; y++ {
		r.rows <- rowJob{job: job, row: y}
	}
	job.pending.Wait()
	r.stats = r.collectStats(sc.Height, time.Since(start))

	if job.err != nil {
		logger.Errorf("frame render failed: %v", job.err)
		return nil, job.err
	}

	logger.Noticef("frame time: %d ms", r.stats.RenderTime.Nanoseconds()/1000000)
	return job.frame, nil
}

// Get statistics for the last rendered frame.
func (r *defaultRenderer) Stats() FrameStats {
	r.Lock()
	defer r.Unlock()
	return r.stats
}

// Stop the workers. Close blocks until all workers exit.
func (r *defaultRenderer) Close() {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	close(r.rows)
	r.workers.Wait()
	logger.Debugf("stopped %d workers", len(r.tracers))
}

func (r *defaultRenderer) work(tr tracer.Tracer) {
	defer r.workers.Done()
	for rj := range r.rows {
		rj.job.trace(tr, rj.row)
	}
}

func (r *defaultRenderer) collectStats(frameH int, renderTime time.Duration) FrameStats {
	stats := FrameStats{
		Workers:    make([]WorkerStat, len(r.tracers)),
		RenderTime: renderTime,
	}
	for i, tr := range r.tracers {
		trStats := tr.Stats()
		stats.Workers[i] = WorkerStat{
			Id:           tr.Id(),
			Rows:         trStats.Rows,
			FramePercent: 100.0 * float32(trStats.Rows) / float32(frameH),
			RenderTime:   trStats.RenderTime,
		}
		logger.Debugf("worker %s traced %d rows in %s", tr.Id(), trStats.Rows, trStats.RenderTime)
	}
	return stats
}

// Trace a single frame row unless a previous row has faulted.
func (job *frameJob) trace(tr tracer.Tracer, row int) {
	defer job.pending.Done()
	if job.aborted.Load() {
		return
	}

	req := job.req
	req.BlockY = row
	req.BlockH = 1
	req.Pixels = job.frame.Row(row)
	if err := tr.Trace(&req); err != nil {
		job.errOnce.Do(func() {
			job.err = err
			job.aborted.Store(true)
		})
	}
}
