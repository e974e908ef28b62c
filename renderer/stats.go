package renderer

import "time"

type WorkerStat struct {
	// The tracer id.
	Id string

	// The number of rows traced and the percentage of the frame they represent.
	Rows         int
	FramePercent float32

	// Time spent tracing the rows.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}
