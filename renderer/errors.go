package renderer

import "errors"

var (
	ErrClosed          = errors.New("renderer: renderer is closed")
	ErrSceneNotDefined = errors.New("renderer: no scene defined")
	ErrInvalidWorkers  = errors.New("renderer: worker count must not be negative")
)
