package task

import "errors"

// Domain-specific errors for the task sync package.
var (
	ErrUnknownService = errors.New("unknown service selector")
	ErrRender         = errors.New("failed to render task body")
)
