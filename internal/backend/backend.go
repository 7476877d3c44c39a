// Package backend provides an interface for execution backends so the
// pipeline does not depend on a particular interpreter.
package backend

import (
	"github.com/funvibe/jott/internal/pipeline"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run executes the validated program held by ctx.
	Run(ctx *pipeline.PipelineContext) error

	// Name returns the backend name for display
	Name() string
}
