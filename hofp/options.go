package hofp

import (
	"context"

	"github.com/stratastore/transfer-common/system"
)

// Options encapsulates the available options which can be used when creating a worker pool.
type Options struct {
	// Context used by the worker pool, if omitted a background context will be used.
	Context context.Context

	// Size dictates the number of Goroutines created to process incoming functions. Defaults to the number of vCPUs.
	Size int

	// BufferMultiplier is the multiplier used, along with the size, when determining the buffer size of the work
	// channel. Defaults to one.
	BufferMultiplier int

	// LogPrefix is the prefix used when logging errors which occur once teardown has already begun. Defaults to
	// '(hofp)'.
	LogPrefix string
}

// defaults fills any missing attributes with sane defaults.
func (o *Options) defaults() {
	if o.Context == nil {
		o.Context = context.Background()
	}

	if o.Size == 0 {
		o.Size = system.NumCPU()
	}

	if o.BufferMultiplier == 0 {
		o.BufferMultiplier = 1
	}

	if o.LogPrefix == "" {
		o.LogPrefix = "(hofp)"
	}
}
