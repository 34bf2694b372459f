package separation

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a [Pass] or a [Loop].
type Option func(*options)

type options struct {
	ctx        context.Context
	logger     *log.Logger
	transitive bool
}

func newOptions(opts []Option) options {
	o := options{
		ctx:    context.Background(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger logs pass progress to logger at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithTransitivity closes the row and column inequalities of every tiling
// through its positive cells before searching (see [tiling.Transitive]).
func WithTransitivity(enabled bool) Option {
	return func(o *options) { o.transitive = enabled }
}
