package huge

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/huge/concurrency"
	"github.com/hupe1980/huge/internal/layout"
)

// MemoryTracker reserves memory before an array allocates its pages.
// resource.Controller implements it.
type MemoryTracker interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

type options struct {
	pageSize int64
	logger   *Logger
	metrics  MetricsCollector
	tracker  MemoryTracker
	flag     *concurrency.TerminationFlag
}

// Option configures array construction.
type Option func(*options)

// WithPageSize overrides the number of elements per page. It must be a
// power of two; the default holds 32 KiB of elements.
func WithPageSize(n int64) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector. Pass nil to disable.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithMemoryTracker reserves every allocation from t and returns the
// reservation on Release.
func WithMemoryTracker(t MemoryTracker) Option {
	return func(o *options) {
		o.tracker = t
	}
}

// WithTerminationFlag lets parallel construction stop early. Chunks that
// have not started when the flag trips are left zeroed.
func WithTerminationFlag(f *concurrency.TerminationFlag) Option {
	return func(o *options) {
		o.flag = f
	}
}

// LoggerOf returns the logger configured by opts.
// Derived collections use it to log their own lifecycle events.
func LoggerOf(opts ...Option) *Logger {
	o := applyOptions(opts)
	return o.logger
}

func applyOptions(opts []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func layoutFor[T any](o options) (layout.Layout, error) {
	if o.pageSize == 0 {
		var zero T
		return layout.ForElementSize(int64(unsafe.Sizeof(zero))), nil
	}
	l, err := layout.New(o.pageSize)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("%w: %w", ErrInvalidPageSize, err)
	}
	return l, nil
}
