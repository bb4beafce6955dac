package vector

import (
	"math"

	"go.uber.org/zap"
)

const (
	// DefaultGrowthFactor is the multiplier applied to a full vector's capacity.
	DefaultGrowthFactor = 2

	// DefaultMaxCapacity leaves allocation size limited only by the address space.
	DefaultMaxCapacity = math.MaxInt
)

// Option configures a vector at construction time.
type Option func(*config)

type config struct {
	maxCapacity int
	growth      int
	logger      *zap.Logger
	traits      any
}

func newConfig(opts []Option) *config {
	c := &config{
		maxCapacity: DefaultMaxCapacity,
		growth:      DefaultGrowthFactor,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// WithTraits sets the element lifecycle hooks. The type parameter must match
// the vector's element type or New panics.
func WithTraits[T any](t Traits[T]) Option {
	return func(c *config) {
		c.traits = t
	}
}

// WithMaxCapacity caps the number of slots a vector may allocate. Requests
// above it fail with ErrOutOfMemory. If n <= 0, DefaultMaxCapacity is used.
func WithMaxCapacity(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultMaxCapacity
		}
		c.maxCapacity = n
	}
}

// WithGrowthFactor sets the capacity multiplier used when an append or insert
// finds the vector full. If f < 2, DefaultGrowthFactor is used.
func WithGrowthFactor(f int) Option {
	return func(c *config) {
		if f < 2 {
			f = DefaultGrowthFactor
		}
		c.growth = f
	}
}

// WithLogger sets the logger used to report reallocations and rollbacks at
// debug level. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
