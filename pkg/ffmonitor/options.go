package ffmonitor

import (
	"log/slog"
	"time"
)

// DefaultDialTimeout bounds the synchronous connect performed by New.
const DefaultDialTimeout = 10 * time.Second

// Option configures a Monitor using the functional options pattern.
type Option func(*config)

// config holds internal configuration for the monitor.
type config struct {
	dialTimeout   time.Duration
	logger        *slog.Logger
	filter        *compiledFilter
	queueCapacity int
}

// defaultConfig returns a config with sensible defaults.
func defaultConfig() *config {
	return &config{
		dialTimeout: DefaultDialTimeout,
	}
}

// applyOptions applies functional options to a config.
func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithDialTimeout sets the timeout for the synchronous connect.
// Default: 10 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(c *config) {
		c.dialTimeout = d
	}
}

// WithLogger sets the slog logger for connection and parse diagnostics.
// If nil (default), logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithIncludeTypes filters events to only include the specified types.
// Filtering never suppresses an update: a tick whose events are all
// filtered out is still delivered, empty.
// If called multiple times, only the last call takes effect.
func WithIncludeTypes(types ...EventType) Option {
	return func(c *config) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.include = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			c.filter.include[t] = struct{}{}
		}
	}
}

// WithExcludeTypes filters out events of the specified types.
// Exclude takes precedence over include.
// If called multiple times, only the last call takes effect.
func WithExcludeTypes(types ...EventType) Option {
	return func(c *config) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.exclude = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			c.filter.exclude[t] = struct{}{}
		}
	}
}

// WithFilter sets both include and exclude type filters.
// Exclude takes precedence over include.
func WithFilter(include, exclude []EventType) Option {
	return func(c *config) {
		c.filter = newCompiledFilter(include, exclude)
	}
}

// WithQueueCapacity bounds the buffered-mode update queue. When the queue is
// full the oldest update is dropped to make room. 0 (default) means
// unbounded: callers are expected to Poll frequently enough to keep up.
// Callback mode ignores this.
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		c.queueCapacity = n
	}
}

// ParseOption configures ParseStream/ParseFile behavior.
type ParseOption func(*parseConfig)

// parseConfig holds internal configuration for offline parsing.
type parseConfig struct {
	filter      *compiledFilter
	logger      *slog.Logger
	stopOnError bool
}

// defaultParseConfig returns a parseConfig with sensible defaults.
func defaultParseConfig() *parseConfig {
	return &parseConfig{}
}

// applyParseOptions applies functional options to a parseConfig.
func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithParseIncludeTypes filters events to only include the specified types.
func WithParseIncludeTypes(types ...EventType) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.include = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			c.filter.include[t] = struct{}{}
		}
	}
}

// WithParseExcludeTypes filters out events of the specified types.
func WithParseExcludeTypes(types ...EventType) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.exclude = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			c.filter.exclude[t] = struct{}{}
		}
	}
}

// WithParseFilter sets both include and exclude type filters for parsing.
func WithParseFilter(include, exclude []EventType) ParseOption {
	return func(c *parseConfig) {
		c.filter = newCompiledFilter(include, exclude)
	}
}

// WithParseLogger sets the slog logger for malformed-record warnings.
// If nil (default), logging is disabled.
func WithParseLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		c.logger = logger
	}
}

// WithParseStopOnError stops at the first malformed record instead of
// skipping it.
func WithParseStopOnError(stop bool) ParseOption {
	return func(c *parseConfig) {
		c.stopOnError = stop
	}
}
