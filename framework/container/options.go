package container

import (
	"time"

	"go.uber.org/zap"
)

const defaultMaxDepth = 256

type Option func(*Container)

// Observer is notified of resolutions and cache evictions. Implementations
// must be safe for concurrent use.
type Observer interface {
	Resolved(alias string, d time.Duration, err error)
	Evicted(alias string)
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.log = logger
		}
	}
}

func WithIntrospector(i Introspector) Option {
	return func(c *Container) {
		c.types = i
	}
}

// WithTypes is WithIntrospector for the registry-backed introspector.
func WithTypes(t *Types) Option {
	return WithIntrospector(t)
}

// WithCascadeOnRebind controls whether Bind and Instance evict the cached
// dependents of a replaced alias (the default) or only its own entry.
func WithCascadeOnRebind(cascade bool) Option {
	return func(c *Container) {
		c.cascadeRebind = cascade
	}
}

// WithMaxDepth bounds nested resolution.
func WithMaxDepth(n int) Option {
	return func(c *Container) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Container) {
		c.observers = append(c.observers, o)
	}
}
