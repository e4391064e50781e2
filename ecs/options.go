package ecs

import "go.uber.org/zap"

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for debug records. A nil logger is
// ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithCanonicalSignatures makes family lookups ignore name order and
// duplicates, so ("a", "b") and ("b", "a") share a family.
func WithCanonicalSignatures() Option {
	return func(w *World) { w.canonical = true }
}
