package triage

import "github.com/rs/zerolog"

// TieBreak selects how records with tied scores are ordered.
type TieBreak int

const (
	// TieBreakInsertion serves tied records in the order they were pushed.
	TieBreakInsertion TieBreak = iota
	// TieBreakPatientID serves the tied record with the lowest patient
	// identifier first, falling back to insertion order for duplicates.
	TieBreakPatientID
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakPatientID:
		return "id"
	default:
		return "insertion"
	}
}

// Options holds configuration options for the [Queue].
type Options struct {
	TieBreak TieBreak
	Metrics  MetricsHook
	Logger   zerolog.Logger
}

// Option is a function that configures [Options].
type Option func(*Options)

// WithTieBreak sets the tie-break rule for the [Queue].
func WithTieBreak(t TieBreak) Option {
	return func(o *Options) {
		o.TieBreak = t
	}
}

// WithMetricsHook sets the metrics hook for the [Queue].
func WithMetricsHook(hook MetricsHook) Option {
	return func(o *Options) {
		o.Metrics = hook
	}
}

// WithLogger sets the logger for the [Queue]. Out-of-domain patients are
// reported at warn level, pushes and pops at trace level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
