// Package statsd reports triage queue and shift activity to a statsd agent.
// It hides the datadog dependency behind [Hook] so the rest of the module only
// sees the triage metrics interfaces.
package statsd

import (
	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/tomasbasham/triage"
)

// Ensure Hook implements [triage.MetricsHook].
var _ triage.MetricsHook = (*Hook)(nil)

// Hook emits queue events and per-tick shift gauges through a statsd client.
// Emission failures are logged and otherwise ignored.
type Hook struct {
	client ddstatsd.ClientInterface
	logger zerolog.Logger
}

// New connects a [Hook] to the statsd agent at address. Every metric is
// prefixed with "triage." and carries tags.
func New(address string, tags []string, logger zerolog.Logger) (*Hook, error) {
	if address == "" {
		return nil, eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		ddstatsd.WithNamespace("triage."),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	client, err := ddstatsd.New(address, opts...)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to create statsd client for %s", address)
	}
	return NewHook(client, logger), nil
}

// NewHook returns a [Hook] emitting through client.
func NewHook(client ddstatsd.ClientInterface, logger zerolog.Logger) *Hook {
	if client == nil {
		client = &ddstatsd.NoOpClient{}
	}
	return &Hook{client: client, logger: logger}
}

func (h *Hook) OnPush(record triage.PositionRecord) {
	h.check("queue.push", h.client.Incr("queue.push", nil, 1))
	h.check("queue.score", h.client.Histogram("queue.score", record.Score, nil, 1))
}

func (h *Hook) OnPop(record triage.PositionRecord) {
	h.check("queue.pop", h.client.Incr("queue.pop", nil, 1))
}

func (h *Hook) OnReprioritize(record triage.PositionRecord, from float64) {
	h.check("queue.rescore", h.client.Histogram("queue.rescore", record.Score-from, nil, 1))
}

// ObserveTick records the queue depth and the number of busy doctors at the
// end of a shift tick.
func (h *Hook) ObserveTick(_ uint64, depth, busy int) {
	h.check("shift.queue_depth", h.client.Gauge("shift.queue_depth", float64(depth), nil, 1))
	h.check("shift.busy_doctors", h.client.Gauge("shift.busy_doctors", float64(busy), nil, 1))
}

// Close flushes and closes the underlying client.
func (h *Hook) Close() error {
	return eris.Wrap(h.client.Close(), "failed to close statsd client")
}

func (h *Hook) check(metric string, err error) {
	if err != nil {
		h.logger.Warn().Err(err).Str("metric", metric).Msg("failed to emit metric")
	}
}
