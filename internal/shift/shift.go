// Package shift runs a tick-driven emergency department shift on top of the
// triage queue.
//
// Each tick a patient may arrive and is pushed onto the queue, idle doctors
// take the highest priority patient, and everyone still waiting accrues one
// tick of waiting time. Arrivals stop when the shift ends; the shift then runs
// on until every queued patient has been seen.
package shift

import (
	"context"
	"maps"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/tomasbasham/triage"
	"github.com/tomasbasham/triage/internal/config"
	"github.com/tomasbasham/triage/internal/generate"
)

// Observer is notified at the end of every tick.
type Observer interface {
	ObserveTick(tick uint64, depth, busy int)
}

// Option configures a [Shift].
type Option func(*Shift)

// WithLogger sets the logger of the shift and its queue.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Shift) {
		s.logger = logger
	}
}

// WithQueueMetrics sets the metrics hook of the shift's queue.
func WithQueueMetrics(hook triage.MetricsHook) Option {
	return func(s *Shift) {
		s.queueMetrics = hook
	}
}

// WithObserver sets the per-tick observer.
func WithObserver(o Observer) Option {
	return func(s *Shift) {
		s.observer = o
	}
}

// Shift is a single simulated shift. It is not safe for concurrent use.
type Shift struct {
	id           uuid.UUID
	cfg          config.Config
	seed         uint64
	rng          *rand.Rand
	logger       zerolog.Logger
	queueMetrics triage.MetricsHook
	observer     Observer

	queue    *triage.Queue
	patients *generate.Patients
	doctors  []*Doctor

	// Patients waiting in the queue, by identifier. The queue only holds
	// their position records.
	waiting map[uint64]*triage.Patient

	report Report
}

// New prepares a shift from a validated configuration.
func New(cfg config.Config, opts ...Option) (*Shift, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tieBreak, err := cfg.ParseTieBreak()
	if err != nil {
		return nil, err
	}

	s := &Shift{
		id:      uuid.New(),
		cfg:     cfg,
		seed:    cfg.Seed,
		logger:  zerolog.Nop(),
		waiting: make(map[uint64]*triage.Patient),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == 0 {
		s.seed = uint64(time.Now().UnixNano())
	}
	s.logger = s.logger.With().Str("shift_id", s.id.String()).Logger()
	s.rng = generate.NewRand(s.seed)

	queueOpts := []triage.Option{
		triage.WithTieBreak(tieBreak),
		triage.WithLogger(s.logger),
	}
	if s.queueMetrics != nil {
		queueOpts = append(queueOpts, triage.WithMetricsHook(s.queueMetrics))
	}
	s.queue = triage.New(queueOpts...)

	s.patients = generate.NewPatients(s.rng, &generate.Allocator{})
	staff := generate.NewDoctors(s.rng, &generate.Allocator{}, cfg.MinBurnoutRate, cfg.MaxBurnoutRate)
	for _, profile := range staff.Generate(cfg.Doctors) {
		s.doctors = append(s.doctors, NewDoctor(profile))
	}

	s.report = Report{
		ShiftID:  s.id.String(),
		Seed:     s.seed,
		Rescore:  cfg.Rescore,
		TieBreak: tieBreak.String(),
		ByAcuity: make(map[triage.Acuity]int),
	}
	return s, nil
}

// ID returns the identifier of the shift.
func (s *Shift) ID() uuid.UUID {
	return s.id
}

// Run advances the shift tick by tick until arrivals have stopped, the queue
// is empty and every doctor is idle. Cancelling ctx stops the shift between
// ticks and returns the partial report along with the context error.
func (s *Shift) Run(ctx context.Context) (Report, error) {
	s.logger.Info().
		Uint64("seed", s.seed).
		Uint64("shift_length", s.cfg.ShiftLength).
		Int("doctors", len(s.doctors)).
		Bool("rescore", s.cfg.Rescore).
		Msg("shift started")

	var tick uint64
	for ; ; tick++ {
		if err := ctx.Err(); err != nil {
			s.finish(tick)
			return s.report, eris.Wrapf(err, "shift interrupted at tick %d", tick)
		}

		s.Step(tick)

		if tick+1 >= s.cfg.ShiftLength && s.queue.Len() == 0 && s.allIdle(tick+1) {
			break
		}
	}

	s.finish(tick + 1)
	s.logger.Info().
		Uint64("ticks", s.report.Ticks).
		Int("arrived", s.report.Arrived).
		Int("treated", s.report.Treated).
		Float64("mean_wait", s.report.MeanWait).
		Uint64("max_wait", s.report.MaxWait).
		Msg("shift finished")
	return s.report, nil
}

// Step runs a single tick: arrival, treatment assignment, then wait accrual.
func (s *Shift) Step(tick uint64) {
	if tick < s.cfg.ShiftLength && s.rng.Float64() < s.cfg.ArrivalProbability {
		p := s.patients.Arrive(tick)
		s.waiting[p.ID] = &p
		s.queue.Push(p)
		s.report.Arrived++

		s.logger.Debug().
			Uint64("tick", tick).
			Uint64("patient_id", p.ID).
			Stringer("acuity", p.Acuity()).
			Float64("score", s.queue.CalculatePositionScore(p)).
			Msg("patient arrived")
	}

	busy := 0
	for _, d := range s.doctors {
		if !d.Idle(tick) {
			busy++
			continue
		}
		record, ok := s.queue.PopMax()
		if !ok {
			continue
		}
		busy++
		s.treat(d, record, tick)
	}

	for _, id := range slices.Sorted(maps.Keys(s.waiting)) {
		p := s.waiting[id]
		p.TimeWaited++
		if s.cfg.Rescore {
			s.queue.Reprioritize(*p)
		}
	}

	if s.observer != nil {
		s.observer.ObserveTick(tick, s.queue.Len(), busy)
	}
}

func (s *Shift) treat(d *Doctor, record triage.PositionRecord, tick uint64) {
	p, ok := s.waiting[record.PatientID]
	if !ok {
		s.logger.Warn().Uint64("patient_id", record.PatientID).Msg("popped unknown patient")
		return
	}
	delete(s.waiting, record.PatientID)

	ticks := d.Treat(*p, tick)
	s.report.record(*p)

	s.logger.Debug().
		Uint64("tick", tick).
		Uint64("doctor_id", d.ID).
		Uint64("patient_id", p.ID).
		Stringer("acuity", p.Acuity()).
		Uint64("waited", p.TimeWaited).
		Uint64("treatment_ticks", ticks).
		Float64("efficiency", d.Efficiency).
		Msg("patient treated")
}

func (s *Shift) allIdle(now uint64) bool {
	for _, d := range s.doctors {
		if !d.Idle(now) {
			return false
		}
	}
	return true
}

func (s *Shift) finish(ticks uint64) {
	s.report.Ticks = ticks
	s.report.Waiting = s.queue.Len()
	if s.report.Treated > 0 {
		s.report.MeanWait = float64(s.report.totalWait) / float64(s.report.Treated)
	}

	s.report.Doctors = s.report.Doctors[:0]
	for _, d := range s.doctors {
		s.report.Doctors = append(s.report.Doctors, DoctorReport{
			ID:              d.ID,
			Treated:         d.Treated,
			InteractionTime: d.InteractionTime,
			Efficiency:      d.Efficiency,
		})
	}
}
