package triage

import (
	"container/heap"
	"context"
	"iter"
	"sync"

	"github.com/rs/zerolog"
)

// Ensure recordHeap implements [heap.Interface].
var _ heap.Interface = (*recordHeap)(nil)

// MetricsHook defines hooks for monitoring push, pop, and reprioritization
// events. Hooks are called after the queue lock has been released.
type MetricsHook interface {
	OnPush(record PositionRecord)
	OnPop(record PositionRecord)
	OnReprioritize(record PositionRecord, from float64)
}

// Queue is a max-priority queue of patients that supports the following
// operations:
//
//   - Push a patient, scoring it once at insertion time
//   - Peek and pop the record with the greatest score
//   - Preview a patient's score without pushing it
//   - Reprioritize a queued patient from its current attributes
//   - Blocking consumption for concurrent doctors
//
// Records whose scores differ by less than [Epsilon] are tied and leave the
// queue according to the configured [TieBreak]. A Queue is safe for
// concurrent use; every pushed record is popped at most once.
type Queue struct {
	mu      sync.Mutex
	metrics MetricsHook
	logger  zerolog.Logger

	heap  recordHeap
	seqNo uint64

	// Most recently pushed entry for each queued patient identifier.
	byID map[uint64]*entry

	notifyCh chan struct{}
}

// New creates a new empty [Queue] with the given options.
func New(opts ...Option) *Queue {
	o := &Options{Logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	q := &Queue{
		metrics:  o.Metrics,
		logger:   o.Logger,
		heap:     recordHeap{tieBreak: o.TieBreak},
		byID:     make(map[uint64]*entry),
		notifyCh: make(chan struct{}, 1),
	}

	heap.Init(&q.heap)
	return q
}

// CalculatePositionScore returns the score p would be queued with if it were
// pushed now. It does not touch the queue.
func (q *Queue) CalculatePositionScore(p Patient) float64 {
	return PositionScore(p)
}

// Push scores p and inserts its [PositionRecord]. Pushing the same patient
// twice queues two records.
func (q *Queue) Push(p Patient) {
	if err := ValidatePatient(p); err != nil {
		q.logger.Warn().Err(err).Uint64("patient_id", p.ID).Msg("queueing out-of-domain patient")
	}

	e := &entry{
		record: PositionRecord{PatientID: p.ID, Score: q.CalculatePositionScore(p)},
		index:  -1,
	}

	q.mu.Lock()
	e.seqNo = q.seqNo
	q.seqNo++
	heap.Push(&q.heap, e)
	q.byID[p.ID] = e
	q.mu.Unlock()

	q.logger.Trace().
		Uint64("patient_id", e.record.PatientID).
		Float64("score", e.record.Score).
		Msg("pushed")

	if q.metrics != nil {
		q.metrics.OnPush(e.record)
	}

	q.notify()
}

// PeekMax returns the record with the greatest score without removing it. The
// boolean is false if the queue is empty.
func (q *Queue) PeekMax() (PositionRecord, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.heap.Len() == 0 {
		return PositionRecord{}, false
	}
	return q.heap.entries[0].record, true
}

// PopMax removes and returns the record with the greatest score. The boolean
// is false if the queue is empty.
func (q *Queue) PopMax() (PositionRecord, bool) {
	q.mu.Lock()
	if q.heap.Len() == 0 {
		q.mu.Unlock()
		return PositionRecord{}, false
	}
	record := q.popLocked()
	remaining := q.heap.Len()
	q.mu.Unlock()

	q.popped(record)

	// Another consumer may be blocked in Next on a notification this call
	// swallowed.
	if remaining > 0 {
		q.notify()
	}
	return record, true
}

func (q *Queue) popLocked() PositionRecord {
	e := heap.Pop(&q.heap).(*entry)
	if q.byID[e.record.PatientID] == e {
		delete(q.byID, e.record.PatientID)
	}
	return e.record
}

func (q *Queue) popped(record PositionRecord) {
	q.logger.Trace().
		Uint64("patient_id", record.PatientID).
		Float64("score", record.Score).
		Msg("popped")

	if q.metrics != nil {
		q.metrics.OnPop(record)
	}
}

// Reprioritize replaces the queued record of p.ID with one scored from p's
// current attributes and restores the queue order. The patient keeps its
// original insertion position for tie-breaking. If the same patient was pushed
// more than once, the most recent record is replaced. Reprioritize returns
// false if the patient is not queued.
func (q *Queue) Reprioritize(p Patient) bool {
	q.mu.Lock()

	old, ok := q.byID[p.ID]
	if !ok {
		q.mu.Unlock()
		return false
	}

	e := &entry{
		record: PositionRecord{PatientID: p.ID, Score: q.CalculatePositionScore(p)},
		index:  old.index,
		seqNo:  old.seqNo,
	}
	q.heap.entries[e.index] = e
	old.index = -1
	q.byID[p.ID] = e

	// Reorder the heap since the record's score has changed.
	heap.Fix(&q.heap, e.index)
	q.mu.Unlock()

	if q.metrics != nil {
		q.metrics.OnReprioritize(e.record, old.record.Score)
	}

	q.notify()
	return true
}

func (q *Queue) notify() {
	select {
	case q.notifyCh <- struct{}{}:
	default:
	}
}

// Records returns an iterator over queued records. The iterator yields the
// record with the greatest score, blocking until records are available or the
// context is cancelled.
func (q *Queue) Records(ctx context.Context) iter.Seq[PositionRecord] {
	return func(yield func(PositionRecord) bool) {
		for {
			next, ok := q.Next(ctx)
			if !ok {
				return
			}

			if !yield(next) {
				return
			}
		}
	}
}

// Next removes and returns the record with the greatest score. If the queue is
// empty, Next blocks until a record is available or the context is cancelled,
// in which case the boolean is false.
func (q *Queue) Next(ctx context.Context) (PositionRecord, bool) {
	for {
		if record, ok := q.PopMax(); ok {
			return record, true
		}

		select {
		case <-q.notifyCh:
		case <-ctx.Done():
			return PositionRecord{}, false
		}
	}
}

// Len returns the number of records currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.heap.Len()
}

// recordHeap orders entries so that the entry served next sits at index 0.
type recordHeap struct {
	entries  []*entry
	tieBreak TieBreak
}

func (h *recordHeap) Len() int {
	return len(h.entries)
}

// Less reports whether the entry at i is served before the entry at j.
func (h *recordHeap) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]

	if c := Compare(a.record.Score, b.record.Score); c != 0 {
		return c > 0
	}
	if h.tieBreak == TieBreakPatientID && a.record.PatientID != b.record.PatientID {
		return a.record.PatientID < b.record.PatientID
	}
	return a.seqNo < b.seqNo
}

func (h *recordHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.entries[i].index = i
	h.entries[j].index = j
}

func (h *recordHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(h.entries)
	h.entries = append(h.entries, e)
}

func (h *recordHeap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil // avoid memory leak
	e.index = -1
	h.entries = old[0 : n-1]
	return e
}
