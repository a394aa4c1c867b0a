package triage

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Value ranges guaranteed by patient sources. The queue does not enforce them.
const (
	MinSeverity    = 0
	MaxSeverity    = 100 // exclusive
	MinTimeToTreat = 15
	MaxTimeToTreat = 60 // exclusive
)

// ErrOutOfDomain is wrapped by [ValidatePatient] when a patient attribute
// falls outside the range its source guarantees.
var ErrOutOfDomain = eris.New("patient attribute out of domain")

// Patient is a person waiting for treatment. Patients are owned by whoever
// generates them; the [Queue] only reads them.
type Patient struct {
	ID            uint64
	SeverityScore uint64
	TimeOfArrival uint64 // tick count
	TimeWaited    uint64 // ticks, non-decreasing while queued
	TimeToTreat   uint64 // ticks
}

// Acuity returns the acuity band of the patient's severity.
func (p Patient) Acuity() Acuity {
	return AcuityOf(p.SeverityScore)
}

// ValidatePatient reports whether p satisfies the documented attribute ranges.
// It exists as a debugging aid; a failing patient is still accepted by
// [Queue.Push].
func ValidatePatient(p Patient) error {
	if p.SeverityScore >= MaxSeverity {
		return eris.Wrapf(ErrOutOfDomain, "patient %d: severity %d not in [%d,%d)",
			p.ID, p.SeverityScore, MinSeverity, MaxSeverity)
	}
	if p.TimeToTreat < MinTimeToTreat || p.TimeToTreat >= MaxTimeToTreat {
		return eris.Wrapf(ErrOutOfDomain, "patient %d: time to treat %d not in [%d,%d)",
			p.ID, p.TimeToTreat, MinTimeToTreat, MaxTimeToTreat)
	}
	return nil
}

// PositionRecord is the queue's projection of a [Patient]: just enough to
// recover identity and ordering. A record is created on push and destroyed on
// pop; it is never modified while queued.
type PositionRecord struct {
	PatientID uint64  `json:"patient_id"`
	Score     float64 `json:"position_score"`
}

func (r PositionRecord) String() string {
	return fmt.Sprintf("patient %d (score %.5f)", r.PatientID, r.Score)
}

// entry is the heap element wrapping a [PositionRecord].
type entry struct {
	record PositionRecord
	index  int

	// The seqNo records insertion order and breaks ties between records whose
	// scores fall within the tolerance band. It is assigned on push and kept
	// across a reprioritization.
	seqNo uint64
}
