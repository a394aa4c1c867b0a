// Package triage implements the priority scheduling engine of an emergency
// department triage queue.
//
// Patients are ordered by a weighted position score combining their severity,
// the time they have waited and their estimated treatment time. The [Queue]
// always serves the patient with the greatest score next, the way a doctor
// would pick the most pressing case from the waiting room.
//
// Scores are snapshotted when a patient is pushed. A patient keeps waiting
// after being enqueued, so the stored score goes stale; callers that want the
// ordering to follow the live wait time call [Queue.Reprioritize] with the
// patient's current attributes.
//
// Scores that differ by less than [Epsilon] are considered tied. Ties are
// broken deterministically, by insertion order unless [WithTieBreak] selects
// ordering by patient identifier.
package triage
