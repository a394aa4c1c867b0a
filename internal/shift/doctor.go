package shift

import (
	"math"

	"github.com/tomasbasham/triage"
	"github.com/tomasbasham/triage/internal/generate"
)

// MinEfficiency is the floor a doctor's efficiency decays towards.
const MinEfficiency = 0.25

// Doctor treats one patient at a time. Every treatment tires the doctor:
// efficiency drops by the burnout rate, so later treatments take longer.
type Doctor struct {
	ID              uint64
	InteractionTime uint64 // ticks spent treating
	Efficiency      float64
	BurnoutRate     float64
	Treated         int

	busyUntil uint64
}

// NewDoctor returns a fresh, fully efficient doctor.
func NewDoctor(profile generate.DoctorProfile) *Doctor {
	return &Doctor{
		ID:          profile.ID,
		Efficiency:  1.0,
		BurnoutRate: profile.BurnoutRate,
	}
}

// Idle reports whether the doctor can take a patient at tick now.
func (d *Doctor) Idle(now uint64) bool {
	return now >= d.busyUntil
}

// TreatmentTicks returns how long the doctor needs for a treatment estimated
// at timeToTreat ticks, given the current efficiency.
func (d *Doctor) TreatmentTicks(timeToTreat uint64) uint64 {
	eff := math.Max(d.Efficiency, MinEfficiency)
	return uint64(math.Ceil(float64(timeToTreat) / eff))
}

// Treat starts treating p at tick now and returns the treatment length.
func (d *Doctor) Treat(p triage.Patient, now uint64) uint64 {
	ticks := d.TreatmentTicks(p.TimeToTreat)
	d.busyUntil = now + ticks
	d.InteractionTime += ticks
	d.Treated++
	d.Efficiency = math.Max(MinEfficiency, d.Efficiency*(1-d.BurnoutRate))
	return ticks
}
