// Package generate produces the patients and doctors of a simulated shift.
//
// Generators draw from an explicit random source so a shift can be replayed
// from its seed, and identifiers come from an explicit [Allocator] rather than
// process-wide state.
package generate

import (
	"math/rand/v2"
	"time"

	"github.com/tomasbasham/triage"
)

// Package-level default RNG used when a generator is given a nil source.
var defaultRNG = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))

// NewRand returns a PCG backed source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Patients generates arriving patients whose attributes lie within the
// ranges documented by the triage package.
type Patients struct {
	rng *rand.Rand
	ids *Allocator
}

// NewPatients returns a patient generator drawing from rng and numbering
// patients with ids.
func NewPatients(rng *rand.Rand, ids *Allocator) *Patients {
	if rng == nil {
		rng = defaultRNG
	}
	if ids == nil {
		ids = &Allocator{}
	}
	return &Patients{rng: rng, ids: ids}
}

// Arrive returns a new patient arriving at the given tick. The patient has not
// waited yet.
func (g *Patients) Arrive(tick uint64) triage.Patient {
	return triage.Patient{
		ID:            g.ids.Next(),
		SeverityScore: g.rng.Uint64N(triage.MaxSeverity - triage.MinSeverity),
		TimeOfArrival: tick,
		TimeToTreat:   triage.MinTimeToTreat + g.rng.Uint64N(triage.MaxTimeToTreat-triage.MinTimeToTreat),
	}
}

// DoctorProfile describes a doctor at the start of a shift.
type DoctorProfile struct {
	ID          uint64
	BurnoutRate float64
}

// Doctors generates doctor profiles with a burnout rate drawn uniformly from
// [MinBurnout, MaxBurnout).
type Doctors struct {
	rng        *rand.Rand
	ids        *Allocator
	minBurnout float64
	maxBurnout float64
}

// NewDoctors returns a doctor generator. If maxBurnout does not exceed
// minBurnout every doctor burns out at minBurnout.
func NewDoctors(rng *rand.Rand, ids *Allocator, minBurnout, maxBurnout float64) *Doctors {
	if rng == nil {
		rng = defaultRNG
	}
	if ids == nil {
		ids = &Allocator{}
	}
	return &Doctors{rng: rng, ids: ids, minBurnout: minBurnout, maxBurnout: maxBurnout}
}

// Next returns the profile of a new doctor.
func (g *Doctors) Next() DoctorProfile {
	rate := g.minBurnout
	if g.maxBurnout > g.minBurnout {
		rate += g.rng.Float64() * (g.maxBurnout - g.minBurnout)
	}
	return DoctorProfile{ID: g.ids.Next(), BurnoutRate: rate}
}

// Generate returns n new doctor profiles.
func (g *Doctors) Generate(n int) []DoctorProfile {
	doctors := make([]DoctorProfile, 0, n)
	for range n {
		doctors = append(doctors, g.Next())
	}
	return doctors
}
