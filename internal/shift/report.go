package shift

import "github.com/tomasbasham/triage"

// Report summarises a shift.
type Report struct {
	ShiftID  string `json:"shift_id"`
	Seed     uint64 `json:"seed"`
	Rescore  bool   `json:"rescore"`
	TieBreak string `json:"tie_break"`

	Ticks    uint64                `json:"ticks"`
	Arrived  int                   `json:"arrived"`
	Treated  int                   `json:"treated"`
	Waiting  int                   `json:"waiting"`
	MeanWait float64               `json:"mean_wait"`
	MaxWait  uint64                `json:"max_wait"`
	ByAcuity map[triage.Acuity]int `json:"treated_by_acuity"`

	Doctors []DoctorReport `json:"doctors"`

	totalWait uint64
}

// DoctorReport is a doctor's state at the end of a shift.
type DoctorReport struct {
	ID              uint64  `json:"id"`
	Treated         int     `json:"treated"`
	InteractionTime uint64  `json:"interaction_time"`
	Efficiency      float64 `json:"efficiency"`
}

func (r *Report) record(p triage.Patient) {
	r.Treated++
	r.totalWait += p.TimeWaited
	r.MaxWait = max(r.MaxWait, p.TimeWaited)
	r.ByAcuity[p.Acuity()]++
}
