package triage

// Weights of the position score. They sum to 1.0.
//
// ShortestJobWeight multiplies the treatment time and is added, so a longer
// treatment currently raises priority.
const (
	SeverityWeight    = 0.5
	TimeWaitedWeight  = 0.3
	ShortestJobWeight = 0.2
)

// Score computes the position score of a patient with the given attributes.
// Higher scores are served first.
func Score(severity, timeWaited, timeToTreat float64) float64 {
	return severity*SeverityWeight +
		timeWaited*TimeWaitedWeight +
		timeToTreat*ShortestJobWeight
}

// PositionScore computes the position score of p from its current attributes.
func PositionScore(p Patient) float64 {
	return Score(float64(p.SeverityScore), float64(p.TimeWaited), float64(p.TimeToTreat))
}
