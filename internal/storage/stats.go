package storage

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunStats summarizes a set of runs.
type RunStats struct {
	Count       int
	MeanScore   float64
	StdDevScore float64
	MedianScore float64
	P90Score    float64
	MeanFloor   float64
	BestFloor   int
	MaxCombo    int
}

// Summarize computes score and floor statistics over runs.
// The standard deviation is the sample one and is zero for fewer than two runs.
func Summarize(runs []RunEntry) RunStats {
	st := RunStats{Count: len(runs)}
	if len(runs) == 0 {
		return st
	}

	scores := make([]float64, len(runs))
	floors := make([]float64, len(runs))
	for i, r := range runs {
		scores[i] = float64(r.Score)
		floors[i] = float64(r.Floor)
		st.BestFloor = max(st.BestFloor, r.Floor)
		st.MaxCombo = max(st.MaxCombo, r.MaxCombo)
	}

	st.MeanScore = stat.Mean(scores, nil)
	st.MeanFloor = stat.Mean(floors, nil)
	if len(scores) > 1 {
		st.StdDevScore = stat.StdDev(scores, nil)
	}

	sort.Float64s(scores)
	st.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	st.P90Score = stat.Quantile(0.9, stat.Empirical, scores, nil)
	return st
}
