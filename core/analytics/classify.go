package analytics

import (
	"math"

	"github.com/pkg/errors"
)

// Tier boundaries over the composite score, half-open so adjacent tiers are
// mutually exclusive and exhaustive over [0, 100].
const (
	exceptionalMin = 85.0
	goodMin        = 70.0
)

// stressTolerance is the score delta (on the 0-100 scale) within which the
// low-stress and high-stress performances count as equivalent.
const stressTolerance = 5.0

// ErrEmptyCohort is the typed "insufficient data" condition for a zero-size
// cohort; guards the percentage division.
var ErrEmptyCohort = errors.New("insufficient data: empty cohort")

// ClassifyTiers buckets a cohort's composite scores into the fixed
// three-tier scheme.
func ClassifyTiers(students []StudentPerformanceRecord) ([]PerformanceTier, error) {
	total := len(students)
	if total == 0 {
		return nil, ErrEmptyCohort
	}

	tiers := []PerformanceTier{
		{Name: "Needs Training", Color: "red", MinScore: 0},
		{Name: "Good Performance", Color: "yellow", MinScore: goodMin},
		{Name: "Exceptional", Color: "green", MinScore: exceptionalMin},
	}
	for _, s := range students {
		switch {
		case s.OverallScore >= exceptionalMin:
			tiers[2].Count++
		case s.OverallScore >= goodMin:
			tiers[1].Count++
		default:
			tiers[0].Count++
		}
	}
	for i := range tiers {
		tiers[i].Percentage = int(math.Round(float64(tiers[i].Count) / float64(total) * 100))
	}
	return tiers, nil
}

// ClassifyStressResponse categorizes a student's low-stress vs. high-stress
// score pair.
func ClassifyStressResponse(lowStress, highStress float64) StressResponse {
	switch {
	case highStress-lowStress > stressTolerance:
		return StressEnhanced
	case lowStress-highStress > stressTolerance:
		return StressAffected
	}
	return StressResilient
}
