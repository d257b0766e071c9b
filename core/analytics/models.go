package analytics

// StudentPerformanceRecord is one student's scores from the pre-computed
// analytics payload. Read-only to this core.
type StudentPerformanceRecord struct {
	StudentID       string  `json:"student_id"`
	Name            string  `json:"name,omitempty"`
	OverallScore    float64 `json:"overall_score"`
	SlalomControl   float64 `json:"slalom_control"`
	EvasionControl  float64 `json:"evasion_control"`
	BrakeControl    float64 `json:"brake_control"`
	ReverseControl  float64 `json:"reverse_control"`
	LowStressScore  float64 `json:"low_stress_score"`
	HighStressScore float64 `json:"high_stress_score"`
}

// Report is the analytics payload for one event. Only the score arrays are
// consumed here; narrative sections pass through untouched.
type Report struct {
	EventID   string                     `json:"event_id"`
	Students  []StudentPerformanceRecord `json:"student_performance_data"`
	Narrative map[string]string          `json:"narrative_sections,omitempty"`
}

// PerformanceTier is one bucket of a cohort's composite scores. Derived per
// render, never persisted.
type PerformanceTier struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage int     `json:"percentage"`
	Color      string  `json:"color"`
	MinScore   float64 `json:"min_score"`
}

// StressResponse qualifies how a student's performance moved between the
// low-stress and high-stress exercises.
type StressResponse string

const (
	// StressEnhanced: performance improved under stress.
	StressEnhanced StressResponse = "enhanced"
	// StressResilient: both scores within tolerance of each other.
	StressResilient StressResponse = "resilient"
	// StressAffected: performance degraded under stress.
	StressAffected StressResponse = "affected"
)
