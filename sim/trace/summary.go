package trace

// Summary aggregates statistics from a TransitionTrace.
type Summary struct {
	Infections int
	Recoveries int
	Reversions int
	// SeededInfections counts infections applied at initialization.
	SeededInfections int
	FirstTime        float64
	LastTime         float64
}

// Summarize computes aggregate statistics from a TransitionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(tt *TransitionTrace) *Summary {
	summary := &Summary{}
	if tt == nil || len(tt.Transitions) == 0 {
		return summary
	}

	summary.FirstTime = tt.Transitions[0].Time
	summary.LastTime = tt.Transitions[len(tt.Transitions)-1].Time
	for _, rec := range tt.Transitions {
		switch rec.Kind {
		case KindInfection:
			summary.Infections++
			if rec.Source == SeededSource {
				summary.SeededInfections++
			}
		case KindRecovery:
			summary.Recoveries++
		case KindReversion:
			summary.Reversions++
		}
	}
	return summary
}
