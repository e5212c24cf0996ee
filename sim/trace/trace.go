// Package trace provides per-transition trace recording for epidemic runs.
// This package has no dependency on sim/ — it stores pure data types.
package trace

// Level controls the verbosity of transition tracing.
type Level string

const (
	// LevelNone disables tracing (zero overhead).
	LevelNone Level = "none"
	// LevelTransitions captures every accepted infection, recovery, and
	// reversion.
	LevelTransitions Level = "transitions"
)

// validLevels maps accepted trace level strings.
var validLevels = map[Level]bool{
	LevelNone:        true,
	LevelTransitions: true,
	"":               true, // empty defaults to none
}

// IsValidLevel returns true if the given level string is a recognized trace level.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// Config controls trace collection behavior.
type Config struct {
	Level Level
}

// TransitionTrace collects transition records during a run.
type TransitionTrace struct {
	Config      Config
	Transitions []TransitionRecord
}

// New creates a TransitionTrace ready for recording.
func New(config Config) *TransitionTrace {
	return &TransitionTrace{
		Config:      config,
		Transitions: make([]TransitionRecord, 0),
	}
}

// Record appends a transition record.
func (tt *TransitionTrace) Record(record TransitionRecord) {
	tt.Transitions = append(tt.Transitions, record)
}
