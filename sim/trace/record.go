package trace

// Kind labels the transition captured by a record.
type Kind string

const (
	// KindInfection is a Susceptible -> Infected transition.
	KindInfection Kind = "infect"
	// KindRecovery is an Infected -> Recovered transition (SIR).
	KindRecovery Kind = "recover"
	// KindReversion is an Infected -> Susceptible transition (SIS).
	KindReversion Kind = "revert"
)

// SeededSource marks an infection applied by the initial condition handler
// rather than transmitted across an edge.
const SeededSource = -1

// TransitionRecord captures a single accepted state transition.
type TransitionRecord struct {
	Time float64
	Kind Kind
	// Node is the node whose compartment changed.
	Node int
	// Source is the infecting node for infections, or SeededSource for
	// initial infections. Unused for recoveries and reversions.
	Source int
}
