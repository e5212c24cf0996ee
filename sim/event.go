package sim

// EventKind discriminates the two event payloads the engine processes.
type EventKind uint8

const (
	// EventTransmission is an infection attempt from Source to Target.
	EventTransmission EventKind = iota
	// EventRecovery ends Source's infectious interval: Infected -> Recovered
	// in SIR mode, Infected -> Susceptible (reversion) in SIS mode.
	EventRecovery
)

func (k EventKind) String() string {
	switch k {
	case EventTransmission:
		return "transmission"
	case EventRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

// Event is one pending state change. Events are immutable once created;
// only the queue and the engine observe them. A popped event is consumed
// exactly once: applied if still valid, silently discarded if stale.
type Event struct {
	Time   float64
	Kind   EventKind
	Source NodeID
	// Target is the node being infected. Unused for recovery events.
	Target NodeID
}
