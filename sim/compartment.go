package sim

// Compartment is the epidemiological state of a node.
type Compartment uint8

const (
	// Susceptible nodes can be infected by an infectious neighbor.
	Susceptible Compartment = iota
	// Infected nodes transmit along incident edges until they recover.
	Infected
	// Recovered nodes are terminal in SIR mode. Unused in SIS mode, where
	// infected nodes revert to Susceptible instead.
	Recovered
)

func (c Compartment) String() string {
	switch c {
	case Susceptible:
		return "S"
	case Infected:
		return "I"
	case Recovered:
		return "R"
	default:
		return "?"
	}
}

// stateStore holds the per-run mutable node state. A fixed-shape record per
// node: the compartment tag plus, while infected, the scheduled recovery time.
// Counts are maintained incrementally so a snapshot never rescans the nodes.
type stateStore struct {
	status       []Compartment
	recoveryTime []float64 // valid only while status[u] == Infected

	s, i, r int
}

func newStateStore(n int) *stateStore {
	return &stateStore{
		status:       make([]Compartment, n),
		recoveryTime: make([]float64, n),
		s:            n,
	}
}

// setInfected marks u infected until recTime. Caller guarantees u is
// currently Susceptible.
func (st *stateStore) setInfected(u NodeID, recTime float64) {
	st.status[u] = Infected
	st.recoveryTime[u] = recTime
	st.s--
	st.i++
}

// setRecovered moves u from Infected to Recovered (SIR).
func (st *stateStore) setRecovered(u NodeID) {
	st.status[u] = Recovered
	st.i--
	st.r++
}

// setReverted moves u from Infected back to Susceptible (SIS).
func (st *stateStore) setReverted(u NodeID) {
	st.status[u] = Susceptible
	st.i--
	st.s++
}
