package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/epinet-sim/epinet-sim/sim/trace"
)

// ErrInvalidParameter is wrapped by every parameter validation failure, so
// callers can test for the whole class with errors.Is. A validation failure
// surfaces immediately; no partial run is performed.
var ErrInvalidParameter = errors.New("invalid parameter")

// Model selects the compartment dynamics of a run.
type Model uint8

const (
	// ModelSIR runs Susceptible -> Infected -> Recovered dynamics; Recovered
	// is terminal.
	ModelSIR Model = iota
	// ModelSIS runs Susceptible <-> Infected dynamics; recovery reverts the
	// node to Susceptible.
	ModelSIS
)

func (m Model) String() string {
	switch m {
	case ModelSIR:
		return "sir"
	case ModelSIS:
		return "sis"
	default:
		return "unknown"
	}
}

// ParseModel converts a model name ("sir" or "sis") to a Model.
func ParseModel(s string) (Model, error) {
	switch s {
	case "sir":
		return ModelSIR, nil
	case "sis":
		return ModelSIS, nil
	default:
		return 0, fmt.Errorf("%w: unknown model %q", ErrInvalidParameter, s)
	}
}

// RunConfig holds the parameters of one simulation run.
//
// The initial condition is either Rho (a fraction of the population infected
// uniformly at random without replacement) or InitialInfecteds (an explicit
// node set), never both. A nil InitialInfecteds with a nil Rho defaults to
// rho = 1/N, i.e. a single random initial infection. A non-nil empty
// InitialInfecteds is a valid degenerate run: the trajectory is the single
// snapshot (0, N, 0, 0).
type RunConfig struct {
	// Tau is the per-contact transmission rate. Ignored by the
	// non-Markovian mode, which samples delays directly.
	Tau float64
	// Gamma is the per-node recovery rate. Ignored by the non-Markovian
	// mode, which samples infectious periods directly.
	Gamma float64

	// Rho is the initial infected fraction, in [0, 1].
	Rho *float64
	// InitialInfecteds is the explicit set of initially infected nodes.
	InitialInfecteds []NodeID

	// TMax is the simulation horizon. Events past the horizon are never
	// scheduled. +Inf is allowed for SIR runs, which are guaranteed to
	// terminate by queue exhaustion; SIS runs require a finite horizon.
	TMax float64

	// Seed is the master seed for the run's RunRNG. Identical seed, network
	// and parameters reproduce bit-identical trajectories.
	Seed int64

	// ReturnFullData additionally returns the final per-node compartment
	// assignment on the Result.
	ReturnFullData bool

	// Trace enables per-transition trace recording.
	Trace trace.Config
}

// Validate checks the configuration against the network it will run on.
// All violations wrap ErrInvalidParameter.
func (c *RunConfig) Validate(net *Network, model Model) error {
	if net == nil {
		return fmt.Errorf("%w: network must not be nil", ErrInvalidParameter)
	}
	if c.Tau < 0 || math.IsNaN(c.Tau) {
		return fmt.Errorf("%w: tau must be non-negative, got %g", ErrInvalidParameter, c.Tau)
	}
	if c.Gamma < 0 || math.IsNaN(c.Gamma) {
		return fmt.Errorf("%w: gamma must be non-negative, got %g", ErrInvalidParameter, c.Gamma)
	}
	if c.TMax <= 0 || math.IsNaN(c.TMax) {
		return fmt.Errorf("%w: tmax must be positive, got %g", ErrInvalidParameter, c.TMax)
	}
	if model == ModelSIS && math.IsInf(c.TMax, 1) {
		return fmt.Errorf("%w: SIS runs need a finite tmax", ErrInvalidParameter)
	}
	if c.Rho != nil {
		if c.InitialInfecteds != nil {
			return fmt.Errorf("%w: rho and an explicit initial infected set are mutually exclusive", ErrInvalidParameter)
		}
		if *c.Rho < 0 || *c.Rho > 1 || math.IsNaN(*c.Rho) {
			return fmt.Errorf("%w: rho must be within [0,1], got %g", ErrInvalidParameter, *c.Rho)
		}
	}
	if c.InitialInfecteds != nil {
		seen := make(map[NodeID]bool, len(c.InitialInfecteds))
		for _, u := range c.InitialInfecteds {
			if u < 0 || int(u) >= net.N() {
				return fmt.Errorf("%w: initial infected node %d outside node range [0,%d)", ErrInvalidParameter, u, net.N())
			}
			if seen[u] {
				return fmt.Errorf("%w: initial infected node %d listed twice", ErrInvalidParameter, u)
			}
			seen[u] = true
		}
	}
	if !trace.IsValidLevel(string(c.Trace.Level)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidParameter, c.Trace.Level)
	}
	return nil
}
