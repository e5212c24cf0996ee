// Package analytic integrates the ODE approximation families that the
// simulated trajectories are compared against: homogeneous mean-field,
// homogeneous pairwise, heterogeneous (degree-based) mean-field, and the
// edge-based compartmental model (EBCM).
//
// Every solver returns the same (t, S, I, R) trajectory shape as the
// simulation engine, evaluated on a caller-supplied uniform time grid, so
// simulated and analytic curves plot on common axes. The FromGraph variants
// derive their initial conditions and degree summaries from a sim.Network
// and a uniformly random initial infected fraction rho.
//
// The simulation core has no dependency on this package; an integration
// failure here is reported as ErrIntegrationFailure and never retried by the
// simulation side.
package analytic
