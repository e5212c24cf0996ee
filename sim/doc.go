// Package sim provides the core event-driven simulation engine for epidemics
// on contact networks.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - network.go: the immutable contact network (CSR adjacency, edge weights)
//   - event.go: the event record (Transmission, Recovery) that drives a run
//   - simulator.go: the event loop, optimistic scheduling, revalidate-on-pop
//
// # Architecture
//
// The sim package holds the kernel; supporting pieces live in sub-packages:
//   - sim/dist/: transmission-delay and infectious-period samplers
//   - sim/trace/: optional per-transition trace recording
//
// A run is driven by FastSIR, FastSIS, or FastNonMarkovSIR. Each run owns its
// node state store, event queue, and random generator; the Network is shared
// read-only, so independent runs (see ensemble.go) execute in parallel without
// synchronization.
//
// # Algorithm
//
// Transmission opportunities are scheduled optimistically at the moment a node
// becomes infected: one recovery event at the end of the drawn infectious
// period, and one transmission event per neighbor whose drawn delay lands
// inside that period. Events that have gone stale by the time they are popped
// (source recovered, target no longer susceptible) are discarded in O(1) on
// pop rather than cancelled when the source recovers, which keeps recovery
// processing O(1) instead of O(degree).
package sim
