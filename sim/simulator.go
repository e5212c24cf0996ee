// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/epinet-sim/epinet-sim/sim/dist"
	"github.com/epinet-sim/epinet-sim/sim/trace"
)

// Result bundles the outputs of one run.
type Result struct {
	// RunID identifies this run in logs and ensemble reports.
	RunID uuid.UUID
	Model Model
	Seed  int64

	Trajectory *Trajectory

	// FinalStatus is the per-node compartment assignment at run end.
	// Populated only when RunConfig.ReturnFullData is set.
	FinalStatus []Compartment

	// Trace is non-nil only when tracing was enabled.
	Trace *trace.TransitionTrace

	Metrics Metrics
}

// AttackRate returns the fraction of the population no longer susceptible at
// run end.
func (r *Result) AttackRate() float64 {
	_, s, i, rec := r.Trajectory.Final()
	n := s + i + rec
	if n == 0 {
		return 0
	}
	return (n - s) / n
}

// delayFunc draws a transmission delay for one edge; weight scales the rate
// in the Markovian case.
type delayFunc func(rng *rand.Rand, weight float64) float64

// durationFunc draws an infectious-period length.
type durationFunc func(rng *rand.Rand) float64

// markovDelay returns exponential transmission delays with rate tau scaled
// by the edge weight. A zero rate never fires.
func markovDelay(tau float64) delayFunc {
	return func(rng *rand.Rand, weight float64) float64 {
		rate := tau * weight
		if rate <= 0 {
			return math.Inf(1)
		}
		return rng.ExpFloat64() / rate
	}
}

// markovDuration returns exponential infectious periods with rate gamma.
// A zero rate means the node never recovers.
func markovDuration(gamma float64) durationFunc {
	return func(rng *rand.Rand) float64 {
		if gamma <= 0 {
			return math.Inf(1)
		}
		return rng.ExpFloat64() / gamma
	}
}

// simulator holds the private state of one run: node states, event queue,
// and random generator. The Network is shared read-only.
type simulator struct {
	net   *Network
	cfg   RunConfig
	model Model

	delay    delayFunc
	duration durationFunc

	rng      *RunRNG
	transRNG *rand.Rand
	durRNG   *rand.Rand

	store *stateStore
	queue *eventQueue
	traj  *Trajectory
	trace *trace.TransitionTrace

	clock   float64
	metrics Metrics
}

// FastSIR runs one Markovian SIR epidemic on net: transmission along each
// edge at rate tau times the edge weight, recovery at rate gamma.
func FastSIR(net *Network, cfg RunConfig) (*Result, error) {
	if err := cfg.Validate(net, ModelSIR); err != nil {
		return nil, err
	}
	s := newSimulator(net, cfg, ModelSIR, markovDelay(cfg.Tau), markovDuration(cfg.Gamma))
	return s.run(), nil
}

// FastSIS runs one Markovian SIS epidemic on net. Recovery reverts the node
// to Susceptible, so it stays a valid transmission target; the horizon must
// be finite because the process need not die out.
func FastSIS(net *Network, cfg RunConfig) (*Result, error) {
	if err := cfg.Validate(net, ModelSIS); err != nil {
		return nil, err
	}
	s := newSimulator(net, cfg, ModelSIS, markovDelay(cfg.Tau), markovDuration(cfg.Gamma))
	return s.run(), nil
}

// FastNonMarkovSIR runs one SIR epidemic with arbitrary transmission-delay
// and infectious-period distributions. The algorithm is unchanged from
// FastSIR; only the draws differ. Edge weights are not consulted in this
// mode, and cfg.Tau/cfg.Gamma are ignored.
func FastNonMarkovSIR(net *Network, cfg RunConfig, transmission, duration dist.Sampler) (*Result, error) {
	if err := cfg.Validate(net, ModelSIR); err != nil {
		return nil, err
	}
	if transmission == nil || duration == nil {
		return nil, fmt.Errorf("%w: transmission and duration samplers must not be nil", ErrInvalidParameter)
	}
	s := newSimulator(net, cfg, ModelSIR,
		func(rng *rand.Rand, _ float64) float64 { return transmission.Sample(rng) },
		func(rng *rand.Rand) float64 { return duration.Sample(rng) },
	)
	return s.run(), nil
}

func newSimulator(net *Network, cfg RunConfig, model Model, delay delayFunc, duration durationFunc) *simulator {
	s := &simulator{
		net:      net,
		cfg:      cfg,
		model:    model,
		delay:    delay,
		duration: duration,
		rng:      NewRunRNG(cfg.Seed),
		store:    newStateStore(net.N()),
		queue:    newEventQueue(net.N()),
		traj:     newTrajectory(net.N() + 1),
	}
	s.transRNG = s.rng.ForSubsystem(SubsystemTransmission)
	s.durRNG = s.rng.ForSubsystem(SubsystemDuration)
	if cfg.Trace.Level == trace.LevelTransitions {
		s.trace = trace.New(cfg.Trace)
	}
	return s
}

// run executes the pop/process/push loop until the queue is exhausted. The
// queue only ever holds events at or before the horizon, so exhaustion is
// the sole termination condition.
func (s *simulator) run() *Result {
	logrus.Infof("starting %s run: N=%d, seed=%d", s.model, s.net.N(), s.cfg.Seed)

	s.seedInitial()
	s.traj.append(0, s.store.s, s.store.i, s.store.r)
	s.metrics.observePeak(0, s.store.i)

	for {
		ev, ok := s.queue.PopNext()
		if !ok {
			break
		}
		s.clock = ev.Time
		switch ev.Kind {
		case EventTransmission:
			s.processTransmission(ev)
		case EventRecovery:
			s.processRecovery(ev)
		}
	}
	s.metrics.EndTime = s.clock
	logrus.Infof("%s run ended at t=%.4f: S=%d I=%d R=%d, %d stale events dropped",
		s.model, s.clock, s.store.s, s.store.i, s.store.r, s.metrics.StaleDiscards)

	res := &Result{
		RunID:      uuid.New(),
		Model:      s.model,
		Seed:       s.cfg.Seed,
		Trajectory: s.traj,
		Trace:      s.trace,
		Metrics:    s.metrics,
	}
	if s.cfg.ReturnFullData {
		res.FinalStatus = append([]Compartment(nil), s.store.status...)
	}
	return res
}

// seedInitial applies the initial condition: the explicit infected set if
// given, otherwise a uniform sample without replacement of round(rho*N)
// nodes (rho defaults to 1/N). Each seeded node is infected at t=0, which
// bootstraps the event queue.
func (s *simulator) seedInitial() {
	if s.net.N() == 0 {
		return
	}
	initial := s.cfg.InitialInfecteds
	if initial == nil {
		rho := 1.0 / float64(s.net.N())
		if s.cfg.Rho != nil {
			rho = *s.cfg.Rho
		}
		k := int(math.Round(rho * float64(s.net.N())))
		if k > s.net.N() {
			k = s.net.N()
		}
		perm := s.rng.ForSubsystem(SubsystemSeeding).Perm(s.net.N())
		for _, idx := range perm[:k] {
			initial = append(initial, NodeID(idx))
		}
	}
	for _, u := range initial {
		s.infect(u, 0, trace.SeededSource)
		s.metrics.InitialInfections++
	}
}

// infect transitions u to Infected at time t and schedules its follow-on
// events optimistically: one recovery at the end of the drawn infectious
// period, and one transmission per neighbor whose drawn delay lands inside
// that period and the horizon. Caller guarantees u is Susceptible.
func (s *simulator) infect(u NodeID, t float64, source int) {
	recTime := t + s.duration(s.durRNG)
	s.store.setInfected(u, recTime)
	// An infinite infectious period (zero recovery rate) means the node
	// never recovers, even under an infinite horizon.
	if recTime <= s.cfg.TMax && !math.IsInf(recTime, 1) {
		s.queue.Schedule(Event{Time: recTime, Kind: EventRecovery, Source: u})
	}

	nbrs, wts := s.net.adjacency(u)
	for i, v := range nbrs {
		if s.model == ModelSIR && s.store.status[v] != Susceptible {
			// Already infected or recovered, so never a valid target again
			// under SIR; skip the draw. SIS neighbors may revert, so they
			// always get an event; revalidation on pop keeps that safe.
			continue
		}
		tt := t + s.delay(s.transRNG, wts[i])
		if tt < recTime && tt <= s.cfg.TMax {
			s.queue.Schedule(Event{Time: tt, Kind: EventTransmission, Source: u, Target: v})
		}
	}

	if s.trace != nil {
		s.trace.Record(trace.TransitionRecord{Time: t, Kind: trace.KindInfection, Node: int(u), Source: source})
	}
	logrus.Debugf("[t=%.6f] infect node %d (source %d), recovery at %.6f", t, u, source, recTime)
}

// processTransmission revalidates a popped transmission event and, if still
// valid, infects the target. Stale events are the normal byproduct of
// optimistic scheduling: they are discarded in O(1) here instead of being
// cancelled when their source recovers, which would cost O(degree) per
// recovery.
//
// The status check alone bounds the event inside the source's current
// infectious interval: every transmission is scheduled strictly before its
// source's recovery, and the queue pops in time order, so a transmission
// drawn in an earlier SIS infectious interval always pops before the
// reversion that ends it.
func (s *simulator) processTransmission(ev Event) {
	if s.store.status[ev.Source] != Infected || s.store.status[ev.Target] != Susceptible {
		s.metrics.StaleDiscards++
		logrus.Debugf("[t=%.6f] stale transmission %d->%d dropped", ev.Time, ev.Source, ev.Target)
		return
	}
	s.metrics.TransmissionsAccepted++
	s.infect(ev.Target, ev.Time, int(ev.Source))
	s.traj.append(ev.Time, s.store.s, s.store.i, s.store.r)
	s.metrics.observePeak(ev.Time, s.store.i)
}

// processRecovery ends a node's infectious interval: Infected -> Recovered
// under SIR, Infected -> Susceptible under SIS. Nothing is scheduled here;
// under SIS the node simply becomes a valid transmission target again.
func (s *simulator) processRecovery(ev Event) {
	if s.store.status[ev.Source] != Infected {
		// Unreachable while the one-live-recovery-per-node invariant holds.
		s.metrics.StaleDiscards++
		return
	}
	kind := trace.KindRecovery
	if s.model == ModelSIS {
		s.store.setReverted(ev.Source)
		kind = trace.KindReversion
	} else {
		s.store.setRecovered(ev.Source)
	}
	s.metrics.RecoveriesAccepted++
	s.traj.append(ev.Time, s.store.s, s.store.i, s.store.r)
	s.metrics.observePeak(ev.Time, s.store.i)
	if s.trace != nil {
		s.trace.Record(trace.TransitionRecord{Time: ev.Time, Kind: kind, Node: int(ev.Source), Source: trace.SeededSource})
	}
	logrus.Debugf("[t=%.6f] %s node %d", ev.Time, kind, ev.Source)
}
