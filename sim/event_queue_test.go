package sim

import (
	"math/rand"
	"sort"
	"testing"
)

// TestEventQueue_TimeOrdering tests that events pop in time order regardless
// of insertion order
func TestEventQueue_TimeOrdering(t *testing.T) {
	q := newEventQueue(4)

	q.Schedule(Event{Time: 1.5, Kind: EventRecovery, Source: 0})
	q.Schedule(Event{Time: 0.5, Kind: EventTransmission, Source: 0, Target: 1})
	q.Schedule(Event{Time: 1.0, Kind: EventTransmission, Source: 0, Target: 2})

	want := []float64{0.5, 1.0, 1.5}
	for i, wt := range want {
		ev, ok := q.PopNext()
		if !ok {
			t.Fatalf("queue exhausted after %d pops, want %d events", i, len(want))
		}
		if ev.Time != wt {
			t.Errorf("pop %d: time = %g, want %g", i, ev.Time, wt)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty, len = %d", q.Len())
	}
}

// TestEventQueue_InsertionOrderOnTies tests that equal-time events pop in
// insertion order
func TestEventQueue_InsertionOrderOnTies(t *testing.T) {
	q := newEventQueue(4)

	// All at the same time; targets encode insertion order.
	for i := 0; i < 5; i++ {
		q.Schedule(Event{Time: 2.0, Kind: EventTransmission, Source: 9, Target: NodeID(i)})
	}

	for i := 0; i < 5; i++ {
		ev, _ := q.PopNext()
		if ev.Target != NodeID(i) {
			t.Errorf("pop %d: target = %d, want %d (insertion order)", i, ev.Target, i)
		}
	}
}

// TestEventQueue_ExhaustionIsNotAnError tests that popping an empty queue
// reports exhaustion via the boolean, not a panic
func TestEventQueue_ExhaustionIsNotAnError(t *testing.T) {
	q := newEventQueue(0)
	if _, ok := q.PopNext(); ok {
		t.Error("empty queue reported an event")
	}

	q.Schedule(Event{Time: 1.0, Kind: EventRecovery, Source: 3})
	q.PopNext()
	if _, ok := q.PopNext(); ok {
		t.Error("drained queue reported an event")
	}
}

// TestEventQueue_RandomizedOrdering cross-checks the heap against a sort on
// a few hundred random timestamps
func TestEventQueue_RandomizedOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	q := newEventQueue(0)

	times := make([]float64, 500)
	for i := range times {
		times[i] = rng.Float64() * 100
		q.Schedule(Event{Time: times[i], Kind: EventTransmission})
	}
	sort.Float64s(times)

	for i, wt := range times {
		ev, ok := q.PopNext()
		if !ok {
			t.Fatalf("queue exhausted after %d pops", i)
		}
		if ev.Time != wt {
			t.Fatalf("pop %d: time = %g, want %g", i, ev.Time, wt)
		}
	}
}
