package sim

import "container/heap"

// scheduledEvent pairs an Event with its insertion sequence number.
// The sequence number breaks ties between equal timestamps so that replays
// with the same seed pop events in an identical order. Ties occur with
// probability zero for continuous delay draws, so the tie-break is never
// observable in distribution; it only pins down the replay order.
type scheduledEvent struct {
	Event
	seq uint64
}

// eventQueue is a min-heap of pending events ordered by time, then by
// insertion sequence. Push and pop are O(log n).
type eventQueue struct {
	events  []scheduledEvent
	nextSeq uint64
}

// newEventQueue creates an empty queue with room for sizeHint events, so
// bulk pre-population at initialization avoids regrowth.
func newEventQueue(sizeHint int) *eventQueue {
	return &eventQueue{events: make([]scheduledEvent, 0, sizeHint)}
}

// Len implements heap.Interface.
func (q *eventQueue) Len() int { return len(q.events) }

// Less implements heap.Interface: time ascending, insertion order on ties.
func (q *eventQueue) Less(i, j int) bool {
	if q.events[i].Time != q.events[j].Time {
		return q.events[i].Time < q.events[j].Time
	}
	return q.events[i].seq < q.events[j].seq
}

// Swap implements heap.Interface.
func (q *eventQueue) Swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
}

// Push implements heap.Interface.
func (q *eventQueue) Push(x any) {
	q.events = append(q.events, x.(scheduledEvent))
}

// Pop implements heap.Interface.
func (q *eventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	q.events = old[:n-1]
	return item
}

// Schedule inserts an event.
func (q *eventQueue) Schedule(ev Event) {
	heap.Push(q, scheduledEvent{Event: ev, seq: q.nextSeq})
	q.nextSeq++
}

// PopNext removes and returns the earliest event. The second return value is
// false when the queue is exhausted, which is the normal termination
// condition of a run, not an error.
func (q *eventQueue) PopNext() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return heap.Pop(q).(scheduledEvent).Event, true
}
