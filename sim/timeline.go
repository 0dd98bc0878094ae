package sim

import "container/heap"

// timelineEntry is an event plus its merge position.
type timelineEntry struct {
	event Event
	batch uint64 // merge call that inserted the event
	index int    // position within that batch
}

// Timeline is the global event sequence ordered by timestamp.
// Ordering: timestamp (lower first) → merge batch (newer first) → position in batch.
// A newly merged batch is drained before older events at the same timestamp.
type Timeline struct {
	entries   []timelineEntry
	nextBatch uint64
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	t := &Timeline{
		entries: make([]timelineEntry, 0),
	}
	heap.Init(t)
	return t
}

// Len implements heap.Interface
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Less implements heap.Interface with deterministic ordering
func (t *Timeline) Less(i, j int) bool {
	ei, ej := t.entries[i], t.entries[j]
	if ei.event.Timestamp() != ej.event.Timestamp() {
		return ei.event.Timestamp() < ej.event.Timestamp()
	}
	if ei.batch != ej.batch {
		return ei.batch > ej.batch
	}
	return ei.index < ej.index
}

// Swap implements heap.Interface
func (t *Timeline) Swap(i, j int) {
	t.entries[i], t.entries[j] = t.entries[j], t.entries[i]
}

// Push implements heap.Interface
func (t *Timeline) Push(x any) {
	t.entries = append(t.entries, x.(timelineEntry))
}

// Pop implements heap.Interface
func (t *Timeline) Pop() any {
	old := t.entries
	n := len(old)
	item := old[n-1]
	t.entries = old[0 : n-1]
	return item
}

// Merge inserts a batch of events. Events of one batch keep their relative order.
func (t *Timeline) Merge(events ...Event) {
	if len(events) == 0 {
		return
	}
	batch := t.nextBatch
	t.nextBatch++
	for i, ev := range events {
		heap.Push(t, timelineEntry{event: ev, batch: batch, index: i})
	}
}

// PopNext removes and returns the next event
func (t *Timeline) PopNext() Event {
	if t.Len() == 0 {
		return nil
	}
	return heap.Pop(t).(timelineEntry).event
}

// Peek returns the next event without removing it
func (t *Timeline) Peek() Event {
	if t.Len() == 0 {
		return nil
	}
	return t.entries[0].event
}
