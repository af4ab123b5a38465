// Package timeheap implements the fixed-capacity timestamp min-heap that
// backs the waitlist scheduler: a binary heap keyed by timestamp whose Pop
// re-keys the root to a new timestamp and sifts it back down, rather than
// removing it. The heap's size never shrinks after construction.
package timeheap

import "fmt"

// node pairs a scheduling timestamp with the value (an instruction id)
// that becomes eligible at that time.
type node struct {
	timestamp int64
	value     string
}

// Heap is a fixed-capacity binary min-heap ordered by timestamp.
type Heap struct {
	nodes []node
}

// New returns an empty heap with room for capacity entries. Push panics
// past capacity; the waitlist scheduler sizes the heap to exactly the
// number of members it owns, so this is never exercised in practice.
func New(capacity int) *Heap {
	return &Heap{nodes: make([]node, 0, capacity)}
}

// Len reports how many entries are currently in the heap.
func (h *Heap) Len() int {
	return len(h.nodes)
}

// Push inserts value keyed at timestamp and restores heap order.
func (h *Heap) Push(timestamp int64, value string) {
	if len(h.nodes) == cap(h.nodes) {
		panic(fmt.Sprintf("timeheap: push past capacity %d", cap(h.nodes)))
	}
	h.nodes = append(h.nodes, node{timestamp: timestamp, value: value})
	h.bubbleUp(len(h.nodes) - 1)
}

// CanPop reports whether the root entry is eligible to fire at now: the
// entry's timestamp has already arrived. This uses >=, matching the
// documented invariant rather than the archived reference implementation's
// off-by-one <= comparison.
func (h *Heap) CanPop(now int64) bool {
	if len(h.nodes) == 0 {
		return false
	}
	return now >= h.nodes[0].timestamp
}

// Pop returns the root's value and re-keys the root to newTimestamp,
// sifting it back down to its new position. The heap's size is unchanged:
// every member that was ever pushed stays in the heap forever, just
// continually rescheduled.
func (h *Heap) Pop(newTimestamp int64) string {
	if len(h.nodes) == 0 {
		panic("timeheap: pop from empty heap")
	}
	value := h.nodes[0].value
	h.nodes[0].timestamp = newTimestamp
	h.bubbleDown(0)
	return value
}

// PeekValue returns the root's value without modifying the heap.
func (h *Heap) PeekValue() (string, bool) {
	if len(h.nodes) == 0 {
		return "", false
	}
	return h.nodes[0].value, true
}

func (h *Heap) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.nodes[parent].timestamp <= h.nodes[i].timestamp {
			break
		}
		h.nodes[parent], h.nodes[i] = h.nodes[i], h.nodes[parent]
		i = parent
	}
}

func (h *Heap) bubbleDown(i int) {
	n := len(h.nodes)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.nodes[left].timestamp < h.nodes[smallest].timestamp {
			smallest = left
		}
		if right < n && h.nodes[right].timestamp < h.nodes[smallest].timestamp {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.nodes[smallest], h.nodes[i] = h.nodes[i], h.nodes[smallest]
		i = smallest
	}
}
