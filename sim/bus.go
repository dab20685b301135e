// Implements the MessageBus, a time-indexed priority queue holding all
// messages scheduled for future delivery. Messages are ordered by
// (DeliveryTick, insertion sequence); draining pops every due message in
// that order, via container/heap over a (timestamp, seq) key.

package sim

import "container/heap"

// busEntry pairs a Message with the monotonically increasing sequence
// number assigned when it was scheduled, giving a deterministic FIFO
// tie-break for same-tick deliveries.
type busEntry struct {
	msg Message
	seq uint64
}

// messageHeap implements heap.Interface over busEntry, min-ordered by
// (DeliveryTick, seq).
type messageHeap []busEntry

func (h messageHeap) Len() int { return len(h) }

func (h messageHeap) Less(i, j int) bool {
	if h[i].msg.DeliveryTick != h[j].msg.DeliveryTick {
		return h[i].msg.DeliveryTick < h[j].msg.DeliveryTick
	}
	return h[i].seq < h[j].seq
}

func (h messageHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *messageHeap) Push(x any) {
	*h = append(*h, x.(busEntry))
}

func (h *messageHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// MessageBus is a multiset of Messages ordered by (DeliveryTick, insertion
// sequence). No messages are ever dropped; there is no capacity bound.
type MessageBus struct {
	heap   messageHeap
	nextSeq uint64
}

// NewMessageBus returns an empty bus ready for scheduling.
func NewMessageBus() *MessageBus {
	b := &MessageBus{heap: make(messageHeap, 0)}
	heap.Init(&b.heap)
	return b
}

// Schedule inserts msg. The caller is responsible for ensuring
// msg.DeliveryTick is at or after the current clock; the bus itself does
// not enforce this (the contract lives in World.applyCommands).
func (b *MessageBus) Schedule(msg Message) {
	heap.Push(&b.heap, busEntry{msg: msg, seq: b.nextSeq})
	b.nextSeq++
}

// DrainDue pops and returns, in non-decreasing DeliveryTick order with FIFO
// ties, every message whose DeliveryTick is ≤ now. After it returns, no
// element with DeliveryTick ≤ now remains in the bus.
func (b *MessageBus) DrainDue(now Tick) []Message {
	due := make([]Message, 0)
	for b.heap.Len() > 0 && b.heap[0].msg.DeliveryTick <= now {
		entry := heap.Pop(&b.heap).(busEntry)
		due = append(due, entry.msg)
	}
	return due
}

// PendingCount returns the number of messages currently scheduled.
func (b *MessageBus) PendingCount() int {
	return b.heap.Len()
}

// IterAll returns every pending message in heap-pop order, without
// mutating the bus. Used for snapshotting.
func (b *MessageBus) IterAll() []Message {
	cp := make(messageHeap, len(b.heap))
	copy(cp, b.heap)
	out := make([]Message, 0, len(cp))
	for cp.Len() > 0 {
		entry := heap.Pop(&cp).(busEntry)
		out = append(out, entry.msg)
	}
	return out
}
