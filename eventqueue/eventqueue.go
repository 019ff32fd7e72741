package eventqueue

import (
	"container/heap"

	"github.com/ticklab/backsim/common"
)

// New returns an empty queue ready for use
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.items)
	return q
}

// Insert adds an event to the queue in O(log n), stamping it with the next
// insertion sequence
func (q *Queue) Insert(ev common.Event) error {
	if ev == nil {
		return common.ErrNilEvent
	}
	q.seq++
	heap.Push(&q.items, &item{event: ev, seq: q.seq})
	return nil
}

// ExtractMin removes and returns the event with the smallest
// (timestamp, kind, sequence) key, or ErrQueueEmpty
func (q *Queue) ExtractMin() (common.Event, error) {
	if q.items.Len() == 0 {
		return nil, ErrQueueEmpty
	}
	i, ok := heap.Pop(&q.items).(*item)
	if !ok {
		return nil, common.ErrNilEvent
	}
	return i.event, nil
}

// IsEmpty returns whether any events remain, in O(1)
func (q *Queue) IsEmpty() bool {
	return q.items.Len() == 0
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	return q.items.Len()
}

// Reset drops all pending events and restarts the sequence counter
func (q *Queue) Reset() {
	q.items = q.items[:0]
	q.seq = 0
}

func (h queueHeap) Len() int {
	return len(h)
}

func (h queueHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.event.GetTimestamp() != b.event.GetTimestamp() {
		return a.event.GetTimestamp() < b.event.GetTimestamp()
	}
	if a.event.GetKind() != b.event.GetKind() {
		return a.event.GetKind() < b.event.GetKind()
	}
	return a.seq < b.seq
}

func (h queueHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *queueHeap) Push(x interface{}) {
	entry, ok := x.(*item)
	if !ok {
		return
	}
	*h = append(*h, entry)
}

func (h *queueHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}
