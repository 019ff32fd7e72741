package eventqueue

import (
	"errors"

	"github.com/ticklab/backsim/common"
)

// ErrQueueEmpty is returned when extracting from an empty queue. The
// driver treats it as the run-complete sentinel
var ErrQueueEmpty = errors.New("event queue is empty")

// Queue orders events by timestamp, then kind priority, then insertion
// sequence, so same-timestamp ties always resolve tick before signal
// before order before fill, and equal kinds keep arrival order
type Queue struct {
	items queueHeap
	seq   uint64
}

// item pairs an event with the monotonic sequence assigned on insert
type item struct {
	event common.Event
	seq   uint64
}

type queueHeap []*item
