package event

import (
	"sync/atomic"

	"github.com/lixenwraith/run-or-die/parameter"
)

// Queue is a lock-free MPSC ring buffer of events
// Push is safe from any goroutine; Consume belongs to the run loop
// When full, the oldest events are overwritten
type Queue struct {
	events    [parameter.EventQueueSize]Event
	published [parameter.EventQueueSize]atomic.Bool // slot fully written
	head      atomic.Uint64
	tail      atomic.Uint64
	dropped   atomic.Uint64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends e
func (q *Queue) Push(e Event) {
	for {
		tail := q.tail.Load()
		next := tail + 1
		if !q.tail.CompareAndSwap(tail, next) {
			continue
		}
		idx := tail & parameter.EventBufferMask
		q.events[idx] = e
		q.published[idx].Store(true)

		head := q.head.Load()
		if next-head > parameter.EventQueueSize {
			if q.head.CompareAndSwap(head, next-parameter.EventQueueSize) {
				q.dropped.Add(next - parameter.EventQueueSize - head)
			}
		}
		return
	}
}

// Consume returns pending events in FIFO order
func (q *Queue) Consume() []Event {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return nil
		}

		n := tail - head
		if n > parameter.EventQueueSize {
			n = parameter.EventQueueSize
			head = tail - parameter.EventQueueSize
		}

		out := make([]Event, 0, n)
		for i := uint64(0); i < n; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !q.published[idx].Load() {
				break
			}
			out = append(out, q.events[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate pending count
func (q *Queue) Len() int {
	head, tail := q.head.Load(), q.tail.Load()
	if tail <= head {
		return 0
	}
	if d := tail - head; d < parameter.EventQueueSize {
		return int(d)
	}
	return parameter.EventQueueSize
}

// Dropped returns how many events were overwritten before being consumed
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
