// ABOUTME: Bounded single-producer single-consumer command ring
// ABOUTME: Lock-free; the audio callback pops without ever waiting on the producer
package deck

import "sync/atomic"

// commandQueue is a bounded SPSC ring buffer. The control thread pushes,
// the audio callback pops. Head and tail are free-running counters; the
// atomic stores order the slot writes for the opposite side.
type commandQueue struct {
	buf  []Command
	mask uint64
	head atomic.Uint64 // next slot to pop, advanced by the consumer
	tail atomic.Uint64 // next slot to push, advanced by the producer
}

// newCommandQueue creates a queue holding at least capacity commands,
// rounded up to a power of two.
func newCommandQueue(capacity int) *commandQueue {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &commandQueue{
		buf:  make([]Command, size),
		mask: uint64(size - 1),
	}
}

// push appends a command; it returns false when the queue is full.
// Producer side only.
func (q *commandQueue) push(cmd Command) bool {
	tail := q.tail.Load()
	head := q.head.Load()
	if tail-head > q.mask {
		return false
	}
	q.buf[tail&q.mask] = cmd
	q.tail.Store(tail + 1)
	return true
}

// pop removes the oldest command; it returns false when the queue is empty.
// Consumer side only.
func (q *commandQueue) pop() (Command, bool) {
	head := q.head.Load()
	tail := q.tail.Load()
	if head == tail {
		return Command{}, false
	}
	cmd := q.buf[head&q.mask]
	q.head.Store(head + 1)
	return cmd, true
}

// pending returns the number of queued commands
func (q *commandQueue) pending() int {
	return int(q.tail.Load() - q.head.Load())
}
