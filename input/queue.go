package input

import "sync/atomic"

type noteEvent struct {
	note uint8
	on   bool
}

// noteQueue is a lock-free spsc queue of note events.
type noteQueue struct {
	events      []noteEvent
	read, write atomic.Uint32
}

func newNoteQueue(size int) *noteQueue {
	if size <= 0 || size&(size-1) != 0 {
		panic("note queue size must be a power of 2")
	}
	return &noteQueue{events: make([]noteEvent, size)}
}

// push adds ev unless the queue is full and reports whether it was added.
func (q *noteQueue) push(ev noteEvent) bool {
	write := q.write.Load()
	if write-q.read.Load() == uint32(len(q.events)) {
		return false
	}
	q.events[write%uint32(len(q.events))] = ev
	q.write.Store(write + 1)
	return true
}

// drain calls f for every queued event in order.
func (q *noteQueue) drain(f func(noteEvent)) {
	read := q.read.Load()
	write := q.write.Load()
	for ; read != write; read++ {
		f(q.events[read%uint32(len(q.events))])
	}
	q.read.Store(read)
}
