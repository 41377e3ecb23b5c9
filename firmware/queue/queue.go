// This file is part of Microvaders.
//
// Microvaders is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Microvaders is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Microvaders.  If not, see <https://www.gnu.org/licenses/>.

// Package queue is a bounded hand-off from an interrupt handler to a
// cooperative task.
//
// The queue is a fixed ring with a single producer and a single consumer.
// The producer never blocks and never allocates: when the ring is full the
// new value is dropped and counted. The consumer either takes the oldest
// value or registers a Waker that the producer calls on its next successful
// send.
package queue

import (
	"sync/atomic"

	"github.com/jetsetilly/microvaders/curated"
)

// DefaultCapacity is the capacity of the event queue on the reference device.
const DefaultCapacity = 16

// Sentinel error patterns.
const (
	BadCapacity    = "queue: capacity must be positive (%d)"
	MultipleReader = "queue: corrupted by concurrent receive"
)

// Waker is notified when a value becomes available to a suspended receiver.
// Wake must be safe to call from an interrupt handler.
type Waker interface {
	Wake()
}

type wakerSlot struct {
	w Waker
}

// Queue is a bounded single-producer single-consumer FIFO.
type Queue[T any] struct {
	ring []T

	// head and tail run from zero to twice the capacity. the two ranges
	// distinguish a full ring from an empty one
	head atomic.Uint32 // owned by consumer
	tail atomic.Uint32 // owned by producer

	// registered waker. slots alternate between registrations so that a
	// registration never writes the slot the producer last took
	waker   atomic.Pointer[wakerSlot]
	slots   [2]wakerSlot
	next    int // owned by consumer
	dropped atomic.Uint32
}

// NewQueue is the preferred method of initialisation for the Queue type. The
// ring is allocated once, here.
func NewQueue[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, curated.Errorf(BadCapacity, capacity)
	}
	return &Queue[T]{
		ring: make([]T, capacity),
	}, nil
}

func (q *Queue[T]) wrap() uint32 {
	return uint32(len(q.ring)) * 2
}

func (q *Queue[T]) count(head, tail uint32) uint32 {
	return (tail + q.wrap() - head) % q.wrap()
}

// TrySend adds a value to the back of the queue. Returns false if the queue
// is full, in which case the value is dropped and the contents of the queue
// are unchanged.
func (q *Queue[T]) TrySend(v T) bool {
	head := q.head.Load()
	tail := q.tail.Load()

	if q.count(head, tail) == uint32(len(q.ring)) {
		q.dropped.Add(1)
		return false
	}

	q.ring[tail%uint32(len(q.ring))] = v
	q.tail.Store((tail + 1) % q.wrap())

	if s := q.waker.Swap(nil); s != nil {
		s.w.Wake()
	}

	return true
}

// TryReceive removes the oldest value from the queue. Returns false if the
// queue is empty.
func (q *Queue[T]) TryReceive() (T, bool) {
	var v T

	head := q.head.Load()
	tail := q.tail.Load()
	if head == tail {
		return v, false
	}

	idx := head % uint32(len(q.ring))
	v = q.ring[idx]

	// zero the slot so the ring holds no hidden references
	var zero T
	q.ring[idx] = zero

	if !q.head.CompareAndSwap(head, (head+1)%q.wrap()) {
		panic(curated.Errorf(MultipleReader))
	}

	return v, true
}

// Receive removes the oldest value from the queue. If the queue is empty the
// waker is registered and Receive returns false. The waker is called by the
// next successful TrySend(), after which Receive should be called again.
//
// A second call to Receive() before the waker has been called replaces the
// registered waker.
func (q *Queue[T]) Receive(w Waker) (T, bool) {
	if v, ok := q.TryReceive(); ok {
		return v, true
	}

	s := &q.slots[q.next]
	s.w = w
	q.next ^= 1
	q.waker.Store(s)

	// a value may have arrived between the failed receive and the waker
	// being registered
	if v, ok := q.TryReceive(); ok {
		q.waker.Store(nil)
		return v, true
	}

	return *new(T), false
}

// Len returns the number of values in the queue.
func (q *Queue[T]) Len() int {
	return int(q.count(q.head.Load(), q.tail.Load()))
}

// Cap returns the capacity of the queue.
func (q *Queue[T]) Cap() int {
	return len(q.ring)
}

// Dropped returns the number of values dropped because the queue was full.
func (q *Queue[T]) Dropped() int {
	return int(q.dropped.Load())
}
