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

package queue_test

import (
	"testing"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/queue"
	"github.com/jetsetilly/microvaders/test"
)

type waker struct {
	woken int
}

func (w *waker) Wake() {
	w.woken++
}

func TestBadCapacity(t *testing.T) {
	_, err := queue.NewQueue[int](0)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, queue.BadCapacity))
}

func TestFIFO(t *testing.T) {
	q, err := queue.NewQueue[int](queue.DefaultCapacity)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.Cap(), 16)

	for i := 0; i < 10; i++ {
		test.ExpectSuccess(t, q.TrySend(i))
	}
	test.ExpectEquality(t, q.Len(), 10)

	for i := 0; i < 10; i++ {
		v, ok := q.TryReceive()
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, v, i)
	}

	_, ok := q.TryReceive()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, q.Len(), 0)
}

func TestFull(t *testing.T) {
	q, err := queue.NewQueue[int](4)
	test.DemandSuccess(t, err)

	for i := 0; i < 4; i++ {
		test.ExpectSuccess(t, q.TrySend(i))
	}

	// further sends are rejected and counted
	for i := 0; i < 3; i++ {
		test.ExpectFailure(t, q.TrySend(100+i))
	}
	test.ExpectEquality(t, q.Len(), 4)
	test.ExpectEquality(t, q.Dropped(), 3)

	// contents are unchanged by the rejected sends
	for i := 0; i < 4; i++ {
		v, ok := q.TryReceive()
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, v, i)
	}
}

func TestWrapAround(t *testing.T) {
	q, err := queue.NewQueue[int](3)
	test.DemandSuccess(t, err)

	// many times round the ring, with the ring never quite full
	next := 0
	for i := 0; i < 100; i++ {
		test.ExpectSuccess(t, q.TrySend(i*2))
		test.ExpectSuccess(t, q.TrySend(i*2+1))
		for j := 0; j < 2; j++ {
			v, ok := q.TryReceive()
			test.ExpectSuccess(t, ok)
			test.ExpectEquality(t, v, next)
			next++
		}
	}
	test.ExpectEquality(t, q.Dropped(), 0)
}

func TestReceiveWaker(t *testing.T) {
	q, err := queue.NewQueue[string](2)
	test.DemandSuccess(t, err)

	w := &waker{}

	// empty queue registers the waker
	_, ok := q.Receive(w)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, w.woken, 0)

	// a send wakes the waiting receiver, once
	test.ExpectSuccess(t, q.TrySend("a"))
	test.ExpectEquality(t, w.woken, 1)
	test.ExpectSuccess(t, q.TrySend("b"))
	test.ExpectEquality(t, w.woken, 1)

	v, ok := q.Receive(w)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "a")
	v, ok = q.Receive(w)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "b")

	// a rejected send does not wake
	_, ok = q.Receive(w)
	test.ExpectFailure(t, ok)
	test.ExpectSuccess(t, q.TrySend("c"))
	test.ExpectSuccess(t, q.TrySend("d"))
	test.ExpectFailure(t, q.TrySend("e"))
	test.ExpectEquality(t, w.woken, 2)
}

func TestSendNoAllocation(t *testing.T) {
	q, err := queue.NewQueue[int](queue.DefaultCapacity)
	test.DemandSuccess(t, err)

	allocs := testing.AllocsPerRun(100, func() {
		q.TrySend(1)
		q.TryReceive()
	})
	test.ExpectEquality(t, allocs, 0.0)
}

func TestReceiveNoAllocation(t *testing.T) {
	q, err := queue.NewQueue[int](queue.DefaultCapacity)
	test.DemandSuccess(t, err)

	w := &waker{}
	allocs := testing.AllocsPerRun(100, func() {
		q.Receive(w)
		q.TrySend(1)
		q.Receive(w)
	})
	test.ExpectEquality(t, allocs, 0.0)
	test.ExpectEquality(t, w.woken, 101)
}
