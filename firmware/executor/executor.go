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

// Package executor runs cooperative tasks from the idle loop of the device.
//
// A task is polled until it reports that it is Ready (finished). A task that
// cannot make progress returns Pending after arranging for its Waker to be
// called. The task is not polled again until the Waker has been called.
// Wakers may be called from interrupt handlers.
//
// Tasks never run concurrently with each other. Suspension points are the
// returns from Poll().
package executor

import (
	"fmt"
	"sync/atomic"

	"github.com/jetsetilly/microvaders/curated"
)

// MaxTasks is the maximum number of tasks that can be spawned on an
// executor.
const MaxTasks = 64

// Sentinel error patterns.
const (
	TooManyTasks = "executor: too many tasks (max %d)"
	TaskPanic    = "executor: task %s: %v"
)

// Poll is the result of polling a task.
type Poll int

// List of valid Poll values.
const (
	Pending Poll = iota
	Ready
)

func (p Poll) String() string {
	if p == Ready {
		return "ready"
	}
	return "pending"
}

// Task is a unit of cooperative work.
type Task interface {
	Poll(w *Waker) Poll
}

// TaskFunc is an adapter to allow a function to be used as a Task.
type TaskFunc func(w *Waker) Poll

// Poll implements the Task interface.
func (f TaskFunc) Poll(w *Waker) Poll {
	return f(w)
}

// Waker marks a task as ready to be polled. A Waker is created once for each
// task and calling Wake() never allocates.
type Waker struct {
	ex  *Executor
	bit uint64
}

// Wake implements the queue.Waker interface.
func (w *Waker) Wake() {
	for {
		old := w.ex.ready.Load()
		if old&w.bit == w.bit {
			return
		}
		if w.ex.ready.CompareAndSwap(old, old|w.bit) {
			return
		}
	}
}

type entry struct {
	name  string
	task  Task
	waker Waker
	done  bool
}

// Executor polls tasks that have been woken.
type Executor struct {
	tasks []*entry

	// one bit per task. set by a Waker, cleared when the task is polled
	ready atomic.Uint64

	// number of times a task has been polled
	polls uint64
}

// NewExecutor is the preferred method of initialisation for the Executor
// type.
func NewExecutor() *Executor {
	return &Executor{
		tasks: make([]*entry, 0, MaxTasks),
	}
}

// Spawn adds a task to the executor. A newly spawned task is ready to be
// polled.
func (ex *Executor) Spawn(name string, t Task) error {
	if len(ex.tasks) >= MaxTasks {
		return curated.Errorf(TooManyTasks, MaxTasks)
	}

	e := &entry{
		name: name,
		task: t,
	}
	e.waker = Waker{ex: ex, bit: 1 << uint(len(ex.tasks))}
	ex.tasks = append(ex.tasks, e)
	e.waker.Wake()

	return nil
}

// RunReady polls every task that has been woken, once, in the order they
// were spawned. Returns the number of tasks polled.
//
// A panic in a task is re-raised as a curated error naming the task.
func (ex *Executor) RunReady() int {
	ready := ex.ready.Swap(0)
	if ready == 0 {
		return 0
	}

	n := 0
	for _, e := range ex.tasks {
		if ready&e.waker.bit == 0 || e.done {
			continue
		}
		n++
		ex.polls++
		if ex.poll(e) == Ready {
			e.done = true
		}
	}

	return n
}

func (ex *Executor) poll(e *entry) (p Poll) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok && curated.IsAny(err) {
				panic(curated.Errorf(TaskPanic, e.name, err))
			}
			panic(curated.Errorf(TaskPanic, e.name, fmt.Errorf("%v", r)))
		}
	}()
	return e.task.Poll(&e.waker)
}

// RunUntilIdle polls ready tasks until no task is ready. Tasks that wake
// themselves are polled again.
func (ex *Executor) RunUntilIdle() {
	for ex.RunReady() > 0 {
	}
}

// Idle returns true if no task is waiting to be polled.
func (ex *Executor) Idle() bool {
	return ex.ready.Load() == 0
}

// Len returns the number of tasks that have not finished.
func (ex *Executor) Len() int {
	n := 0
	for _, e := range ex.tasks {
		if !e.done {
			n++
		}
	}
	return n
}

// Polls returns the number of times any task has been polled.
func (ex *Executor) Polls() uint64 {
	return ex.polls
}

func (ex *Executor) String() string {
	return fmt.Sprintf("%d tasks, %d polls", ex.Len(), ex.polls)
}
