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

package firmware

import (
	"github.com/jetsetilly/microvaders/curated"
)

// LockAboveCeiling is the sentinel error pattern for a Resource locked from a
// context with a priority above the resource's ceiling.
const LockAboveCeiling = "firmware: lock from priority %d above ceiling %d"

// Resource is a value shared between contexts of different priority.
//
// Access is by priority ceiling. Lock() raises the masking threshold of the
// interrupt controller to the ceiling for the duration of the closure, so no
// other user of the resource can run. Interrupts above the ceiling still
// preempt. The closure must be short and must not suspend.
type Resource[T any] struct {
	intr    Interrupts
	ceiling int
	v       T
}

// NewResource is the preferred method of initialisation for the Resource
// type.
func NewResource[T any](intr Interrupts, ceiling int, v T) *Resource[T] {
	return &Resource[T]{
		intr:    intr,
		ceiling: ceiling,
		v:       v,
	}
}

// Lock runs f with exclusive access to the value. A context already running
// at the ceiling runs f directly.
func (r *Resource[T]) Lock(f func(*T)) {
	p := r.intr.Priority()
	if p > r.ceiling {
		panic(curated.Errorf(LockAboveCeiling, p, r.ceiling))
	}
	if p == r.ceiling {
		f(&r.v)
		return
	}

	prev := r.intr.RaiseThreshold(r.ceiling)
	defer r.intr.RestoreThreshold(prev)
	f(&r.v)
}

// Ceiling returns the ceiling priority of the resource.
func (r *Resource[T]) Ceiling() int {
	return r.ceiling
}
