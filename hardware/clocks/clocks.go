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

// Package clocks is the time base of the emulated board. Time is virtual: it
// advances only when the board says so, in whole nanoseconds, and is measured
// from power on.
package clocks

import (
	"fmt"
	"time"

	"github.com/jetsetilly/microvaders/curated"
)

// Backwards is the sentinel error pattern for an attempt to move the clock
// into the past.
const Backwards = "clocks: cannot move backwards from %v to %v"

// Clock is the virtual time of the board. The zero value is power on.
type Clock struct {
	now time.Duration
}

// Now returns the virtual time since power on.
func (c *Clock) Now() time.Duration {
	return c.now
}

// AdvanceTo moves the clock forward to t. Moving the clock backwards is an
// invariant violation and panics.
func (c *Clock) AdvanceTo(t time.Duration) {
	if t < c.now {
		panic(curated.Errorf(Backwards, c.now, t))
	}
	c.now = t
}

// Reset the clock to power on.
func (c *Clock) Reset() {
	c.now = 0
}

func (c *Clock) String() string {
	return Format(c.now)
}

// Format a virtual time as seconds with microsecond precision.
func Format(t time.Duration) string {
	return fmt.Sprintf("%d.%06ds", t/time.Second, (t%time.Second)/time.Microsecond)
}
