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

// Package limiter paces the emulation against the wall clock. The board runs
// in slices of virtual time and waits on the limiter between slices.
package limiter

import (
	"sync/atomic"
	"time"
)

// Limiter produces a regular tick at the requested rate. The tick period is
// adjusted continually to compensate for drift in the sleep.
type Limiter struct {
	// period between ticks in nanoseconds
	period atomic.Int64

	tick chan bool
	quit chan bool
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The rate is the number of ticks per second.
func NewLimiter(rate int) *Limiter {
	lim := &Limiter{
		tick: make(chan bool),
		quit: make(chan bool),
	}
	lim.SetLimit(rate)

	// run ticker concurrently
	go func() {
		period := time.Duration(lim.period.Load())
		adjusted := period
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.quit:
				return
			}

			time.Sleep(adjusted)

			nt := time.Now()
			period = time.Duration(lim.period.Load())
			adjusted -= nt.Sub(t) - period

			// prevent a long stall (eg. the process being suspended) from
			// producing a burst of ticks
			if adjusted < 0 || adjusted > period*2 {
				adjusted = period
			}
			t = nt
		}
	}()

	return lim
}

// SetLimit changes the number of ticks per second. A rate of zero or less is
// treated as one tick per second.
func (lim *Limiter) SetLimit(rate int) {
	if rate <= 0 {
		rate = 1
	}
	lim.period.Store(int64(time.Second) / int64(rate))
}

// Period returns the time between ticks.
func (lim *Limiter) Period() time.Duration {
	return time.Duration(lim.period.Load())
}

// Wait until the next tick.
func (lim *Limiter) Wait() {
	<-lim.tick
}

// HasWaited returns true if a tick was ready. It never blocks.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// End stops the ticker. The Limiter should not be used after End() has been
// called.
func (lim *Limiter) End() {
	close(lim.quit)
}
