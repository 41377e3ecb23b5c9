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

// Package timer implements the periodic timer peripheral of the emulated
// board.
//
// A started timer expires every period. On expiry the timer's interrupt flag
// is set and, if the interrupt has been enabled, the timer's line is signalled
// on the interrupt controller. The flag stays set until the handler calls
// Acknowledge(). The line is level triggered: a handler that returns without
// acknowledging is run again straight away.
//
// Expiry is driven by the board, which asks every timer for its next
// deadline, advances the clock to the earliest and then calls Expire() on each
// timer.
package timer

import (
	"fmt"
	"time"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware"
)

// Sentinel error patterns.
const (
	BadPeriod = "timer: %s: period must be positive (%v)"
)

// Clock is the time base used by the timer.
type Clock interface {
	Now() time.Duration
}

// Controller is the part of the interrupt controller used by the timer.
type Controller interface {
	Connect(irq firmware.IRQ, asserted func() bool)
	Signal(irq firmware.IRQ)
}

// Periodic is a periodic timer. It implements the firmware.Timer interface.
type Periodic struct {
	name string
	irq  firmware.IRQ
	ctl  Controller
	clk  Clock

	period   time.Duration
	deadline time.Duration
	running  bool

	enabled bool
	flag    bool

	// number of expiries and number of expiries that happened while the
	// flag from a previous expiry was still set
	expiries uint64
	overruns uint64
}

// NewPeriodic is the preferred method of initialisation for the Periodic
// type. The timer connects itself to the controller as the level source of
// its line.
func NewPeriodic(name string, irq firmware.IRQ, ctl Controller, clk Clock) *Periodic {
	t := &Periodic{
		name: name,
		irq:  irq,
		ctl:  ctl,
		clk:  clk,
	}
	ctl.Connect(irq, t.Asserted)
	return t
}

// Start implements the firmware.Timer interface. The first expiry is one
// period from now.
func (t *Periodic) Start(period time.Duration) error {
	if period <= 0 {
		return curated.Errorf(BadPeriod, t.name, period)
	}
	t.period = period
	t.deadline = t.clk.Now() + period
	t.running = true
	return nil
}

// Stop the timer. Any raised flag remains raised.
func (t *Periodic) Stop() {
	t.running = false
}

// EnableInterrupt implements the firmware.Timer interface.
func (t *Periodic) EnableInterrupt() {
	t.enabled = true
	if t.flag {
		t.ctl.Signal(t.irq)
	}
}

// Acknowledge implements the firmware.Timer interface.
func (t *Periodic) Acknowledge() {
	t.flag = false
}

// IRQ implements the firmware.Timer interface.
func (t *Periodic) IRQ() firmware.IRQ {
	return t.irq
}

// Asserted returns true if the timer is requesting an interrupt.
func (t *Periodic) Asserted() bool {
	return t.enabled && t.flag
}

// Deadline returns the time of the next expiry. The second return value is
// false if the timer is not running.
func (t *Periodic) Deadline() (time.Duration, bool) {
	return t.deadline, t.running
}

// Expire the timer if the deadline has been reached. Returns true if the
// timer expired.
//
// Expiries missed because the clock has moved more than a period past the
// deadline are counted as overruns and are not delivered individually.
func (t *Periodic) Expire(now time.Duration) bool {
	if !t.running || now < t.deadline {
		return false
	}

	missed := uint64((now - t.deadline) / t.period)
	t.deadline += time.Duration(missed+1) * t.period
	t.expiries++
	t.overruns += missed

	if t.flag {
		t.overruns++
	}
	t.flag = true

	if t.enabled {
		t.ctl.Signal(t.irq)
	}
	return true
}

// Period returns the period of the timer. Zero if the timer has never been
// started.
func (t *Periodic) Period() time.Duration {
	return t.period
}

// Expiries returns the number of times the timer has expired.
func (t *Periodic) Expiries() uint64 {
	return t.expiries
}

// Overruns returns the number of expiries that were missed or that happened
// while the previous expiry was still unacknowledged.
func (t *Periodic) Overruns() uint64 {
	return t.overruns
}

func (t *Periodic) String() string {
	return fmt.Sprintf("%s: period=%v next=%v flag=%v", t.name, t.period, t.deadline, t.flag)
}
