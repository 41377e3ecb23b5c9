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
	"time"

	"github.com/jetsetilly/microvaders/firmware/display"
	"github.com/jetsetilly/microvaders/firmware/input"
)

// IRQ identifies an interrupt line.
type IRQ int

// Timer is a periodic timer peripheral. A timer raises its interrupt line
// every period once the interrupt has been enabled. The handler must call
// Acknowledge() or the interrupt is raised again as soon as the handler
// returns.
type Timer interface {
	Start(period time.Duration) error
	EnableInterrupt()
	Acknowledge()
	IRQ() IRQ
}

// OutputLine is a digital output line.
type OutputLine interface {
	SetHigh()
	SetLow()
	IsHigh() bool
}

// InputLine is a digital input line.
type InputLine interface {
	ReadLevel() bool
}

// Interrupts is the interrupt controller.
type Interrupts interface {
	// Bind a handler to an interrupt line at the given priority. The line
	// is enabled in the controller. Priority must be above zero.
	Bind(irq IRQ, priority int, handler func()) error

	// Pend marks the line as pending. The handler runs as soon as the
	// priority of the line is above the current running priority and the
	// masking threshold.
	Pend(irq IRQ)

	// RaiseThreshold raises the masking threshold to ceiling and returns
	// the previous threshold. Lines at or below the threshold are held
	// pending.
	RaiseThreshold(ceiling int) (previous int)

	// RestoreThreshold sets the masking threshold to a value returned by
	// RaiseThreshold() and runs any pending handlers that are no longer
	// masked.
	RestoreThreshold(previous int)

	// Priority returns the priority of the running context. Zero is the
	// idle loop.
	Priority() int
}

// Trace is the diagnostic output of the firmware. Emit() is best-effort and
// is never called from the display handler.
type Trace interface {
	Emit(message string)
}

// Peripherals used by the firmware.
type Peripherals struct {
	DisplayTimer  Timer
	DebounceTimer Timer
	PhysicsTimer  Timer

	Rows    [display.Rows]OutputLine
	Columns [display.Columns]OutputLine

	Buttons [input.NumButtons]InputLine

	Interrupts Interrupts
	Trace      Trace
}

// nopTrace is used when Peripherals.Trace is nil.
type nopTrace struct{}

func (nopTrace) Emit(string) {}
