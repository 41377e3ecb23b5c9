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

// Package nvic emulates a nested vectored interrupt controller.
//
// Each interrupt line has a handler and a priority. A pending line runs when
// its priority is above both the priority of the running context and the
// masking threshold. Handlers are run to completion on the caller's
// goroutine. A higher priority line that becomes pending while a handler is
// running preempts it immediately.
//
// Lines connected to a level source (see Connect()) are level triggered. If
// the source is still asserted when the handler returns, the line is pended
// again. A line that re-enters StormLimit times in a row without its source
// being cleared is an interrupt storm and is fatal.
//
// The controller is not safe for use by more than one goroutine.
package nvic

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware"
)

// Limits of the controller.
const (
	NumLines    = 32
	MaxPriority = 7
	StormLimit  = 1000
)

// Sentinel error patterns.
const (
	BadLine        = "nvic: no such interrupt line (%d)"
	BadPriority    = "nvic: priority %d for line %d must be between 1 and %d"
	AlreadyBound   = "nvic: line %d already has a handler"
	InterruptStorm = "nvic: interrupt storm on line %d (%d re-entries without acknowledgement)"
)

type line struct {
	handler  func()
	priority int
	enabled  bool
	pending  bool

	// level source. nil for edge triggered lines
	asserted func() bool

	// consecutive re-entries caused by the level source
	refires int

	// number of times the handler has run
	count uint64
}

// Controller is the emulated interrupt controller.
type Controller struct {
	lines [NumLines]line

	// the priority of the running context. zero is the idle loop
	current int

	// lines at or below the threshold are masked
	threshold int

	// deepest nesting of handlers seen
	depth    int
	maxDepth int
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) line(irq firmware.IRQ) *line {
	if irq < 0 || int(irq) >= NumLines {
		panic(curated.Errorf(BadLine, irq))
	}
	return &c.lines[irq]
}

// Connect a level source to a line. The line is re-pended whenever its
// handler returns with the source still asserted.
func (c *Controller) Connect(irq firmware.IRQ, asserted func() bool) {
	c.line(irq).asserted = asserted
}

// Bind implements the firmware.Interrupts interface.
func (c *Controller) Bind(irq firmware.IRQ, priority int, handler func()) error {
	if irq < 0 || int(irq) >= NumLines {
		return curated.Errorf(BadLine, irq)
	}
	if priority < 1 || priority > MaxPriority {
		return curated.Errorf(BadPriority, priority, irq, MaxPriority)
	}
	l := &c.lines[irq]
	if l.handler != nil {
		return curated.Errorf(AlreadyBound, irq)
	}
	l.handler = handler
	l.priority = priority
	l.enabled = true
	return nil
}

// Pend implements the firmware.Interrupts interface.
func (c *Controller) Pend(irq firmware.IRQ) {
	c.line(irq).pending = true
	c.Dispatch()
}

// Signal is used by peripherals to raise a line. It is the same as Pend().
func (c *Controller) Signal(irq firmware.IRQ) {
	c.Pend(irq)
}

// RaiseThreshold implements the firmware.Interrupts interface.
func (c *Controller) RaiseThreshold(ceiling int) int {
	prev := c.threshold
	if ceiling > c.threshold {
		c.threshold = ceiling
	}
	return prev
}

// RestoreThreshold implements the firmware.Interrupts interface.
func (c *Controller) RestoreThreshold(previous int) {
	c.threshold = previous
	c.Dispatch()
}

// Priority implements the firmware.Interrupts interface.
func (c *Controller) Priority() int {
	return c.current
}

// Threshold returns the current masking threshold.
func (c *Controller) Threshold() int {
	return c.threshold
}

// next returns the highest priority pending line that can run. Lines of
// equal priority are taken lowest number first.
func (c *Controller) next() (int, bool) {
	best := -1
	floor := max(c.current, c.threshold)
	for i := range c.lines {
		l := &c.lines[i]
		if l.pending && l.enabled && l.handler != nil && l.priority > floor {
			if best == -1 || l.priority > c.lines[best].priority {
				best = i
			}
		}
	}
	return best, best != -1
}

// Dispatch runs pending handlers that are not masked, highest priority first,
// until none remain.
func (c *Controller) Dispatch() {
	for {
		irq, ok := c.next()
		if !ok {
			return
		}
		c.run(irq)
	}
}

func (c *Controller) run(irq int) {
	l := &c.lines[irq]
	l.pending = false

	prev := c.current
	c.current = l.priority
	c.depth++
	c.maxDepth = max(c.maxDepth, c.depth)

	l.handler()
	l.count++

	c.depth--
	c.current = prev

	if l.asserted != nil && l.asserted() {
		l.refires++
		if l.refires >= StormLimit {
			panic(curated.Errorf(InterruptStorm, irq, l.refires))
		}
		l.pending = true
	} else {
		l.refires = 0
	}
}

// Pending returns true if the line is pending.
func (c *Controller) Pending(irq firmware.IRQ) bool {
	return c.line(irq).pending
}

// Count returns the number of times the handler for a line has run.
func (c *Controller) Count(irq firmware.IRQ) uint64 {
	return c.line(irq).count
}

// MaxDepth returns the deepest nesting of handlers seen.
func (c *Controller) MaxDepth() int {
	return c.maxDepth
}

func (c *Controller) String() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("running=%d threshold=%d", c.current, c.threshold))
	for i := range c.lines {
		l := &c.lines[i]
		if l.handler == nil {
			continue
		}
		s.WriteString(fmt.Sprintf(" [%d: p%d n%d", i, l.priority, l.count))
		if l.pending {
			s.WriteString(" pending")
		}
		s.WriteString("]")
	}
	return s.String()
}
