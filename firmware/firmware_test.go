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

package firmware_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware"
	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/firmware/input"
	"github.com/jetsetilly/microvaders/test"
)

// intr is a minimal interrupt controller. Pended lines run immediately if
// they are above the running priority and the threshold.
type intr struct {
	handlers  map[firmware.IRQ]func()
	priority  map[firmware.IRQ]int
	pending   map[firmware.IRQ]bool
	current   int
	threshold int
}

func newIntr() *intr {
	return &intr{
		handlers: make(map[firmware.IRQ]func()),
		priority: make(map[firmware.IRQ]int),
		pending:  make(map[firmware.IRQ]bool),
	}
}

func (c *intr) Bind(irq firmware.IRQ, priority int, handler func()) error {
	if priority < 1 {
		return fmt.Errorf("bad priority")
	}
	c.handlers[irq] = handler
	c.priority[irq] = priority
	return nil
}

func (c *intr) Pend(irq firmware.IRQ) {
	c.pending[irq] = true
	c.dispatch()
}

func (c *intr) dispatch() {
	for {
		run := firmware.IRQ(-1)
		best := max(c.current, c.threshold)
		for irq := range c.pending {
			if c.priority[irq] > best {
				run = irq
				best = c.priority[irq]
			}
		}
		if run == -1 {
			return
		}
		delete(c.pending, run)
		prev := c.current
		c.current = c.priority[run]
		c.handlers[run]()
		c.current = prev
	}
}

func (c *intr) RaiseThreshold(ceiling int) int {
	prev := c.threshold
	c.threshold = max(c.threshold, ceiling)
	return prev
}

func (c *intr) RestoreThreshold(prev int) {
	c.threshold = prev
	c.dispatch()
}

func (c *intr) Priority() int {
	return c.current
}

type timer struct {
	irq     firmware.IRQ
	period  time.Duration
	enabled bool
	acks    int
	fail    bool
}

func (t *timer) Start(period time.Duration) error {
	if t.fail {
		return errors.New("no clock")
	}
	t.period = period
	return nil
}

func (t *timer) EnableInterrupt() {
	t.enabled = true
}

func (t *timer) Acknowledge() {
	t.acks++
}

func (t *timer) IRQ() firmware.IRQ {
	return t.irq
}

type line struct {
	high bool
}

func (l *line) SetHigh()        { l.high = true }
func (l *line) SetLow()         { l.high = false }
func (l *line) IsHigh() bool    { return l.high }
func (l *line) ReadLevel() bool { return l.high }
func (l *line) set(level bool)  { l.high = level }

type trace struct {
	messages []string
}

func (t *trace) Emit(m string) {
	t.messages = append(t.messages, m)
}

func (t *trace) contains(s string) bool {
	for _, m := range t.messages {
		if strings.Contains(m, s) {
			return true
		}
	}
	return false
}

type device struct {
	intr     *intr
	display  *timer
	debounce *timer
	physics  *timer
	rows     [5]*line
	columns  [5]*line
	buttons  [input.NumButtons]*line
	trace    *trace
	per      firmware.Peripherals
}

func newDevice() *device {
	d := &device{
		intr:     newIntr(),
		display:  &timer{irq: 1},
		debounce: &timer{irq: 2},
		physics:  &timer{irq: 3},
		trace:    &trace{},
	}
	d.per = firmware.Peripherals{
		DisplayTimer:  d.display,
		DebounceTimer: d.debounce,
		PhysicsTimer:  d.physics,
		Interrupts:    d.intr,
		Trace:         d.trace,
	}
	for i := range d.rows {
		d.rows[i] = &line{high: true}
		d.per.Rows[i] = d.rows[i]
	}
	for i := range d.columns {
		d.columns[i] = &line{high: true}
		d.per.Columns[i] = d.columns[i]
	}
	for i := range d.buttons {
		d.buttons[i] = &line{}
		d.per.Buttons[i] = d.buttons[i]
	}
	return d
}

func (d *device) sample(n int) {
	for i := 0; i < n; i++ {
		d.intr.Pend(d.debounce.irq)
	}
}

func (d *device) tick(n int) {
	for i := 0; i < n; i++ {
		d.intr.Pend(d.physics.irq)
	}
}

// press a button cleanly and run the consumer.
func (d *device) press(fw *firmware.Firmware, b input.Button) {
	d.buttons[b].set(true)
	d.sample(2)
	fw.Idle()
}

// release a button cleanly and run the consumer.
func (d *device) release(fw *firmware.Firmware, b input.Button) {
	d.buttons[b].set(false)
	d.sample(10)
	fw.Idle()
}

func (d *device) click(fw *firmware.Firmware, b input.Button) {
	d.press(fw, b)
	d.release(fw, b)
}

func TestInit(t *testing.T) {
	d := newDevice()
	fw, err := firmware.Init(firmware.DefaultConfig(), d.per)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, d.display.period, 4*time.Microsecond)
	test.ExpectEquality(t, d.debounce.period, 5*time.Millisecond)
	test.ExpectEquality(t, d.physics.period, time.Millisecond)
	test.ExpectSuccess(t, d.display.enabled && d.debounce.enabled && d.physics.enabled)

	test.ExpectEquality(t, d.intr.priority[d.display.irq], 3)
	test.ExpectEquality(t, d.intr.priority[d.debounce.irq], 2)
	test.ExpectEquality(t, d.intr.priority[d.physics.irq], 2)

	// lines are driven low
	for i := range d.rows {
		test.ExpectFailure(t, d.rows[i].high)
		test.ExpectFailure(t, d.columns[i].high)
	}

	s := fw.Snapshot()
	test.ExpectEquality(t, s.Run, game.Running)
	test.ExpectEquality(t, s.ShipX, 2)
	test.ExpectEquality(t, fw.Stats().QueueCap, 16)
}

func TestInitBadConfig(t *testing.T) {
	cfg := firmware.DefaultConfig()
	cfg.ReleaseThreshold = 0
	_, err := firmware.Init(cfg, newDevice().per)
	test.ExpectSuccess(t, curated.Is(err, firmware.BadConfig))

	cfg = firmware.DefaultConfig()
	cfg.PhysicsPeriod = 0
	_, err = firmware.Init(cfg, newDevice().per)
	test.ExpectSuccess(t, curated.Is(err, firmware.BadConfig))
}

func TestInitMissingPeripheral(t *testing.T) {
	d := newDevice()
	d.per.Columns[3] = nil
	_, err := firmware.Init(firmware.DefaultConfig(), d.per)
	test.ExpectSuccess(t, curated.Is(err, firmware.MissingPeripheral))
	test.ExpectEquality(t, err.Error(), "firmware: missing peripheral: column line 3")
}

func TestInitTimerFailure(t *testing.T) {
	d := newDevice()
	d.physics.fail = true
	_, err := firmware.Init(firmware.DefaultConfig(), d.per)
	test.ExpectSuccess(t, curated.Is(err, firmware.InitFailed))
}

func TestHandlersAcknowledge(t *testing.T) {
	d := newDevice()
	_, err := firmware.Init(firmware.DefaultConfig(), d.per)
	test.DemandSuccess(t, err)

	d.intr.Pend(d.display.irq)
	d.sample(3)
	d.tick(4)
	test.ExpectEquality(t, d.display.acks, 1)
	test.ExpectEquality(t, d.debounce.acks, 3)
	test.ExpectEquality(t, d.physics.acks, 4)
}

func TestMoveAndFire(t *testing.T) {
	d := newDevice()
	fw, err := firmware.Init(firmware.DefaultConfig(), d.per)
	test.DemandSuccess(t, err)

	d.click(fw, input.ButtonA)
	s := fw.Snapshot()
	test.ExpectEquality(t, s.ShipX, 1)
	test.ExpectEquality(t, s.NumShots(), 0)

	d.click(fw, input.ButtonB)
	s = fw.Snapshot()
	test.ExpectEquality(t, s.ShipX, 2)
	test.DemandEquality(t, s.NumShots(), 1)
	test.ExpectEquality(t, s.Shots()[0], game.Shot{X: 2, Y: 3})

	d.tick(3)
	s = fw.Snapshot()
	test.ExpectEquality(t, s.Shots()[0], game.Shot{X: 2, Y: 0})
	d.tick(1)
	s = fw.Snapshot()
	test.ExpectEquality(t, s.NumShots(), 0)
	test.ExpectEquality(t, s.EnemiesAlive(), 4)
	test.ExpectEquality(t, s.Enemies[2], false)

	test.ExpectEquality(t, fw.Stats().Handled, 4)
	test.ExpectSuccess(t, d.trace.contains("event: B released"))
}

func TestVictoryAndReset(t *testing.T) {
	d := newDevice()
	fw, err := firmware.Init(firmware.DefaultConfig(), d.per)
	test.DemandSuccess(t, err)

	// clicking B moves right and fires from the new column
	d.click(fw, input.ButtonB)
	d.click(fw, input.ButtonB)

	// to fire from a column to the left, hold B and move with A before
	// releasing B
	for target := 2; target >= 0; target-- {
		d.press(fw, input.ButtonB)
		for fw.Snapshot().ShipX > target {
			d.click(fw, input.ButtonA)
		}
		d.release(fw, input.ButtonB)
	}
	s := fw.Snapshot()
	test.DemandEquality(t, s.NumShots(), 5)
	d.tick(4)

	s = fw.Snapshot()
	test.ExpectEquality(t, s.EnemiesAlive(), 0)
	test.ExpectEquality(t, s.Run, game.Victory)

	// a press resets the game
	d.press(fw, input.ButtonA)
	s = fw.Snapshot()
	test.ExpectEquality(t, s.Run, game.Running)
	test.ExpectEquality(t, s.ShipX, 2)
	test.ExpectEquality(t, s.EnemiesAlive(), 5)
	test.ExpectSuccess(t, d.trace.contains("game: reset"))
}

func TestSameSampleOrder(t *testing.T) {
	d := newDevice()
	fw, err := firmware.Init(firmware.DefaultConfig(), d.per)
	test.DemandSuccess(t, err)

	// both buttons confirm in the same sampling period. A is handled
	// before B so the ship returns to where it started
	d.buttons[input.ButtonA].set(true)
	d.buttons[input.ButtonB].set(true)
	d.sample(2)
	test.ExpectEquality(t, fw.Stats().QueueLen, 2)
	fw.Idle()

	test.ExpectEquality(t, fw.Snapshot().ShipX, 2)
	var order []string
	for _, m := range d.trace.messages {
		if strings.HasPrefix(m, "event:") {
			order = append(order, m)
		}
	}
	test.DemandEquality(t, len(order), 2)
	test.ExpectEquality(t, order[0], "event: A pressed")
	test.ExpectEquality(t, order[1], "event: B pressed")
}

func TestQueueOverflow(t *testing.T) {
	d := newDevice()
	cfg := firmware.DefaultConfig()
	cfg.QueueCapacity = 4
	cfg.ReleaseThreshold = 1
	cfg.PressThreshold = 1
	fw, err := firmware.Init(cfg, d.per)
	test.DemandSuccess(t, err)

	// six transitions without the consumer running
	for i := 0; i < 6; i++ {
		d.buttons[input.ButtonA].set(i%2 == 0)
		d.sample(1)
	}
	test.ExpectEquality(t, fw.Stats().QueueLen, 4)
	test.ExpectEquality(t, fw.Stats().Dropped, 2)

	fw.Idle()
	test.ExpectEquality(t, fw.Stats().QueueLen, 0)
	test.ExpectEquality(t, fw.Stats().Handled, 4)
	test.ExpectSuccess(t, d.trace.contains("queue full: 2 events dropped"))
}

func TestDisplay(t *testing.T) {
	d := newDevice()
	_, err := firmware.Init(firmware.DefaultConfig(), d.per)
	test.DemandSuccess(t, err)

	// first tick displays the enemy row
	d.intr.Pend(d.display.irq)
	test.ExpectSuccess(t, d.rows[0].high)
	for c := range d.columns {
		test.ExpectSuccess(t, d.columns[c].high)
	}

	// enemies have brightness 7 so are off from substep 7
	for i := 1; i < 8; i++ {
		d.intr.Pend(d.display.irq)
	}
	for c := range d.columns {
		test.ExpectFailure(t, d.columns[c].high)
	}

	// move on to the ship row
	for i := 8; i < 16*4+1; i++ {
		d.intr.Pend(d.display.irq)
	}
	test.ExpectSuccess(t, d.rows[4].high)
	test.ExpectFailure(t, d.rows[0].high)
	test.ExpectSuccess(t, d.columns[2].high)
	test.ExpectFailure(t, d.columns[1].high)
}

func TestLockDefersPhysics(t *testing.T) {
	d := newDevice()
	_, err := firmware.Init(firmware.DefaultConfig(), d.per)
	test.DemandSuccess(t, err)

	r := firmware.NewResource(d.intr, 3, 0)

	// physics handler pended while the idle loop holds a resource with a
	// ceiling of 3 is deferred until the lock is released
	r.Lock(func(v *int) {
		d.intr.Pend(d.physics.irq)
		test.ExpectEquality(t, d.physics.acks, 0)
		*v = 1
	})
	test.ExpectEquality(t, d.physics.acks, 1)
}

func TestLockAboveCeiling(t *testing.T) {
	d := newDevice()
	r := firmware.NewResource(d.intr, 2, 0)
	d.intr.current = 3

	defer func() {
		err, ok := recover().(error)
		test.DemandSuccess(t, ok)
		test.ExpectSuccess(t, curated.Is(err, firmware.LockAboveCeiling))
	}()
	r.Lock(func(v *int) {})
}

func TestLockRestoresThresholdOnPanic(t *testing.T) {
	d := newDevice()
	r := firmware.NewResource(d.intr, 3, 0)

	func() {
		defer func() {
			test.ExpectSuccess(t, recover() != nil)
		}()
		r.Lock(func(v *int) {
			panic(curated.Errorf(game.OutOfBounds, "row", 9))
		})
	}()

	test.ExpectEquality(t, d.intr.threshold, 0)
}
