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

package hardware

import (
	"fmt"
	"time"

	"github.com/jetsetilly/microvaders/firmware"
	"github.com/jetsetilly/microvaders/firmware/display"
	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/firmware/input"
	"github.com/jetsetilly/microvaders/hardware/buttons"
	"github.com/jetsetilly/microvaders/hardware/clocks"
	"github.com/jetsetilly/microvaders/hardware/gpio"
	"github.com/jetsetilly/microvaders/hardware/ledmatrix"
	"github.com/jetsetilly/microvaders/hardware/nvic"
	"github.com/jetsetilly/microvaders/hardware/preferences"
	"github.com/jetsetilly/microvaders/hardware/timer"
	"github.com/jetsetilly/microvaders/logger"
	"github.com/jetsetilly/microvaders/performance/limiter"
)

// Halted is the sentinel error pattern for a board whose firmware has
// stopped because of an invariant violation.
const Halted = "board: device halted: %v"

// Interrupt lines of the timers.
const (
	DisplayIRQ  firmware.IRQ = 0
	DebounceIRQ firmware.IRQ = 1
	PhysicsIRQ  firmware.IRQ = 2
)

// Frame is the perceived state of the LED matrix at the end of a frame.
type Frame struct {
	// frame number counting from one
	Num int

	// virtual time at the end of the frame
	Time time.Duration

	// the perceived brightness of every LED over the frame
	Perceived game.Frame

	// copy of the game state at the end of the frame
	State game.State
}

// FrameListener implementations are told about every new frame.
type FrameListener interface {
	NewFrame(Frame) error
}

// Board is the main container for the emulated components.
type Board struct {
	Prefs *preferences.Preferences

	Clock *clocks.Clock
	NVIC  *nvic.Controller

	DisplayTimer  *timer.Periodic
	DebounceTimer *timer.Periodic
	PhysicsTimer  *timer.Periodic

	Rows     [display.Rows]*gpio.Pin
	Columns  [display.Columns]*gpio.Pin
	Switches [input.NumButtons]*gpio.Switch

	Buttons *buttons.Buttons
	Matrix  *ledmatrix.Observer

	Firmware *firmware.Firmware

	timers [3]*timer.Periodic

	framePeriod time.Duration
	nextFrame   time.Duration
	frameNum    int

	listeners []FrameListener

	// wall clock pacing. nil if the board runs as fast as possible
	limiter *limiter.Limiter

	// non-nil once the device has halted
	halted error
}

// NewBoard creates a new Board and everything on it and starts the firmware.
func NewBoard(p *preferences.Preferences) (*Board, error) {
	b := &Board{Prefs: p}
	if err := b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) build() error {
	b.Clock = &clocks.Clock{}
	b.NVIC = nvic.NewController()

	b.DisplayTimer = timer.NewPeriodic("display", DisplayIRQ, b.NVIC, b.Clock)
	b.DebounceTimer = timer.NewPeriodic("debounce", DebounceIRQ, b.NVIC, b.Clock)
	b.PhysicsTimer = timer.NewPeriodic("physics", PhysicsIRQ, b.NVIC, b.Clock)
	b.timers = [3]*timer.Periodic{b.DisplayTimer, b.DebounceTimer, b.PhysicsTimer}

	cfg := b.Prefs.Config()

	per := firmware.Peripherals{
		DisplayTimer:  b.DisplayTimer,
		DebounceTimer: b.DebounceTimer,
		PhysicsTimer:  b.PhysicsTimer,
		Interrupts:    b.NVIC,
		Trace:         logger.NewTrace("firmware"),
	}

	var rows [display.Rows]ledmatrix.Line
	var columns [display.Columns]ledmatrix.Line
	for i := range b.Rows {
		b.Rows[i] = gpio.NewPin(fmt.Sprintf("row%d", i))
		per.Rows[i] = b.Rows[i]
		rows[i] = b.Rows[i]
	}
	for i := range b.Columns {
		b.Columns[i] = gpio.NewPin(fmt.Sprintf("col%d", i))
		per.Columns[i] = b.Columns[i]
		columns[i] = b.Columns[i]
	}
	b.Matrix = ledmatrix.NewObserver(rows, columns)

	var switches [input.NumButtons]buttons.Switch
	for i := range b.Switches {
		s := gpio.NewSwitch(input.Button(i).String(), b.Clock, int64(i+1), cfg.ActiveLow)
		s.SetBounce(b.Prefs.Bounce.Get().(time.Duration))
		s.SetZeroSeed(b.Prefs.ZeroSeed.Get().(bool))
		b.Switches[i] = s
		per.Buttons[i] = s
		switches[i] = s
	}
	b.Buttons = buttons.NewButtons(b.Clock, switches)

	b.framePeriod = b.Prefs.FramePeriod()
	b.nextFrame = b.framePeriod
	b.frameNum = 0
	b.halted = nil

	var err error
	b.Firmware, err = firmware.Init(cfg, per)
	if err != nil {
		return err
	}

	return nil
}

// Reset is a power cycle of the board. Everything on the board is recreated
// and the firmware is started again. Frame listeners and pacing survive the
// reset. An attached recorder or playback does not.
func (b *Board) Reset() error {
	return b.build()
}

// AddFrameListener adds a FrameListener. Listeners are called in the order
// they were added.
func (b *Board) AddFrameListener(l FrameListener) {
	b.listeners = append(b.listeners, l)
}

// SetPacing limits the board to real time. Pacing is off by default.
func (b *Board) SetPacing(pace bool) {
	if pace {
		if b.limiter == nil {
			b.limiter = limiter.NewLimiter(int(time.Second / b.framePeriod))
		}
		return
	}
	if b.limiter != nil {
		b.limiter.End()
		b.limiter = nil
	}
}

// PushEvent implements the userinput.HandleInput interface. The event is
// pushed to the buttons of the current power cycle.
func (b *Board) PushEvent(ev buttons.Event) error {
	return b.Buttons.PushEvent(ev)
}

// Halted returns the Halted error if the device has halted. Returns nil
// otherwise.
func (b *Board) Halted() error {
	return b.halted
}

// FrameNum returns the number of frames completed.
func (b *Board) FrameNum() int {
	return b.frameNum
}

// Stats are counters describing the board at a moment in time.
type Stats struct {
	Time     time.Duration
	Frames   int
	Firmware firmware.Stats

	DisplayInterrupts  uint64
	DebounceInterrupts uint64
	PhysicsInterrupts  uint64
	Overruns           uint64
	MaxNesting         int

	Halted bool
}

// Stats returns the current counters. Must only be called from the board's
// goroutine.
func (b *Board) Stats() Stats {
	s := Stats{
		Time:               b.Clock.Now(),
		Frames:             b.frameNum,
		Firmware:           b.Firmware.Stats(),
		DisplayInterrupts:  b.NVIC.Count(DisplayIRQ),
		DebounceInterrupts: b.NVIC.Count(DebounceIRQ),
		PhysicsInterrupts:  b.NVIC.Count(PhysicsIRQ),
		MaxNesting:         b.NVIC.MaxDepth(),
		Halted:             b.halted != nil,
	}
	for _, t := range b.timers {
		s.Overruns += t.Overruns()
	}
	return s
}

func (b *Board) String() string {
	return fmt.Sprintf("%s frame=%d %s", b.Clock, b.frameNum, b.NVIC)
}
