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
	"fmt"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/debounce"
	"github.com/jetsetilly/microvaders/firmware/display"
	"github.com/jetsetilly/microvaders/firmware/executor"
	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/firmware/input"
	"github.com/jetsetilly/microvaders/firmware/queue"
)

// Sentinel error patterns for Init().
const (
	MissingPeripheral = "firmware: missing peripheral: %s"
	InitFailed        = "firmware: init: %v"
)

// Firmware is the running control loop. It is created by Init().
type Firmware struct {
	cfg Config
	per Peripherals

	state  *Resource[game.State]
	events *queue.Queue[input.Event]
	exec   *executor.Executor

	// owned by the display handler
	mux *display.Multiplexer
	row struct {
		index int
		out   game.Row
		read  func(*game.State)
	}

	// owned by the debounce handler
	debouncers [input.NumButtons]*debounce.Debouncer

	// owned by the event consumer
	consumer struct {
		event    input.Event
		handle   func(*game.State)
		dropped  int
		reset    bool
		handled  int
		snapshot game.State
		copy     func(*game.State)
	}
}

// Init checks the configuration and the peripherals, binds the handlers to
// their interrupt lines, starts the timers and spawns the event consumer.
//
// The Idle() function of the returned Firmware must be called from the idle
// loop of the host.
func Init(cfg Config, per Peripherals) (*Firmware, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := checkPeripherals(per); err != nil {
		return nil, err
	}

	if per.Trace == nil {
		per.Trace = nopTrace{}
	}

	fw := &Firmware{
		cfg:   cfg,
		per:   per,
		state: NewResource(per.Interrupts, cfg.Ceiling(), *game.NewState()),
		exec:  executor.NewExecutor(),
	}

	var err error
	fw.events, err = queue.NewQueue[input.Event](cfg.QueueCapacity)
	if err != nil {
		return nil, curated.Errorf(InitFailed, err)
	}

	for i := range fw.debouncers {
		fw.debouncers[i] = debounce.NewDebouncer(cfg.PressThreshold, cfg.ReleaseThreshold, cfg.ActiveLow)
	}

	// closures used inside locks are built once so that the handlers do
	// not allocate
	fw.row.read = func(s *game.State) {
		fw.row.out = s.Row(fw.row.index)
	}
	fw.consumer.handle = func(s *game.State) {
		victory := s.Run == game.Victory
		s.Handle(fw.consumer.event)
		fw.consumer.reset = victory && s.Run == game.Running
	}
	fw.consumer.copy = func(s *game.State) {
		fw.consumer.snapshot = *s
	}

	var rows [display.Rows]display.Line
	var columns [display.Columns]display.Line
	for i, l := range per.Rows {
		l.SetLow()
		rows[i] = l
	}
	for i, l := range per.Columns {
		l.SetLow()
		columns[i] = l
	}
	fw.mux = display.NewMultiplexer(rows, columns, fw.snapshotRow)

	bindings := []struct {
		name     string
		timer    Timer
		priority int
		start    func() error
		handler  func()
	}{
		{"display", per.DisplayTimer, cfg.DisplayPriority, func() error { return per.DisplayTimer.Start(cfg.DisplayPeriod) }, fw.displayHandler},
		{"debounce", per.DebounceTimer, cfg.DebouncePriority, func() error { return per.DebounceTimer.Start(cfg.DebouncePeriod) }, fw.debounceHandler},
		{"physics", per.PhysicsTimer, cfg.PhysicsPriority, func() error { return per.PhysicsTimer.Start(cfg.PhysicsPeriod) }, fw.physicsHandler},
	}

	for _, b := range bindings {
		if err := per.Interrupts.Bind(b.timer.IRQ(), b.priority, b.handler); err != nil {
			return nil, curated.Errorf(InitFailed, fmt.Errorf("%s timer: %w", b.name, err))
		}
	}

	if err := fw.exec.Spawn("consumer", executor.TaskFunc(fw.consume)); err != nil {
		return nil, curated.Errorf(InitFailed, err)
	}

	for _, b := range bindings {
		if err := b.start(); err != nil {
			return nil, curated.Errorf(InitFailed, fmt.Errorf("%s timer: %w", b.name, err))
		}
		b.timer.EnableInterrupt()
	}

	per.Trace.Emit(fmt.Sprintf("init: queue capacity %d, press/release %d/%d samples",
		cfg.QueueCapacity, cfg.PressThreshold, cfg.ReleaseThreshold))

	return fw, nil
}

func checkPeripherals(per Peripherals) error {
	if per.Interrupts == nil {
		return curated.Errorf(MissingPeripheral, "interrupt controller")
	}
	if per.DisplayTimer == nil {
		return curated.Errorf(MissingPeripheral, "display timer")
	}
	if per.DebounceTimer == nil {
		return curated.Errorf(MissingPeripheral, "debounce timer")
	}
	if per.PhysicsTimer == nil {
		return curated.Errorf(MissingPeripheral, "physics timer")
	}
	for i, l := range per.Rows {
		if l == nil {
			return curated.Errorf(MissingPeripheral, fmt.Sprintf("row line %d", i))
		}
	}
	for i, l := range per.Columns {
		if l == nil {
			return curated.Errorf(MissingPeripheral, fmt.Sprintf("column line %d", i))
		}
	}
	for i, l := range per.Buttons {
		if l == nil {
			return curated.Errorf(MissingPeripheral, fmt.Sprintf("button %s", input.Button(i)))
		}
	}
	return nil
}

// snapshotRow is the display multiplexer's view of the game state.
func (fw *Firmware) snapshotRow(row int) game.Row {
	fw.row.index = row
	fw.state.Lock(fw.row.read)
	return fw.row.out
}

func (fw *Firmware) displayHandler() {
	fw.per.DisplayTimer.Acknowledge()
	fw.mux.Tick()
}

func (fw *Firmware) debounceHandler() {
	fw.per.DebounceTimer.Acknowledge()

	// buttons are sampled in index order. transitions confirmed in the
	// same period are queued A before B
	for i, d := range fw.debouncers {
		st, changed := d.Update(fw.per.Buttons[i].ReadLevel())
		if ev, ok := input.Classify(input.Button(i), st, changed); ok {
			fw.events.TrySend(ev)
		}
	}
}

func (fw *Firmware) physicsHandler() {
	fw.per.PhysicsTimer.Acknowledge()
	fw.state.Lock((*game.State).Tick)
}

// consume is the event consumer task. It runs until the queue is empty and
// then suspends in Receive().
func (fw *Firmware) consume(w *executor.Waker) executor.Poll {
	for {
		ev, ok := fw.events.Receive(w)
		if !ok {
			return executor.Pending
		}

		if d := fw.events.Dropped(); d != fw.consumer.dropped {
			fw.per.Trace.Emit(fmt.Sprintf("queue full: %d events dropped", d-fw.consumer.dropped))
			fw.consumer.dropped = d
		}

		fw.consumer.event = ev
		fw.state.Lock(fw.consumer.handle)
		fw.consumer.handled++

		fw.per.Trace.Emit(fmt.Sprintf("event: %s", ev))
		if fw.consumer.reset {
			fw.per.Trace.Emit("game: reset")
		}
	}
}

// Idle runs the event consumer until it suspends. It must be called from the
// idle loop of the host, at priority zero.
func (fw *Firmware) Idle() {
	fw.exec.RunUntilIdle()
}

// Ready returns true if the event consumer is waiting to run.
func (fw *Firmware) Ready() bool {
	return !fw.exec.Idle()
}

// Snapshot returns a copy of the game state. It must be called from the idle
// loop of the host.
func (fw *Firmware) Snapshot() game.State {
	fw.state.Lock(fw.consumer.copy)
	return fw.consumer.snapshot
}

// Stats are counters describing the firmware at a moment in time.
type Stats struct {
	QueueLen      int
	QueueCap      int
	Dropped       int
	Handled       int
	ExecutorPolls uint64
}

// Stats returns the current counters. It must be called from the idle loop
// of the host.
func (fw *Firmware) Stats() Stats {
	return Stats{
		QueueLen:      fw.events.Len(),
		QueueCap:      fw.events.Cap(),
		Dropped:       fw.events.Dropped(),
		Handled:       fw.consumer.handled,
		ExecutorPolls: fw.exec.Polls(),
	}
}

// Config returns the configuration the firmware was started with.
func (fw *Firmware) Config() Config {
	return fw.cfg
}
