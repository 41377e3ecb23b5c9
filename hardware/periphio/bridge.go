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

package periphio

import (
	"context"
	"sync"
	"time"

	"github.com/jetsetilly/microvaders/firmware/display"
	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/firmware/input"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/buttons"
	"github.com/jetsetilly/microvaders/userinput"
)

// DefaultRowPeriod is the time each row of the physical matrix is lit for.
const DefaultRowPeriod = 2 * time.Millisecond

// Bridge mirrors the board onto physical pins.
type Bridge struct {
	pins   *Pins
	handle userinput.HandleInput
	mux    *display.Multiplexer

	// most recent perceived frame. written on the emulation goroutine and
	// read by the multiplexer
	crit struct {
		sync.Mutex
		frame game.Frame
	}

	// the state of the physical buttons at the last poll
	pressed [input.NumButtons]bool

	rowPeriod time.Duration
}

// NewBridge is the preferred method of initialisation for the Bridge type.
// Button changes are pushed to handle.
func NewBridge(pins *Pins, handle userinput.HandleInput, rowPeriod time.Duration) *Bridge {
	if rowPeriod <= 0 {
		rowPeriod = DefaultRowPeriod
	}

	br := &Bridge{
		pins:      pins,
		handle:    handle,
		rowPeriod: rowPeriod,
	}

	var rows [display.Rows]display.Line
	var cols [display.Columns]display.Line
	for i, o := range pins.Rows {
		rows[i] = o
	}
	for i, o := range pins.Columns {
		cols[i] = o
	}
	br.mux = display.NewMultiplexer(rows, cols, br.snapshot)

	return br
}

func (br *Bridge) snapshot(row int) game.Row {
	br.crit.Lock()
	defer br.crit.Unlock()
	return br.crit.frame[row]
}

// NewFrame implements the hardware.FrameListener interface.
func (br *Bridge) NewFrame(f hardware.Frame) error {
	br.crit.Lock()
	br.crit.frame = f.Perceived
	br.crit.Unlock()
	return br.Poll()
}

// Poll the physical buttons and push any changes.
func (br *Bridge) Poll() error {
	for i, in := range br.pins.Buttons {
		p := in.Pressed()
		if p == br.pressed[i] {
			continue
		}
		br.pressed[i] = p
		if err := br.handle.PushEvent(buttons.Event{Button: input.Button(i), Pressed: p}); err != nil {
			return err
		}
	}
	return nil
}

// Run drives the physical matrix until the context is done. The matrix is
// blanked before returning.
func (br *Bridge) Run(ctx context.Context) error {
	t := time.NewTicker(br.rowPeriod / display.Substeps)
	defer t.Stop()
	defer br.pins.Blank()

	for {
		select {
		case <-ctx.Done():
			return br.pins.Err()
		case <-t.C:
			br.mux.Tick()
			if err := br.pins.Err(); err != nil {
				return err
			}
		}
	}
}
