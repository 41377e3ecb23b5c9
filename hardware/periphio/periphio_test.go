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
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/display"
	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/firmware/input"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/buttons"
	"github.com/jetsetilly/microvaders/test"
)

type fakeHeader map[string]*gpiotest.Pin

func newFakeHeader(names PinNames) fakeHeader {
	h := make(fakeHeader)
	add := func(n string) {
		h[n] = &gpiotest.Pin{N: n}
	}
	for _, n := range names.Rows {
		add(n)
	}
	for _, n := range names.Columns {
		add(n)
	}
	for _, n := range names.Buttons {
		add(n)
	}
	return h
}

func (h fakeHeader) lookup(name string) gpio.PinIO {
	if p, ok := h[name]; ok {
		return p
	}
	return nil
}

type pushed struct {
	events []buttons.Event
}

func (p *pushed) PushEvent(ev buttons.Event) error {
	p.events = append(p.events, ev)
	return nil
}

func TestUnknownPin(t *testing.T) {
	names := DefaultPinNames
	h := newFakeHeader(names)
	names.Columns[3] = "GPIO99"

	_, err := newPins(names, true, h.lookup)
	test.ExpectSuccess(t, curated.Is(err, UnknownPin))
}

func TestInputPull(t *testing.T) {
	h := newFakeHeader(DefaultPinNames)
	_, err := newPins(DefaultPinNames, true, h.lookup)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, h[DefaultPinNames.Buttons[0]].P, gpio.PullUp)

	h = newFakeHeader(DefaultPinNames)
	_, err = newPins(DefaultPinNames, false, h.lookup)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, h[DefaultPinNames.Buttons[0]].P, gpio.PullDown)
}

func TestPoll(t *testing.T) {
	h := newFakeHeader(DefaultPinNames)
	pins, err := newPins(DefaultPinNames, true, h.lookup)
	test.DemandSuccess(t, err)

	// active low buttons read high when released
	h[DefaultPinNames.Buttons[0]].L = gpio.High
	h[DefaultPinNames.Buttons[1]].L = gpio.High

	p := &pushed{}
	br := NewBridge(pins, p, 0)
	test.DemandSuccess(t, br.Poll())
	test.ExpectEquality(t, len(p.events), 0)

	h[DefaultPinNames.Buttons[1]].L = gpio.Low
	test.DemandSuccess(t, br.NewFrame(hardware.Frame{}))
	test.DemandEquality(t, len(p.events), 1)
	test.ExpectEquality(t, p.events[0], buttons.Event{Button: input.ButtonB, Pressed: true})

	// no change, no event
	test.DemandSuccess(t, br.Poll())
	test.ExpectEquality(t, len(p.events), 1)

	h[DefaultPinNames.Buttons[1]].L = gpio.High
	test.DemandSuccess(t, br.Poll())
	test.DemandEquality(t, len(p.events), 2)
	test.ExpectEquality(t, p.events[1], buttons.Event{Button: input.ButtonB, Pressed: false})
}

func TestMultiplexPins(t *testing.T) {
	h := newFakeHeader(DefaultPinNames)
	pins, err := newPins(DefaultPinNames, true, h.lookup)
	test.DemandSuccess(t, err)

	br := NewBridge(pins, &pushed{}, 0)

	var f hardware.Frame
	f.Perceived[0][1] = game.MaxBrightness
	f.Perceived[0][2] = 1
	test.DemandSuccess(t, br.NewFrame(f))

	// first tick lights row zero
	br.mux.Tick()
	test.ExpectEquality(t, h[DefaultPinNames.Rows[0]].L, gpio.High)
	test.ExpectEquality(t, h[DefaultPinNames.Columns[0]].L, gpio.Low)
	test.ExpectEquality(t, h[DefaultPinNames.Columns[1]].L, gpio.High)
	test.ExpectEquality(t, h[DefaultPinNames.Columns[2]].L, gpio.High)

	// brightness one is lit for the first substep only
	br.mux.Tick()
	test.ExpectEquality(t, h[DefaultPinNames.Columns[1]].L, gpio.High)
	test.ExpectEquality(t, h[DefaultPinNames.Columns[2]].L, gpio.Low)

	// next row
	for i := 2; i <= display.Substeps; i++ {
		br.mux.Tick()
	}
	test.ExpectEquality(t, h[DefaultPinNames.Rows[0]].L, gpio.Low)
	test.ExpectEquality(t, h[DefaultPinNames.Rows[1]].L, gpio.High)
	test.ExpectEquality(t, h[DefaultPinNames.Columns[1]].L, gpio.Low)
}

func TestRunBlanksOnExit(t *testing.T) {
	h := newFakeHeader(DefaultPinNames)
	pins, err := newPins(DefaultPinNames, true, h.lookup)
	test.DemandSuccess(t, err)

	br := NewBridge(pins, &pushed{}, time.Millisecond)

	var f hardware.Frame
	for r := range f.Perceived {
		for c := range f.Perceived[r] {
			f.Perceived[r][c] = game.MaxBrightness
		}
	}
	test.DemandSuccess(t, br.NewFrame(f))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = br.Run(ctx)
	test.ExpectSuccess(t, err)

	for _, o := range pins.Rows {
		test.ExpectFailure(t, o.IsHigh())
	}
	for _, o := range pins.Columns {
		test.ExpectFailure(t, o.IsHigh())
	}
}

type failingPin struct {
	gpiotest.Pin
}

func (p *failingPin) Out(l gpio.Level) error {
	if l == gpio.High {
		return errors.New("shorted")
	}
	return nil
}

func TestOutputError(t *testing.T) {
	o, err := NewOutput(&failingPin{Pin: gpiotest.Pin{N: "GPIO4"}})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, o.Err())

	o.SetHigh()
	test.ExpectSuccess(t, curated.Is(o.Err(), PinError))
	test.ExpectEquality(t, o.Err().Error(), "periphio: pin GPIO4: shorted")
}
