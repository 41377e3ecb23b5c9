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
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/display"
	"github.com/jetsetilly/microvaders/firmware/input"
)

// Sentinel error patterns.
const (
	HostError  = "periphio: %v"
	UnknownPin = "periphio: unknown pin (%s)"
	PinError   = "periphio: pin %s: %v"
)

// PinNames are the names of the pins connected to the matrix and the
// buttons, as known to the periph.io registry.
type PinNames struct {
	Rows    [display.Rows]string
	Columns [display.Columns]string
	Buttons [input.NumButtons]string
}

// DefaultPinNames is the wiring of the reference board on a Raspberry Pi
// header.
var DefaultPinNames = PinNames{
	Rows:    [display.Rows]string{"GPIO5", "GPIO6", "GPIO13", "GPIO19", "GPIO26"},
	Columns: [display.Columns]string{"GPIO12", "GPIO16", "GPIO20", "GPIO21", "GPIO25"},
	Buttons: [input.NumButtons]string{"GPIO17", "GPIO27"},
}

// Output is a digital output line on a GPIO pin. It implements the
// display.Line interface. Errors from the pin are kept and returned by Err().
type Output struct {
	pin  gpio.PinIO
	high bool
	err  error
}

// NewOutput configures the pin as an output and drives it low.
func NewOutput(pin gpio.PinIO) (*Output, error) {
	if err := pin.Out(gpio.Low); err != nil {
		return nil, curated.Errorf(PinError, pin.Name(), err)
	}
	return &Output{pin: pin}, nil
}

func (o *Output) set(l gpio.Level) {
	if err := o.pin.Out(l); err != nil && o.err == nil {
		o.err = curated.Errorf(PinError, o.pin.Name(), err)
	}
	o.high = bool(l)
}

// SetHigh drives the pin high.
func (o *Output) SetHigh() {
	o.set(gpio.High)
}

// SetLow drives the pin low.
func (o *Output) SetLow() {
	o.set(gpio.Low)
}

// IsHigh returns the level the pin was last driven to.
func (o *Output) IsHigh() bool {
	return o.high
}

// Err returns the first error from the pin.
func (o *Output) Err() error {
	return o.err
}

// Input is a button on a GPIO pin.
type Input struct {
	pin       gpio.PinIO
	activeLow bool
}

// NewInput configures the pin as an input. An active low button is pulled
// up and an active high button is pulled down.
func NewInput(pin gpio.PinIO, activeLow bool) (*Input, error) {
	pull := gpio.PullDown
	if activeLow {
		pull = gpio.PullUp
	}
	if err := pin.In(pull, gpio.NoEdge); err != nil {
		return nil, curated.Errorf(PinError, pin.Name(), err)
	}
	return &Input{pin: pin, activeLow: activeLow}, nil
}

// Pressed returns true if the button is pressed.
func (in *Input) Pressed() bool {
	return (in.pin.Read() == gpio.High) != in.activeLow
}

// Pins are the configured lines of the matrix and the buttons.
type Pins struct {
	Rows    [display.Rows]*Output
	Columns [display.Columns]*Output
	Buttons [input.NumButtons]*Input
}

// Open loads the host drivers and configures the named pins.
func Open(names PinNames, activeLow bool) (*Pins, error) {
	if _, err := host.Init(); err != nil {
		return nil, curated.Errorf(HostError, err)
	}
	return newPins(names, activeLow, gpioreg.ByName)
}

func newPins(names PinNames, activeLow bool, lookup func(string) gpio.PinIO) (*Pins, error) {
	p := &Pins{}

	find := func(name string) (gpio.PinIO, error) {
		pin := lookup(name)
		if pin == nil {
			return nil, curated.Errorf(UnknownPin, name)
		}
		return pin, nil
	}

	output := func(name string) (*Output, error) {
		pin, err := find(name)
		if err != nil {
			return nil, err
		}
		return NewOutput(pin)
	}

	var err error

	for i, n := range names.Rows {
		if p.Rows[i], err = output(n); err != nil {
			return nil, err
		}
	}
	for i, n := range names.Columns {
		if p.Columns[i], err = output(n); err != nil {
			return nil, err
		}
	}
	for i, n := range names.Buttons {
		pin, err := find(n)
		if err != nil {
			return nil, err
		}
		if p.Buttons[i], err = NewInput(pin, activeLow); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Err returns the first error from any of the output pins.
func (p *Pins) Err() error {
	for _, o := range p.Rows {
		if o.Err() != nil {
			return o.Err()
		}
	}
	for _, o := range p.Columns {
		if o.Err() != nil {
			return o.Err()
		}
	}
	return nil
}

// Blank drives every output low.
func (p *Pins) Blank() {
	for _, o := range p.Rows {
		o.SetLow()
	}
	for _, o := range p.Columns {
		o.SetLow()
	}
}
