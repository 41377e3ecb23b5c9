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

// Package input classifies confirmed switch transitions as input events.
package input

import (
	"fmt"

	"github.com/jetsetilly/microvaders/firmware/debounce"
)

// Button identifies one of the two buttons on the device.
type Button int

// List of valid Button values. The order is the order in which buttons are
// sampled. Transitions on both buttons in the same sampling period are
// delivered in this order.
const (
	ButtonA Button = iota
	ButtonB
)

// NumButtons is the number of buttons on the device.
const NumButtons = 2

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	}
	return fmt.Sprintf("button %d", int(b))
}

// Event is an input event. Events are values and are consumed exactly once.
type Event int

// List of valid Event values.
const (
	ButtonAPressed Event = iota
	ButtonAReleased
	ButtonBPressed
	ButtonBReleased
)

func (ev Event) String() string {
	switch ev {
	case ButtonAPressed:
		return "A pressed"
	case ButtonAReleased:
		return "A released"
	case ButtonBPressed:
		return "B pressed"
	case ButtonBReleased:
		return "B released"
	}
	return fmt.Sprintf("unknown event (%d)", int(ev))
}

// Button returns the button the event belongs to.
func (ev Event) Button() Button {
	if ev == ButtonBPressed || ev == ButtonBReleased {
		return ButtonB
	}
	return ButtonA
}

// Pressed returns true if the event is a press.
func (ev Event) Pressed() bool {
	return ev == ButtonAPressed || ev == ButtonBPressed
}

// Classify maps the result of a debouncer update for a button to an event.
// When ok is false there was no transition and no event is returned.
func Classify(b Button, st debounce.State, ok bool) (Event, bool) {
	if !ok {
		return 0, false
	}

	switch b {
	case ButtonA:
		if st == debounce.Pressed {
			return ButtonAPressed, true
		}
		return ButtonAReleased, true
	case ButtonB:
		if st == debounce.Pressed {
			return ButtonBPressed, true
		}
		return ButtonBReleased, true
	}

	return 0, false
}
