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

package input_test

import (
	"testing"

	"github.com/jetsetilly/microvaders/firmware/debounce"
	"github.com/jetsetilly/microvaders/firmware/input"
	"github.com/jetsetilly/microvaders/test"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		button input.Button
		state  debounce.State
		event  input.Event
	}{
		{input.ButtonA, debounce.Pressed, input.ButtonAPressed},
		{input.ButtonA, debounce.NotPressed, input.ButtonAReleased},
		{input.ButtonB, debounce.Pressed, input.ButtonBPressed},
		{input.ButtonB, debounce.NotPressed, input.ButtonBReleased},
	}

	for _, c := range cases {
		ev, ok := input.Classify(c.button, c.state, true)
		test.ExpectSuccess(t, ok, c.event)
		test.ExpectEquality(t, ev, c.event)
		test.ExpectEquality(t, ev.Button(), c.button)
		test.ExpectEquality(t, ev.Pressed(), c.state == debounce.Pressed)
	}
}

func TestNoTransition(t *testing.T) {
	for b := input.ButtonA; b < input.NumButtons; b++ {
		_, ok := input.Classify(b, debounce.Pressed, false)
		test.ExpectFailure(t, ok)
		_, ok = input.Classify(b, debounce.NotPressed, false)
		test.ExpectFailure(t, ok)
	}
}

func TestUnknownButton(t *testing.T) {
	_, ok := input.Classify(input.Button(7), debounce.Pressed, true)
	test.ExpectFailure(t, ok)
}

func TestSameTickOrder(t *testing.T) {
	// both debouncers confirm in the same sampling period. classification in
	// button order gives A before B
	a := debounce.NewDebouncer(1, 1, false)
	b := debounce.NewDebouncer(1, 1, false)
	debouncers := [input.NumButtons]*debounce.Debouncer{a, b}

	var events []input.Event
	for i, d := range debouncers {
		st, changed := d.Update(true)
		if ev, ok := input.Classify(input.Button(i), st, changed); ok {
			events = append(events, ev)
		}
	}

	test.DemandEquality(t, len(events), 2)
	test.ExpectEquality(t, events[0], input.ButtonAPressed)
	test.ExpectEquality(t, events[1], input.ButtonBPressed)
}
