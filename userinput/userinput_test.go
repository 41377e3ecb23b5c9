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

package userinput_test

import (
	"testing"

	"github.com/jetsetilly/microvaders/firmware/input"
	"github.com/jetsetilly/microvaders/hardware/buttons"
	"github.com/jetsetilly/microvaders/test"
	"github.com/jetsetilly/microvaders/userinput"
)

type board struct {
	events []buttons.Event
}

func (b *board) PushEvent(ev buttons.Event) error {
	b.events = append(b.events, ev)
	return nil
}

func TestButtons(t *testing.T) {
	var c userinput.Controllers
	b := &board{}

	key := func(k string, down bool) {
		a, err := c.HandleUserInput(userinput.EventKeyboard{Key: k, Down: down}, b)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, a, userinput.ActionNone)
	}

	key("Left", true)
	test.ExpectSuccess(t, c.LastKeyHandled)

	// a second key for the same button does not press it again
	key("Z", true)
	test.ExpectFailure(t, c.LastKeyHandled)
	key("Left", false)
	key("Z", false)

	key("X", true)
	key("X", false)

	test.DemandEquality(t, len(b.events), 4)
	test.ExpectEquality(t, b.events[0], buttons.Event{Button: input.ButtonA, Pressed: true})
	test.ExpectEquality(t, b.events[1], buttons.Event{Button: input.ButtonA, Pressed: false})
	test.ExpectEquality(t, b.events[2], buttons.Event{Button: input.ButtonB, Pressed: true})
	test.ExpectEquality(t, b.events[3], buttons.Event{Button: input.ButtonB, Pressed: false})
}

func TestRepeat(t *testing.T) {
	var c userinput.Controllers
	b := &board{}
	c.HandleUserInput(userinput.EventKeyboard{Key: "Right", Down: true}, b)
	c.HandleUserInput(userinput.EventKeyboard{Key: "Right", Down: true, Repeat: true}, b)
	test.ExpectEquality(t, len(b.events), 1)
}

func TestActions(t *testing.T) {
	var c userinput.Controllers
	b := &board{}

	for _, tc := range []struct {
		ev  userinput.Event
		act userinput.Action
	}{
		{userinput.EventQuit{}, userinput.ActionQuit},
		{userinput.EventKeyboard{Key: "Escape", Down: true}, userinput.ActionQuit},
		{userinput.EventKeyboard{Key: "Q", Mod: userinput.KeyModCtrl, Down: true}, userinput.ActionQuit},
		{userinput.EventKeyboard{Key: "P", Down: true}, userinput.ActionPause},
		{userinput.EventKeyboard{Key: "P", Down: false}, userinput.ActionNone},
		{userinput.EventKeyboard{Key: "F5", Down: true}, userinput.ActionReset},
		{userinput.EventKeyboard{Key: "F12", Down: true}, userinput.ActionScreenshot},
	} {
		a, err := c.HandleUserInput(tc.ev, b)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, a, tc.act, tc.ev)
	}
	test.ExpectEquality(t, len(b.events), 0)
}
