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

package userinput

import (
	"github.com/jetsetilly/microvaders/firmware/input"
	"github.com/jetsetilly/microvaders/hardware/buttons"
)

// Controllers keeps track of user input.
type Controllers struct {
	// whether or not the last HandleUserInput() was for an event that was
	// pushed to the board
	LastKeyHandled bool

	// the keys currently held for each button. a button is released when the
	// last key held for it is released
	held [input.NumButtons]map[string]bool
}

// keys mapped to each of the board's buttons.
var buttonKeys = map[string]input.Button{
	"Left":  input.ButtonA,
	"Z":     input.ButtonA,
	"A":     input.ButtonA,
	"Right": input.ButtonB,
	"X":     input.ButtonB,
	"B":     input.ButtonB,
}

// HandleUserInput translates the event and either pushes it to the board or
// returns it as an Action.
func (c *Controllers) HandleUserInput(ev Event, handle HandleInput) (Action, error) {
	c.LastKeyHandled = false

	switch ev := ev.(type) {
	case EventQuit:
		return ActionQuit, nil
	case EventKeyboard:
		return c.keyboard(ev, handle)
	}

	return ActionNone, nil
}

func (c *Controllers) keyboard(ev EventKeyboard, handle HandleInput) (Action, error) {
	if ev.Repeat {
		return ActionNone, nil
	}

	if b, ok := buttonKeys[ev.Key]; ok && (ev.Mod == KeyModNone || !ev.Down) {
		return ActionNone, c.button(b, ev.Key, ev.Down, handle)
	}

	if !ev.Down {
		return ActionNone, nil
	}

	switch ev.Key {
	case "Escape":
		return ActionQuit, nil
	case "P", "Pause":
		return ActionPause, nil
	case "F5":
		return ActionReset, nil
	case "F12":
		return ActionScreenshot, nil
	case "Q":
		if ev.Mod == KeyModCtrl {
			return ActionQuit, nil
		}
	}

	return ActionNone, nil
}

// button pushes an event for the button if the state of the button changes.
// more than one key maps to each button and the button stays pressed while
// any of them is held.
func (c *Controllers) button(b input.Button, key string, down bool, handle HandleInput) error {
	if c.held[b] == nil {
		c.held[b] = make(map[string]bool)
	}

	wasPressed := len(c.held[b]) > 0
	if down {
		c.held[b][key] = true
	} else {
		delete(c.held[b], key)
	}
	pressed := len(c.held[b]) > 0

	if pressed == wasPressed {
		return nil
	}

	c.LastKeyHandled = true
	return handle.PushEvent(buttons.Event{Button: b, Pressed: pressed})
}

// IsButtonKey returns true if the key is mapped to one of the board's buttons.
func IsButtonKey(key string) bool {
	_, ok := buttonKeys[key]
	return ok
}
