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

import "github.com/jetsetilly/microvaders/hardware/buttons"

// HandleInput conceptualises the board's input system. Events are pushed
// because the frontend and the board run on different goroutines.
type HandleInput interface {
	PushEvent(ev buttons.Event) error
}

// KeyMod identifies the modifier keys held while a key was pressed.
type KeyMod int

// List of valid KeyMod values.
const (
	KeyModNone KeyMod = iota
	KeyModShift
	KeyModCtrl
	KeyModAlt
)

// Event is one of the Event* types.
type Event interface{}

// EventKeyboard is a key being pressed or released. Key names follow the SDL
// naming scheme: "Left", "Z", "Escape", etc.
type EventKeyboard struct {
	Key    string
	Mod    KeyMod
	Down   bool
	Repeat bool
}

// EventQuit is sent when the frontend's window is closed.
type EventQuit struct{}

// Action is a request from the user to the frontend.
type Action int

// List of valid Action values.
const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionReset
	ActionScreenshot
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionQuit:
		return "quit"
	case ActionPause:
		return "pause"
	case ActionReset:
		return "reset"
	case ActionScreenshot:
		return "screenshot"
	}
	return ""
}
