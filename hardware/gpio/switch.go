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

package gpio

import (
	"fmt"
	"time"

	"github.com/jetsetilly/microvaders/random"
)

// DefaultBounce is the time the contacts of a Switch chatter for after every
// change of position.
const DefaultBounce = 8 * time.Millisecond

// Switch is an emulated push-button.
type Switch struct {
	name string
	clk  random.Clock
	rnd  *random.Random

	// the line reads low when the switch is closed
	activeLow bool

	// the duration of contact bounce
	bounce time.Duration

	// the position of the switch and the time it last changed
	closed  bool
	changed time.Duration
	moved   bool
}

// NewSwitch is the preferred method of initialisation for the Switch type.
// The salt keeps the noise of switches that share a clock apart.
func NewSwitch(name string, clk random.Clock, salt int64, activeLow bool) *Switch {
	return &Switch{
		name:      name,
		clk:       clk,
		rnd:       random.NewRandom(clk, salt),
		activeLow: activeLow,
		bounce:    DefaultBounce,
	}
}

// SetBounce changes the duration of contact bounce. A value of zero or less
// gives a perfect switch.
func (s *Switch) SetBounce(d time.Duration) {
	s.bounce = max(d, 0)
}

// SetZeroSeed makes the noise independent of the random base seed. Runs that
// must be reproduced exactly, such as recordings, need this.
func (s *Switch) SetZeroSeed(zero bool) {
	s.rnd.ZeroSeed = zero
}

// Press closes the switch. Pressing a closed switch has no effect.
func (s *Switch) Press() {
	s.Set(true)
}

// Release opens the switch. Releasing an open switch has no effect.
func (s *Switch) Release() {
	s.Set(false)
}

// Set the position of the switch.
func (s *Switch) Set(closed bool) {
	if s.closed == closed {
		return
	}
	s.closed = closed
	s.changed = s.clk.Now()
	s.moved = true
}

// Pressed returns the position of the switch, ignoring bounce.
func (s *Switch) Pressed() bool {
	return s.closed
}

// Bouncing returns true if the contacts are chattering.
func (s *Switch) Bouncing() bool {
	return s.moved && s.clk.Now()-s.changed < s.bounce
}

// ReadLevel implements the firmware.InputLine interface.
func (s *Switch) ReadLevel() bool {
	contact := s.closed
	if s.Bouncing() {
		contact = s.rnd.Bool()
	}
	if s.activeLow {
		return !contact
	}
	return contact
}

func (s *Switch) String() string {
	if s.closed {
		return fmt.Sprintf("%s: pressed", s.name)
	}
	return fmt.Sprintf("%s: released", s.name)
}
