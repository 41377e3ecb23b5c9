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

// Package hardware is the emulated board that the firmware runs on. The
// Board type wires the firmware to emulated peripherals: an interrupt
// controller, three periodic timers, the ten output lines of the LED matrix
// and two bouncing push-buttons.
//
// Time on the board is virtual. The board is a discrete event simulation:
// each Step() advances the clock to the next timer deadline (or the end of
// the current frame), expires the timers, which runs the interrupt handlers,
// and then runs the firmware's idle loop until the event consumer suspends.
// Nothing changes between events so the LED matrix observer integrates the
// lit time of every LED over the interval that precedes each event.
//
// A run is therefore a function of the preferences and the timed input
// events only. The recorder and digest packages depend on this.
//
// Invariant violations in the firmware, such as an interrupt storm or an out
// of bounds shot, panic with a curated error. The board recovers the panic and
// from then on reports the device as halted (the Halted pattern). Panics that
// are not curated errors are not recovered.
package hardware
