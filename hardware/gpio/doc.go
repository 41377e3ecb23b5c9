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

// Package gpio emulates the digital lines of the board.
//
// Pin is an output line. It implements the firmware.OutputLine interface and
// is read by the LED matrix observer.
//
// Switch is a push-button connected to an input line. It implements the
// firmware.InputLine interface. Mechanical contacts do not close or open
// cleanly and the Switch models this: for a short time after every change of
// position the contacts chatter and the level read from the line is noise.
// The noise is taken from the random package and so is a function of virtual
// time, making every run with the same input repeatable.
package gpio
