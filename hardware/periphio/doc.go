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

// Package periphio connects the board to a real LED matrix and real buttons
// on the GPIO pins of a single board computer.
//
// The emulated board runs as normal. A Bridge listens for frames and drives
// the physical matrix with the same display.Multiplexer the firmware uses,
// ticked by a wall-clock ticker. The physical buttons are polled once per
// frame and their changes are pushed to the board's switches.
//
// Pins are found by name with the periph.io registry, after the host
// drivers have been loaded with Open().
package periphio
