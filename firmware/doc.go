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

// Package firmware is the control loop of the device. It binds the display,
// debounce and physics handlers to their timers, owns the event queue and
// runs the event consumer as a cooperative task.
//
// The firmware is written against the small interfaces in peripherals.go and
// never imports the emulated hardware. It can be hosted by the emulated
// board in the hardware package, by real GPIO lines or by tests.
//
// Contexts and priorities (a higher priority preempts a lower one):
//
//	display handler    3
//	debounce handler   2
//	physics handler    2
//	event consumer     0 (the idle loop)
//
// The game state is shared by the physics handler, the display handler and
// the event consumer. It is held in a Resource with a ceiling equal to the
// highest of those priorities. State that belongs to one handler (the
// debouncers and the multiplexer counters) is reached only through that
// handler's closure and is never locked.
//
// Fatal conditions panic with a curated error. It is the host's job to
// recover the panic and halt the device.
package firmware
