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

// Package buttons handles all forms of input to the switches of the emulated
// board.
//
// Events arrive in one of three ways. HandleEvent() is for callers on the
// same goroutine as the board. PushEvent() is for frontends running on
// other goroutines: the event is queued and applied when the board next
// calls Process(). Finally, an attached Playback supplies events that were
// recorded earlier.
//
// Every event applied to a switch is timestamped with the virtual time of the
// board and passed to an attached Recorder. Applying the same timed events to
// a board started with the same preferences reproduces the run exactly.
package buttons
