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

// Package recorder records the input to the board so that it can be played
// back later.
//
// A recording is a text file. The first lines are a header that describes
// the preferences the board was running with. Each following line is one
// button event:
//
//	<time>, <button>, <press|release>, <frame>, <digest>, <crc>
//
// The time is the virtual time in nanoseconds. The digest is the chained
// digest of every perceived frame up to that point (see the digest package)
// and the crc is a CRC-8 of the rest of the line, which catches a damaged or
// hand edited file before playback begins.
//
// Playback resets the board and feeds it the events at the recorded times.
// If the digest at an event does not match the recording then the board has
// diverged and playback fails with the PlaybackMismatch error.
//
// Recordings are always made and played back with the switch noise seeded
// from virtual time alone, so that a recording is independent of the time
// the program was started.
package recorder
