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

// Package script drives the board from a text script. It is used by the RUN
// mode of the executable and by tests.
//
// Each line of a script is one command. Arguments are split with shell
// quoting rules so that file names with spaces can be given. Blank lines and
// lines starting with # are ignored.
//
//	press A|B               close a switch
//	release A|B             open a switch
//	click A|B [hold]        press, wait for hold (default 100ms), release and
//	                        wait for the same again
//	wait <duration>         run the board for a duration of virtual time
//	frames <n>              run the board for n frames
//	expect ship <column>    fail unless the ship is in the column
//	expect enemies <n>      fail unless n enemies are alive
//	expect shots <n>        fail unless n shots are in flight
//	expect run <state>      fail unless the game is Running or Victory
//	expect digest <hash>    fail unless the frame digest matches
//	screenshot <filename>   save the most recent frame as a PNG
//	log <message>           add a message to the log
//
// Durations are in the format accepted by time.ParseDuration().
package script
