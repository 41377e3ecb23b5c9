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

// Package random provides random numbers that are keyed to the virtual time
// of the emulated board. Two Random instances with the same salt, reading the
// same clock, produce the same sequence of numbers for the same moments in
// time.
//
// By default the base seed is taken from the wall clock when the program
// starts, so every run is different. The ZeroSeed field removes the base seed
// so that runs are repeatable, which is required when recording or playing
// back a session.
package random
