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

// Package performance measures the speed of the emulated board. The board is
// run uncapped for a period of wall time and the amount of virtual time
// covered is compared with it. A ratio above one means the board runs
// faster than the real device would.
//
// The measurement can optionally be made under the CPU profiler and be
// followed by a heap profile. Profiles are written to the current directory
// and can be viewed with "go tool pprof".
package performance
