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

package game

import (
	"strings"

	"github.com/jetsetilly/microvaders/curated"
)

// MaxBrightness is the brightness of a fully lit LED.
const MaxBrightness = 15

// Brightness of each game object. Where objects overlap the brighter wins.
const (
	ShipBrightness  = MaxBrightness
	ShotBrightness  = 11
	EnemyBrightness = 7
)

// Row is a row of brightness levels, one per column.
type Row [Width]uint8

// Frame is the brightness of every LED in the matrix, indexed by row.
type Frame [Height]Row

// Row returns the brightness levels for a single row of the matrix. Row()
// does not allocate and is suitable for an interrupt handler.
func (s *State) Row(row int) Row {
	if row < 0 || row >= Height {
		panic(curated.Errorf(OutOfBounds, "row", row))
	}

	var r Row

	if s.Run == Victory {
		for i := range r {
			r[i] = MaxBrightness
		}
		return r
	}

	if row == EnemyRow {
		for x, alive := range s.Enemies {
			if alive {
				r[x] = EnemyBrightness
			}
		}
	}

	for _, sh := range s.Shots() {
		if sh.Y == row {
			r[sh.X] = max(r[sh.X], ShotBrightness)
		}
	}

	if row == ShipRow {
		if s.ShipX < 0 || s.ShipX >= Width {
			panic(curated.Errorf(OutOfBounds, "ship column", s.ShipX))
		}
		r[s.ShipX] = max(r[s.ShipX], ShipBrightness)
	}

	return r
}

// Frame returns the brightness of every LED in the matrix.
func (s *State) Frame() Frame {
	var f Frame
	for i := range f {
		f[i] = s.Row(i)
	}
	return f
}

// String returns the frame as five lines of hexadecimal brightness levels.
// Unlit LEDs are shown as a dot.
func (f Frame) String() string {
	const digits = "0123456789abcdef"

	var b strings.Builder
	for _, r := range f {
		for _, v := range r {
			if v == 0 {
				b.WriteByte('.')
			} else {
				b.WriteByte(digits[v&0x0f])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
