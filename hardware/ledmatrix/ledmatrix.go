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

// Package ledmatrix observes the row and column lines of the LED matrix and
// works out what a person looking at the matrix would see.
//
// An LED is lit while both its row line and its column line are high. The
// observer integrates the lit time of every LED over a window and converts
// the duty cycle into a brightness level on the same scale as the game's
// frames. An LED that is lit for every substep it is able to be lit for (one
// row in Rows, Substeps-1 in Substeps of that) is at full brightness.
package ledmatrix

import (
	"time"

	"github.com/jetsetilly/microvaders/firmware/display"
	"github.com/jetsetilly/microvaders/firmware/game"
)

// Line is a digital line that can be read.
type Line interface {
	IsHigh() bool
}

// Observer integrates the lit time of the LEDs.
type Observer struct {
	rows    [display.Rows]Line
	columns [display.Columns]Line

	lit    [display.Rows][display.Columns]time.Duration
	window time.Duration
}

// NewObserver is the preferred method of initialisation for the Observer
// type.
func NewObserver(rows [display.Rows]Line, columns [display.Columns]Line) *Observer {
	return &Observer{
		rows:    rows,
		columns: columns,
	}
}

// Observe the lines for an interval in which they do not change.
func (o *Observer) Observe(d time.Duration) {
	if d <= 0 {
		return
	}
	o.window += d
	for r, rl := range o.rows {
		if !rl.IsHigh() {
			continue
		}
		for c, cl := range o.columns {
			if cl.IsHigh() {
				o.lit[r][c] += d
			}
		}
	}
}

// Window returns the length of the current observation window.
func (o *Observer) Window() time.Duration {
	return o.window
}

// Frame returns the perceived brightness of every LED over the current
// window. The window is not changed.
func (o *Observer) Frame() game.Frame {
	var f game.Frame
	if o.window == 0 {
		return f
	}

	// a full brightness LED is lit for MaxBrightness substeps of every
	// display.Rows * display.Substeps
	const scale = display.Rows * display.Substeps
	for r := range o.lit {
		for c, l := range o.lit[r] {
			v := (int64(l)*scale + int64(o.window)/2) / int64(o.window)
			f[r][c] = uint8(min(v, game.MaxBrightness))
		}
	}
	return f
}

// Take returns the perceived frame and starts a new window.
func (o *Observer) Take() game.Frame {
	f := o.Frame()
	o.Reset()
	return f
}

// Reset the observation window.
func (o *Observer) Reset() {
	o.lit = [display.Rows][display.Columns]time.Duration{}
	o.window = 0
}
