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

// Package display drives the LED matrix by row multiplexing with sub-frame
// pulse width modulation.
//
// One row is lit at a time. Each row is lit for 16 ticks (substeps) and an
// LED of brightness b is switched on for the first b of them. A full frame is
// 5 rows of 16 substeps. At the reference tick period of 4us a frame takes
// 320us, a refresh rate of a little over 3kHz.
//
// The Tick() function is called from the highest priority interrupt. It
// never allocates, never blocks and never logs.
package display

import (
	"github.com/jetsetilly/microvaders/firmware/game"
)

// Substeps is the number of ticks each row is active for.
const Substeps = 16

// Rows and Columns of the matrix.
const (
	Rows    = game.Height
	Columns = game.Width
)

// Line is a digital output line driving a row or a column of the matrix.
type Line interface {
	SetHigh()
	SetLow()
}

// Snapshot returns a consistent copy of the brightness levels of a row.
type Snapshot func(row int) game.Row

// Multiplexer drives the row and column lines of the matrix. All state is
// owned by the caller of Tick().
type Multiplexer struct {
	rows    [Rows]Line
	columns [Columns]Line

	snapshot Snapshot

	activeRow int
	substep   int

	// the row being displayed, taken at substep zero
	row game.Row
}

// NewMultiplexer is the preferred method of initialisation for the
// Multiplexer type.
func NewMultiplexer(rows [Rows]Line, columns [Columns]Line, snapshot Snapshot) *Multiplexer {
	return &Multiplexer{
		rows:     rows,
		columns:  columns,
		snapshot: snapshot,

		// the first tick advances to row zero
		activeRow: Rows - 1,
	}
}

// Tick advances the multiplexer by one substep.
func (m *Multiplexer) Tick() {
	if m.substep == 0 {
		m.rows[m.activeRow].SetLow()
		m.activeRow++
		if m.activeRow >= Rows {
			m.activeRow = 0
		}
		m.row = m.snapshot(m.activeRow)
	}

	for c, b := range m.row {
		if int(b) > m.substep {
			m.columns[c].SetHigh()
		} else {
			m.columns[c].SetLow()
		}
	}

	if m.substep == 0 {
		m.rows[m.activeRow].SetHigh()
	}

	m.substep++
	if m.substep >= Substeps {
		m.substep = 0
	}
}

// ActiveRow returns the row currently being displayed.
func (m *Multiplexer) ActiveRow() int {
	return m.activeRow
}

// Substep returns the substep that will be output on the next tick.
func (m *Multiplexer) Substep() int {
	return m.substep
}
