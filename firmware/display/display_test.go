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

package display_test

import (
	"testing"

	"github.com/jetsetilly/microvaders/firmware/display"
	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/test"
)

type line struct {
	high bool
}

func (l *line) SetHigh() {
	l.high = true
}

func (l *line) SetLow() {
	l.high = false
}

type matrix struct {
	rows    [display.Rows]*line
	columns [display.Columns]*line
	frame   game.Frame

	snapshots []int
}

func newMatrix() (*matrix, *display.Multiplexer) {
	m := &matrix{}
	var rows [display.Rows]display.Line
	var columns [display.Columns]display.Line
	for i := range m.rows {
		m.rows[i] = &line{}
		rows[i] = m.rows[i]
	}
	for i := range m.columns {
		m.columns[i] = &line{}
		columns[i] = m.columns[i]
	}
	mux := display.NewMultiplexer(rows, columns, func(row int) game.Row {
		m.snapshots = append(m.snapshots, row)
		return m.frame[row]
	})
	return m, mux
}

func (m *matrix) activeRows() []int {
	var a []int
	for i, r := range m.rows {
		if r.high {
			a = append(a, i)
		}
	}
	return a
}

func TestRowSequence(t *testing.T) {
	m, mux := newMatrix()

	for frame := 0; frame < 3; frame++ {
		for row := 0; row < display.Rows; row++ {
			for s := 0; s < display.Substeps; s++ {
				test.ExpectEquality(t, mux.Substep(), s)
				mux.Tick()
				test.ExpectEquality(t, mux.ActiveRow(), row)

				// exactly one row is driven at any time
				a := m.activeRows()
				test.DemandEquality(t, len(a), 1)
				test.ExpectEquality(t, a[0], row)
			}
		}
	}

	// one snapshot per row per frame, in order
	test.DemandEquality(t, len(m.snapshots), 3*display.Rows)
	for i, r := range m.snapshots {
		test.ExpectEquality(t, r, i%display.Rows)
	}
}

func TestPWM(t *testing.T) {
	m, mux := newMatrix()

	// every brightness level appears in the frame
	for r := range m.frame {
		for c := range m.frame[r] {
			m.frame[r][c] = uint8((r*display.Columns + c) % (game.MaxBrightness + 1))
		}
	}

	var lit game.Frame
	for i := 0; i < display.Rows*display.Substeps; i++ {
		mux.Tick()
		for c, col := range m.columns {
			if col.high {
				lit[mux.ActiveRow()][c]++
			}
		}
	}

	// an LED of brightness b is lit for exactly b substeps
	test.ExpectEquality(t, lit, m.frame)
}

func TestZeroNeverLit(t *testing.T) {
	m, mux := newMatrix()

	for i := 0; i < display.Rows*display.Substeps*2; i++ {
		mux.Tick()
		for c, col := range m.columns {
			test.DemandEquality(t, col.high, false, c)
		}
	}
}

func TestSnapshotAtSubstepZero(t *testing.T) {
	m, mux := newMatrix()
	m.frame[0] = game.Row{15, 15, 15, 15, 15}

	// the first row is displayed with the snapshot taken at substep zero.
	// changes to the frame part way through the row are not seen
	mux.Tick()
	m.frame[0] = game.Row{}
	for s := 1; s < display.Substeps; s++ {
		mux.Tick()
		test.ExpectEquality(t, m.columns[0].high, s < 15)
	}

	// the next time row zero is displayed the change is seen
	for i := 0; i < (display.Rows-1)*display.Substeps+1; i++ {
		mux.Tick()
	}
	test.ExpectEquality(t, mux.ActiveRow(), 0)
	test.ExpectEquality(t, m.columns[0].high, false)
}

func TestTickNoAllocation(t *testing.T) {
	_, mux := newMatrixNoRecord()
	allocs := testing.AllocsPerRun(1000, mux.Tick)
	test.ExpectEquality(t, allocs, 0.0)
}

func newMatrixNoRecord() (*matrix, *display.Multiplexer) {
	m := &matrix{}
	var rows [display.Rows]display.Line
	var columns [display.Columns]display.Line
	for i := range m.rows {
		m.rows[i] = &line{}
		rows[i] = m.rows[i]
	}
	for i := range m.columns {
		m.columns[i] = &line{}
		columns[i] = m.columns[i]
	}
	s := game.NewState()
	return m, display.NewMultiplexer(rows, columns, s.Row)
}
