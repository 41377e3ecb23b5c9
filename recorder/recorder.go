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

package recorder

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/digest"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/buttons"
)

// Recorder transcribes button events to a file. It implements the
// buttons.Recorder interface.
type Recorder struct {
	output io.WriteCloser
	board  *hardware.Board
	digest *digest.Frames

	events int
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The board is reset so that the recording starts at power on.
func NewRecorder(filename string, board *hardware.Board) (*Recorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, curated.Errorf("recorder: %v", err)
	}

	rec, err := newRecorder(f, board)
	if err != nil {
		f.Close()
		return nil, err
	}

	return rec, nil
}

func newRecorder(output io.WriteCloser, board *hardware.Board) (*Recorder, error) {
	rec := &Recorder{
		output: output,
		board:  board,
		digest: digest.NewFrames(),
	}

	if err := board.Prefs.ZeroSeed.Set(true); err != nil {
		return nil, curated.Errorf("recorder: %v", err)
	}
	if err := board.Reset(); err != nil {
		return nil, curated.Errorf("recorder: %v", err)
	}

	board.AddFrameListener(rec.digest)
	if err := board.Buttons.AttachRecorder(rec); err != nil {
		return nil, curated.Errorf("recorder: %v", err)
	}

	if err := rec.writeHeader(); err != nil {
		return nil, err
	}

	return rec, nil
}

func (rec *Recorder) writeHeader() error {
	lines := make([]string, numHeaderLines)
	lines[lineMagic] = magic
	lines[lineConfig] = describe(rec.board.Prefs)

	_, err := io.WriteString(rec.output, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	return nil
}

// RecordEvent implements the buttons.Recorder interface.
func (rec *Recorder) RecordEvent(ev buttons.TimedEvent) error {
	pressed := valueRelease
	if ev.Pressed {
		pressed = valuePress
	}

	fields := make([]string, numFields-1)
	fields[fieldTime] = fmt.Sprintf("%d", ev.Time.Nanoseconds())
	fields[fieldButton] = ev.Button.String()
	fields[fieldPressed] = pressed
	fields[fieldFrame] = fmt.Sprintf("%d", rec.digest.FrameNum())
	fields[fieldHash] = rec.digest.Hash()

	line := strings.Join(fields, fieldSep)
	line = fmt.Sprintf("%s%s%s\n", line, fieldSep, checksum(line))

	if _, err := io.WriteString(rec.output, line); err != nil {
		return curated.Errorf("recorder: %v", err)
	}

	rec.events++
	return nil
}

// Events returns the number of events recorded.
func (rec *Recorder) Events() int {
	return rec.events
}

// End the recording and close the file.
func (rec *Recorder) End() error {
	rec.board.Buttons.AttachRecorder(nil)
	if err := rec.output.Close(); err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	return nil
}
