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
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/digest"
	"github.com/jetsetilly/microvaders/firmware/input"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/buttons"
)

// Sentinel error patterns.
const (
	PlaybackMismatch = "playback: unexpected board state at line %d (frame %d)"
	BadChecksum      = "playback: checksum error at line %d"
	BadRecording     = "playback: %s: %s"
)

type playbackEntry struct {
	event buttons.TimedEvent
	frame int
	hash  string

	// the line in the recording file the entry appears
	line int
}

// Playback feeds the events of a recording to a board. It implements the
// buttons.Playback interface.
type Playback struct {
	transcript string
	config     string

	sequence []playbackEntry
	seqCt    int

	board  *hardware.Board
	digest *digest.Frames
}

// NewPlayback is the preferred method of initialisation for the Playback
// type.
func NewPlayback(transcript string) (*Playback, error) {
	f, err := os.Open(transcript)
	if err != nil {
		return nil, curated.Errorf("playback: %v", err)
	}
	defer f.Close()
	return readPlayback(transcript, f)
}

func readPlayback(transcript string, r io.Reader) (*Playback, error) {
	buffer, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf("playback: %v", err)
	}

	plb := &Playback{transcript: transcript}

	lines := strings.Split(strings.TrimRight(string(buffer), "\n"), "\n")
	if len(lines) < numHeaderLines || lines[lineMagic] != magic {
		return nil, curated.Errorf(BadRecording, transcript, "not a recording")
	}
	plb.config = lines[lineConfig]

	for i := numHeaderLines; i < len(lines); i++ {
		entry, err := parseEntry(lines[i], i+1)
		if err != nil {
			return nil, err
		}
		if len(plb.sequence) > 0 && entry.event.Time < plb.sequence[len(plb.sequence)-1].event.Time {
			return nil, curated.Errorf(BadRecording, transcript, fmt.Sprintf("events out of order at line %d", i+1))
		}
		plb.sequence = append(plb.sequence, entry)
	}

	return plb, nil
}

func parseEntry(line string, num int) (playbackEntry, error) {
	toks := strings.Split(line, fieldSep)
	if len(toks) != numFields {
		return playbackEntry{}, curated.Errorf("playback: expected %d fields at line %d", numFields, num)
	}

	if checksum(strings.Join(toks[:fieldCRC], fieldSep)) != toks[fieldCRC] {
		return playbackEntry{}, curated.Errorf(BadChecksum, num)
	}

	entry := playbackEntry{line: num, hash: toks[fieldHash]}

	t, err := strconv.ParseInt(toks[fieldTime], 10, 64)
	if err != nil {
		return playbackEntry{}, curated.Errorf("playback: %v at line %d", err, num)
	}
	entry.event.Time = time.Duration(t)

	switch toks[fieldButton] {
	case input.ButtonA.String():
		entry.event.Button = input.ButtonA
	case input.ButtonB.String():
		entry.event.Button = input.ButtonB
	default:
		return playbackEntry{}, curated.Errorf("playback: unknown button (%s) at line %d", toks[fieldButton], num)
	}

	switch toks[fieldPressed] {
	case valuePress:
		entry.event.Pressed = true
	case valueRelease:
		entry.event.Pressed = false
	default:
		return playbackEntry{}, curated.Errorf("playback: unknown action (%s) at line %d", toks[fieldPressed], num)
	}

	entry.frame, err = strconv.Atoi(toks[fieldFrame])
	if err != nil {
		return playbackEntry{}, curated.Errorf("playback: %v at line %d", err, num)
	}

	return entry, nil
}

// AttachToBoard attaches the playback to the board. The board is reset so
// that playback starts at power on.
func (plb *Playback) AttachToBoard(board *hardware.Board) error {
	if err := board.Prefs.ZeroSeed.Set(true); err != nil {
		return curated.Errorf("playback: %v", err)
	}

	if d := describe(board.Prefs); d != plb.config {
		return curated.Errorf("playback: recording was made with different preferences (%s)", plb.config)
	}

	if err := board.Reset(); err != nil {
		return curated.Errorf("playback: %v", err)
	}

	plb.board = board
	plb.digest = digest.NewFrames()
	plb.seqCt = 0
	board.AddFrameListener(plb.digest)

	if err := board.Buttons.AttachPlayback(plb); err != nil {
		return curated.Errorf("playback: %v", err)
	}

	return nil
}

// GetPlayback implements the buttons.Playback interface.
func (plb *Playback) GetPlayback(now time.Duration) (buttons.TimedEvent, bool, error) {
	if plb.seqCt >= len(plb.sequence) {
		return buttons.TimedEvent{}, false, nil
	}

	entry := plb.sequence[plb.seqCt]
	if entry.event.Time > now {
		return buttons.TimedEvent{}, false, nil
	}
	plb.seqCt++

	if entry.hash != plb.digest.Hash() || entry.frame != plb.digest.FrameNum() {
		return buttons.TimedEvent{}, false, curated.Errorf(PlaybackMismatch, entry.line, plb.digest.FrameNum())
	}

	return entry.event, true, nil
}

// Done returns true if every event in the recording has been played.
func (plb *Playback) Done() bool {
	return plb.seqCt >= len(plb.sequence)
}

// EndTime returns the time of the last event in the recording.
func (plb *Playback) EndTime() time.Duration {
	if len(plb.sequence) == 0 {
		return 0
	}
	return plb.sequence[len(plb.sequence)-1].event.Time
}

func (plb *Playback) String() string {
	return fmt.Sprintf("%s: %d/%d events", plb.transcript, plb.seqCt, len(plb.sequence))
}
