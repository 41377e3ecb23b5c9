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
	"io"

	"github.com/jetsetilly/microvaders/hardware"
)

// NewRecorderWithWriter is like NewRecorder() but writes to the supplied
// writer rather than to a file.
func NewRecorderWithWriter(w io.WriteCloser, board *hardware.Board) (*Recorder, error) {
	return newRecorder(w, board)
}

// NewPlaybackFromReader is like NewPlayback() but reads the recording from
// the supplied reader.
func NewPlaybackFromReader(r io.Reader) (*Playback, error) {
	return readPlayback("test", r)
}

// Checksum exposes the crc of an entry.
var Checksum = checksum
