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

// Package digest hashes the perceived output of the board. Each frame's hash
// is chained to the hash of the previous frame so two runs with the same hash
// showed the same LEDs for the same frames.
package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/hardware"
)

// Frames is a chained digest of perceived frames. It implements the
// hardware.FrameListener interface.
type Frames struct {
	digest   [sha1.Size]byte
	data     []byte
	frameNum int
}

// NewFrames is the preferred method of initialisation for the Frames type.
func NewFrames() *Frames {
	return &Frames{
		// room for the previous digest followed by one byte per LED
		data: make([]byte, sha1.Size+game.Width*game.Height),
	}
}

// Hash returns the digest of every frame added so far.
func (dig *Frames) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest forgets all frames added so far.
func (dig *Frames) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.frameNum = 0
}

// FrameNum returns the number of the most recent frame added to the digest.
func (dig *Frames) FrameNum() int {
	return dig.frameNum
}

// NewFrame implements the hardware.FrameListener interface.
func (dig *Frames) NewFrame(f hardware.Frame) error {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the frame data
	n := copy(dig.data, dig.digest[:])
	for _, row := range f.Perceived {
		n += copy(dig.data[n:], row[:])
	}
	if n != len(dig.data) {
		return fmt.Errorf("digest: frame %d: short frame data", f.Num)
	}
	dig.digest = sha1.Sum(dig.data)
	dig.frameNum = f.Num
	return nil
}
