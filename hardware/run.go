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

package hardware

import (
	"time"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/govern"
)

// StepFrame steps the board until the end of the current frame.
func (b *Board) StepFrame() error {
	n := b.frameNum
	for b.frameNum == n {
		if err := b.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunFor runs the board for the specified duration of virtual time.
func (b *Board) RunFor(d time.Duration) error {
	end := b.Clock.Now() + d
	for b.Clock.Now() < end {
		if err := b.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunForFrameCount runs the board for the specified number of frames.
func (b *Board) RunForFrameCount(numFrames int) error {
	for i := 0; i < numFrames; i++ {
		if err := b.StepFrame(); err != nil {
			return err
		}
	}
	return nil
}

// Run the board until the continueCheck() function returns the Ending state.
// The function is called once per frame. A nil function runs the board
// forever or until it halts.
//
// A halted board is not an error for Run(). The frontend learns about it with
// the Halted() function and Run() continues, producing no more frames, until
// continueCheck() ends it.
func (b *Board) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error
	state := govern.Running

	for state != govern.Ending {
		switch state {
		case govern.Running:
			if b.halted != nil {
				b.idle()
				break
			}
			if err := b.StepFrame(); err != nil && !curated.Is(err, Halted) {
				return err
			}
		case govern.Paused, govern.Initialising:
			b.idle()
		default:
			return curated.Errorf("board: unsupported emulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// idle waits for the duration of one frame without stepping the board.
func (b *Board) idle() {
	if b.limiter != nil {
		b.limiter.Wait()
		return
	}
	time.Sleep(b.framePeriod)
}
