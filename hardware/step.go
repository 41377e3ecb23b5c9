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
	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/logger"
)

// Step the board to the next event: a timer deadline or the end of the
// current frame, whichever is earlier.
//
// Returns the Halted error if the device halts during the step or has
// already halted.
func (b *Board) Step() (err error) {
	if b.halted != nil {
		return b.halted
	}

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !curated.IsAny(e) {
				panic(r)
			}
			b.halted = curated.Errorf(Halted, e)
			logger.Logf(logger.Allow, "board", "halted at %s: %v", b.Clock, e)
			err = b.halted
		}
	}()

	if err := b.Buttons.Process(); err != nil {
		return err
	}

	next := b.nextFrame
	for _, t := range b.timers {
		if d, ok := t.Deadline(); ok && d < next {
			next = d
		}
	}

	// the lines have not changed since the previous event
	b.Matrix.Observe(next - b.Clock.Now())
	b.Clock.AdvanceTo(next)

	// timers are expired in line order. expiry runs the handler if the
	// priority allows it
	for _, t := range b.timers {
		t.Expire(next)
	}

	b.Firmware.Idle()

	if next == b.nextFrame {
		return b.endFrame()
	}

	return nil
}

func (b *Board) endFrame() error {
	b.frameNum++
	b.nextFrame += b.framePeriod

	f := Frame{
		Num:       b.frameNum,
		Time:      b.Clock.Now(),
		Perceived: b.Matrix.Take(),
		State:     b.Firmware.Snapshot(),
	}

	for _, l := range b.listeners {
		if err := l.NewFrame(f); err != nil {
			return err
		}
	}

	if b.limiter != nil {
		b.limiter.Wait()
	}

	return nil
}
