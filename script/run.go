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

package script

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/digest"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/buttons"
	"github.com/jetsetilly/microvaders/logger"
	"github.com/jetsetilly/microvaders/screenshot"
)

// Runner runs scripts on a board.
type Runner struct {
	board  *hardware.Board
	digest *digest.Frames

	// the most recent frame
	last hardware.Frame
}

// NewRunner is the preferred method of initialisation for the Runner type.
// The runner adds itself and a digest to the board's frame listeners.
func NewRunner(board *hardware.Board) *Runner {
	r := &Runner{
		board:  board,
		digest: digest.NewFrames(),
	}
	board.AddFrameListener(r.digest)
	board.AddFrameListener(r)
	return r
}

// NewFrame implements the hardware.FrameListener interface.
func (r *Runner) NewFrame(f hardware.Frame) error {
	r.last = f
	return nil
}

// LastFrame returns the most recent frame.
func (r *Runner) LastFrame() hardware.Frame {
	return r.last
}

// Digest returns the digest of every frame the runner has seen.
func (r *Runner) Digest() *digest.Frames {
	return r.digest
}

// Run the script. Returns on the first failed expectation.
func (r *Runner) Run(scr *Script) error {
	for _, cmd := range scr.commands {
		if err := r.run(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) button(cmd command, pressed bool) error {
	b, err := parseButton(cmd, cmd.args[1])
	if err != nil {
		return err
	}
	_, err = r.board.Buttons.HandleEvent(buttons.Event{Button: b, Pressed: pressed})
	return err
}

func (r *Runner) run(cmd command) error {
	switch cmd.args[0] {
	case "press":
		return r.button(cmd, true)
	case "release":
		return r.button(cmd, false)
	case "click":
		hold := DefaultHold
		if len(cmd.args) == 3 {
			hold, _ = time.ParseDuration(cmd.args[2])
		}
		if err := r.button(cmd, true); err != nil {
			return err
		}
		if err := r.board.RunFor(hold); err != nil {
			return err
		}
		if err := r.button(cmd, false); err != nil {
			return err
		}
		return r.board.RunFor(hold)
	case "wait":
		d, _ := time.ParseDuration(cmd.args[1])
		return r.board.RunFor(d)
	case "frames":
		n, _ := strconv.Atoi(cmd.args[1])
		return r.board.RunForFrameCount(n)
	case "expect":
		return r.expect(cmd)
	case "screenshot":
		return screenshot.Save(r.last, cmd.args[1])
	case "log":
		logger.Log(logger.Allow, "script", strings.Join(cmd.args[1:], " "))
		return nil
	}
	return syntax(cmd, fmt.Sprintf("unknown command (%s)", cmd.args[0]))
}

func (r *Runner) expect(cmd command) error {
	s := r.board.Firmware.Snapshot()

	var found string
	switch cmd.args[1] {
	case "ship":
		found = strconv.Itoa(s.ShipX)
	case "enemies":
		found = strconv.Itoa(s.EnemiesAlive())
	case "shots":
		found = strconv.Itoa(s.NumShots())
	case "run":
		found = s.Run.String()
		if strings.EqualFold(found, cmd.args[2]) {
			return nil
		}
	case "digest":
		found = r.digest.Hash()
	}

	if found != cmd.args[2] {
		return curated.Errorf(Failed, cmd.line, cmd.args[1], cmd.args[2], found)
	}
	return nil
}
