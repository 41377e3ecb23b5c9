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

package playmode

import (
	"os"
	"os/signal"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/govern"
	"github.com/jetsetilly/microvaders/gui"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/logger"
	"github.com/jetsetilly/microvaders/recorder"
	"github.com/jetsetilly/microvaders/userinput"
)

// Options for a play session.
type Options struct {
	// file to record the session to
	Record string

	// file to play back. can't be used with Record
	Playback string

	// limit the board to real time
	Pacing bool
}

type playmode struct {
	board *hardware.Board
	scr   gui.GUI

	controllers userinput.Controllers
	state       govern.State

	// whether a halt has been reported to the GUI
	halted bool

	playback     *recorder.Playback
	playbackDone bool

	// most recent frame. used for screenshots
	last hardware.Frame

	intChan chan os.Signal
}

// NewFrame implements the hardware.FrameListener interface.
func (pl *playmode) NewFrame(f hardware.Frame) error {
	pl.last = f
	return nil
}

// Play the board with the GUI until the user quits.
func Play(board *hardware.Board, scr gui.GUI, opts Options) error {
	if opts.Record != "" && opts.Playback != "" {
		return curated.Errorf("playmode: can't record and play back at the same time")
	}

	pl := &playmode{
		board:   board,
		scr:     scr,
		intChan: make(chan os.Signal, 1),
	}

	board.AddFrameListener(pl)
	board.AddFrameListener(scr)
	board.SetPacing(opts.Pacing)

	if opts.Record != "" {
		rec, err := recorder.NewRecorder(opts.Record, board)
		if err != nil {
			return curated.Errorf("playmode: %v", err)
		}

		// make sure the recording is completed even if Run() fails
		defer func() {
			if err := rec.End(); err != nil {
				logger.Logf(logger.Allow, "playmode", "%v", err)
			}
			logger.Logf(logger.Allow, "playmode", "recorded %d events to %s", rec.Events(), opts.Record)
		}()
	}

	if opts.Playback != "" {
		plb, err := recorder.NewPlayback(opts.Playback)
		if err != nil {
			return curated.Errorf("playmode: %v", err)
		}
		if err := plb.AttachToBoard(board); err != nil {
			return curated.Errorf("playmode: %v", err)
		}
		pl.playback = plb
		logger.Logf(logger.Allow, "playmode", "playing back %s", plb)
	}

	if err := scr.SetFeature(gui.ReqSetVisibility, true); err != nil {
		return curated.Errorf("playmode: %v", err)
	}
	defer func() {
		_ = scr.SetFeature(gui.ReqSetVisibility, false)
	}()

	pl.setState(govern.Running)

	// the recording must be completed when ctrl-c is pressed. redirect the
	// interrupt signal to the event handler
	signal.Notify(pl.intChan, os.Interrupt)
	defer signal.Stop(pl.intChan)

	if err := board.Run(pl.eventHandler); err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	return nil
}

func (pl *playmode) setState(state govern.State) {
	pl.state = state
	if err := pl.scr.SetFeature(gui.ReqState, state); err != nil {
		logger.Logf(logger.Allow, "playmode", "%v", err)
	}
}
