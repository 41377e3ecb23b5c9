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
	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/govern"
	"github.com/jetsetilly/microvaders/gui"
	"github.com/jetsetilly/microvaders/logger"
	"github.com/jetsetilly/microvaders/resources"
	"github.com/jetsetilly/microvaders/screenshot"
	"github.com/jetsetilly/microvaders/userinput"
)

func (pl *playmode) userInputHandler(ev userinput.Event) error {
	action, err := pl.controllers.HandleUserInput(ev, pl.board)
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	switch action {
	case userinput.ActionQuit:
		pl.setState(govern.Ending)

	case userinput.ActionPause:
		if pl.state == govern.Paused {
			pl.setState(govern.Running)
		} else {
			pl.setState(govern.Paused)
		}

	case userinput.ActionReset:
		if err := pl.board.Reset(); err != nil {
			return curated.Errorf("playmode: %v", err)
		}
		if pl.playback != nil {
			logger.Log(logger.Allow, "playmode", "playback abandoned by reset")
			pl.playback = nil
		}
		pl.controllers = userinput.Controllers{}

	case userinput.ActionScreenshot:
		fn := resources.UniqueFilename("microvaders", "png")
		if err := screenshot.Save(pl.last, fn); err != nil {
			logger.Logf(logger.Allow, "playmode", "%v", err)
		} else {
			logger.Logf(logger.Allow, "playmode", "screenshot saved to %s", fn)
		}
	}

	return nil
}

// eventHandler is called by the board once per frame.
func (pl *playmode) eventHandler() (govern.State, error) {
	if h := pl.board.Halted(); (h != nil) != pl.halted {
		pl.halted = h != nil
		if err := pl.scr.SetFeature(gui.ReqHalted, h); err != nil {
			return govern.Ending, err
		}
		if h != nil {
			logger.Logf(logger.Allow, "playmode", "%v", h)
		}
	}

	if pl.playback != nil && !pl.playbackDone && pl.playback.Done() {
		pl.playbackDone = true
		logger.Log(logger.Allow, "playmode", "playback finished")
	}

	select {
	case <-pl.intChan:
		return govern.Ending, nil

	case ev := <-pl.scr.UserInput():
		if err := pl.userInputHandler(ev); err != nil {
			return govern.Ending, err
		}

	default:
	}

	return pl.state, nil
}
