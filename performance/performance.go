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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/microvaders/govern"
	"github.com/jetsetilly/microvaders/hardware"
)

// sentinel error returned by the Run() loop.
var timedOut = errors.New("performance timed out")

// Leadtime is the wall time the board runs for before measurement starts.
const Leadtime = time.Second

// Result of a measurement.
type Result struct {
	Frames  int
	Virtual time.Duration
	Wall    time.Duration
}

// FPS returns the number of frames produced per second of wall time.
func (r Result) FPS() float64 {
	if r.Wall <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Wall.Seconds()
}

// Speed returns the ratio of virtual time to wall time.
func (r Result) Speed() float64 {
	if r.Wall <= 0 {
		return 0
	}
	return r.Virtual.Seconds() / r.Wall.Seconds()
}

func (r Result) String() string {
	return fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.2fx real time", r.FPS(), r.Frames, r.Wall.Seconds(), r.Speed())
}

// Check the performance of the board. The board runs uncapped for the
// specified duration of wall time, after the leadtime, and the result is
// written to output.
func Check(output io.Writer, board *hardware.Board, profile Profile, duration time.Duration, leadtime time.Duration) (Result, error) {
	var res Result

	board.SetPacing(false)

	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// measurement period has finished
		timerChan := make(chan bool, 2)
		time.AfterFunc(leadtime, func() {
			timerChan <- false
			time.AfterFunc(duration, func() {
				timerChan <- true
			})
		})

		var startFrame int
		var startVirtual time.Duration
		var startWall time.Time

		// measurement starts immediately if there is no leadtime
		measuring := leadtime <= 0

		err := board.Run(func() (govern.State, error) {
			select {
			case v := <-timerChan:
				if v {
					res.Frames = board.FrameNum() - startFrame
					res.Virtual = board.Clock.Now() - startVirtual
					res.Wall = time.Since(startWall)
					return govern.Ending, timedOut
				}
				measuring = true
				startFrame = board.FrameNum()
				startVirtual = board.Clock.Now()
				startWall = time.Now()
			default:
				if measuring && startWall.IsZero() {
					startFrame = board.FrameNum()
					startVirtual = board.Clock.Now()
					startWall = time.Now()
				}
			}
			return govern.Running, nil
		})
		return err
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return res, fmt.Errorf("performance: %w", err)
	}

	if err := board.Halted(); err != nil {
		return res, err
	}

	output.Write([]byte(fmt.Sprintf("%s\n", res)))
	return res, nil
}
