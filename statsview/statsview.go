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

//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/jetsetilly/microvaders/logger"
)

// Address of the stats server.
const Address = "localhost:12600"

const url = "/debug/statsview"

// sampling interval of the charts in milliseconds. the board allocates very
// little once running so a slow interval is enough to see a leak
const interval = 1000

// Launch the stats server in a new goroutine. The returned function stops the
// server.
func Launch(output io.Writer) func() {
	viewer.SetConfiguration(
		viewer.WithAddr(Address),
		viewer.WithInterval(interval),
		viewer.WithTheme(viewer.ThemeWesteros),
	)
	mgr := statsview.New()

	go mgr.Start()

	logger.Logf(logger.Allow, "statsview", "launched on %s", Address)
	fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)

	return func() {
		mgr.Stop()
		logger.Log(logger.Allow, "statsview", "stopped")
	}
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
