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

package gui

import (
	"io"

	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/userinput"
)

// GUI defines the operations that can be performed on the frontends of the
// board.
//
// NewFrame() is called on the emulation goroutine. Implementations that
// need to draw on the main thread must copy the frame and draw it in their
// Service() function.
type GUI interface {
	hardware.FrameListener

	// Send a request to set a GUI feature.
	SetFeature(request FeatureReq, args ...FeatureReqData) error

	// User input is sent on the channel returned by UserInput(). The channel
	// is never closed.
	UserInput() <-chan userinput.Event

	// Service() should not pause or loop longer than necessary. It MUST ONLY
	// be called as part of a larger loop from the main thread.
	Service()

	// Destroy releases all resources used by the GUI. Problems are written to
	// the io.Writer rather than returned.
	Destroy(output io.Writer)
}

// Sentinel error returned if GUI does not support requested feature.
const (
	UnsupportedGuiFeature = "gui: unsupported feature: %v"
)

// UserInputQueueLen is the length of the user input channel of a GUI
// implementation. Events that arrive when the channel is full are dropped.
const UserInputQueueLen = 16
