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

// Package sdlmatrix draws the LED matrix in a window with SDL. All SDL
// functions are called from the main thread, in the Service() function.
package sdlmatrix

import (
	"fmt"
	"io"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/govern"
	"github.com/jetsetilly/microvaders/gui"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/clocks"
	"github.com/jetsetilly/microvaders/logger"
	"github.com/jetsetilly/microvaders/screenshot"
	"github.com/jetsetilly/microvaders/userinput"
	"github.com/jetsetilly/microvaders/version"
)

// DefaultCell is the size of one LED in the window.
const DefaultCell = 64

const title = version.ApplicationName

// SdlMatrix is an SDL implementation of the gui.GUI interface.
type SdlMatrix struct {
	// the fields in crit are shared between the emulation goroutine and the
	// main thread
	crit struct {
		sync.Mutex
		frame  hardware.Frame
		dirty  bool
		state  govern.State
		halted error
	}

	userinput chan userinput.Event

	// functions to be run on the main thread and their results
	service    chan func()
	serviceErr chan error

	cell int

	// sdl stuff
	window   *sdl.Window
	renderer *sdl.Renderer
}

// NewSdlMatrix is the preferred method of initialisation for the SdlMatrix
// type. MUST ONLY be called from the main thread.
//
// The window is hidden until the ReqSetVisibility request.
func NewSdlMatrix(cell int) (*SdlMatrix, error) {
	if cell <= 0 {
		cell = DefaultCell
	}

	scr := &SdlMatrix{
		userinput:  make(chan userinput.Event, gui.UserInputQueueLen),
		service:    make(chan func(), 1),
		serviceErr: make(chan error, 1),
		cell:       cell,
	}
	scr.crit.state = govern.Initialising

	var err error

	err = sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	scr.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(game.Width*cell), int32(game.Height*cell),
		uint32(sdl.WINDOW_HIDDEN))
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf("sdl: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		_ = scr.window.Destroy()
		sdl.Quit()
		return nil, curated.Errorf("sdl: %v", err)
	}

	// MOUSEMOTION events fill up the event queue pretty quickly and we have
	// no use for them
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)

	return scr, nil
}

// Destroy implements the gui.GUI interface.
func (scr *SdlMatrix) Destroy(output io.Writer) {
	if err := scr.renderer.Destroy(); err != nil {
		fmt.Fprintln(output, err)
	}
	if err := scr.window.Destroy(); err != nil {
		fmt.Fprintln(output, err)
	}
	sdl.Quit()
}

// UserInput implements the gui.GUI interface.
func (scr *SdlMatrix) UserInput() <-chan userinput.Event {
	return scr.userinput
}

// NewFrame implements the hardware.FrameListener interface.
func (scr *SdlMatrix) NewFrame(f hardware.Frame) error {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.crit.frame = f
	scr.crit.dirty = true
	return nil
}

// SetFeature implements the gui.GUI interface.
func (scr *SdlMatrix) SetFeature(request gui.FeatureReq, args ...gui.FeatureReqData) error {
	switch request {
	case gui.ReqState:
		scr.crit.Lock()
		scr.crit.state = args[0].(govern.State)
		scr.crit.dirty = true
		scr.crit.Unlock()

	case gui.ReqHalted:
		scr.crit.Lock()
		scr.crit.halted, _ = args[0].(error)
		scr.crit.dirty = true
		scr.crit.Unlock()

	case gui.ReqSetVisibility:
		show := args[0].(bool)
		scr.service <- func() {
			if show {
				scr.window.Show()
			} else {
				scr.window.Hide()
			}
			scr.serviceErr <- nil
		}
		return <-scr.serviceErr

	default:
		return curated.Errorf(gui.UnsupportedGuiFeature, request)
	}

	return nil
}

// send user input to the emulation. input is dropped if the emulation is
// not keeping up.
func (scr *SdlMatrix) send(ev userinput.Event) {
	select {
	case scr.userinput <- ev:
	default:
		logger.Log(logger.Allow, "sdlmatrix", "user input dropped")
	}
}

// Service implements the gui.GUI interface.
//
// MUST ONLY be called from the main thread.
func (scr *SdlMatrix) Service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.send(userinput.EventQuit{})

		case *sdl.KeyboardEvent:
			mod := userinput.KeyModNone

			if sdl.GetModState()&sdl.KMOD_LALT == sdl.KMOD_LALT ||
				sdl.GetModState()&sdl.KMOD_RALT == sdl.KMOD_RALT {
				mod = userinput.KeyModAlt
			} else if sdl.GetModState()&sdl.KMOD_LSHIFT == sdl.KMOD_LSHIFT ||
				sdl.GetModState()&sdl.KMOD_RSHIFT == sdl.KMOD_RSHIFT {
				mod = userinput.KeyModShift
			} else if sdl.GetModState()&sdl.KMOD_LCTRL == sdl.KMOD_LCTRL ||
				sdl.GetModState()&sdl.KMOD_RCTRL == sdl.KMOD_RCTRL {
				mod = userinput.KeyModCtrl
			}

			switch ev.Type {
			case sdl.KEYDOWN, sdl.KEYUP:
				scr.send(userinput.EventKeyboard{
					Key:    sdl.GetKeyName(ev.Keysym.Sym),
					Mod:    mod,
					Down:   ev.Type == sdl.KEYDOWN,
					Repeat: ev.Repeat != 0,
				})
			}
		}
	}

	// run any outstanding service functions
	select {
	case f := <-scr.service:
		f()
	default:
	}

	scr.draw()
}

// draw the most recent frame if it has changed since the last draw.
func (scr *SdlMatrix) draw() {
	scr.crit.Lock()
	if !scr.crit.dirty {
		scr.crit.Unlock()
		return
	}
	f := scr.crit.frame
	state := scr.crit.state
	halted := scr.crit.halted
	scr.crit.dirty = false
	scr.crit.Unlock()

	scr.window.SetTitle(windowTitle(f, state, halted))

	_ = scr.renderer.SetDrawColor(0, 0, 0, 255)
	_ = scr.renderer.Clear()

	border := int32(max(scr.cell/8, 1))
	cell := int32(scr.cell)
	for y, row := range f.Perceived {
		for x, b := range row {
			c := screenshot.LEDColor(b)
			_ = scr.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
			_ = scr.renderer.FillRect(&sdl.Rect{
				X: int32(x)*cell + border/2,
				Y: int32(y)*cell + border/2,
				W: cell - border,
				H: cell - border,
			})
		}
	}

	scr.renderer.Present()
}

// windowTitle describes the state of the board.
func windowTitle(f hardware.Frame, state govern.State, halted error) string {
	if halted != nil {
		return fmt.Sprintf("%s [halted]", title)
	}
	if state == govern.Paused {
		return fmt.Sprintf("%s [paused]", title)
	}
	return fmt.Sprintf("%s %s %s", title, clocks.Format(f.Time), f.State.Run)
}
