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

// Package terminal draws the LED matrix in a terminal with ANSI escape
// sequences. Input is read from the terminal in cbreak mode.
//
// A terminal only reports that a key has been pressed, never that it has
// been released. A lower case key is therefore a click: the key is released
// after ClickFrames frames. An upper case key holds the key down until it is
// typed again.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/term"
	xterm "golang.org/x/term"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/govern"
	"github.com/jetsetilly/microvaders/gui"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/logger"
	"github.com/jetsetilly/microvaders/userinput"
)

// ClickFrames is the number of frames a clicked key is held for.
const ClickFrames = 6

// the read timeout of the tty. the reading goroutine checks for the end of
// the terminal this often.
const readTimeout = 100 * time.Millisecond

// Terminal is an ANSI terminal implementation of the gui.GUI interface.
type Terminal struct {
	// tty is nil if the terminal was created with NewTerminalWithIO()
	tty *term.Term

	input  io.Reader
	output io.Writer

	userinput chan userinput.Event

	// reader goroutine is stopped by closing done. it closes finished on exit
	done     chan struct{}
	finished chan struct{}

	crit struct {
		sync.Mutex
		state  govern.State
		halted error

		// keys held by an upper case key press
		held map[string]bool

		// keys that will be released after the number of frames
		clicks map[string]int
	}

	visible bool
}

// NotATerminal is returned by NewTerminal when the output is a file that is
// not a terminal.
const NotATerminal = "terminal: output is not a terminal"

// NewTerminal opens the controlling terminal and puts it into cbreak mode.
// If output is an *os.File it must be a terminal.
func NewTerminal(output io.Writer) (*Terminal, error) {
	if f, ok := output.(*os.File); ok && !xterm.IsTerminal(int(f.Fd())) {
		return nil, curated.Errorf(NotATerminal)
	}

	tty, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf("terminal: %v", err)
	}

	if err := tty.SetReadTimeout(readTimeout); err != nil {
		_ = tty.Restore()
		_ = tty.Close()
		return nil, curated.Errorf("terminal: %v", err)
	}

	return newTerminal(tty, tty, output), nil
}

// NewTerminalWithIO creates a terminal that reads key presses from input
// rather than a tty. The input is read until it returns an error.
func NewTerminalWithIO(input io.Reader, output io.Writer) *Terminal {
	return newTerminal(nil, input, output)
}

func newTerminal(tty *term.Term, input io.Reader, output io.Writer) *Terminal {
	trm := &Terminal{
		tty:       tty,
		input:     input,
		output:    output,
		userinput: make(chan userinput.Event, gui.UserInputQueueLen),
		done:      make(chan struct{}),
		finished:  make(chan struct{}),
	}
	trm.crit.state = govern.Initialising
	trm.crit.held = make(map[string]bool)
	trm.crit.clicks = make(map[string]int)

	go trm.read()

	return trm
}

// read keys from the input and forward them as user input events.
func (trm *Terminal) read() {
	defer close(trm.finished)

	b := make([]byte, 32)
	for {
		select {
		case <-trm.done:
			return
		default:
		}

		n, err := trm.input.Read(b)
		for _, k := range decode(b[:n]) {
			trm.key(k)
		}

		if err != nil {
			// a tty with a read timeout returns EOF when there is no input
			if trm.tty != nil && errors.Is(err, io.EOF) {
				continue
			}
			if !errors.Is(err, io.EOF) {
				logger.Logf(logger.Allow, "terminal", "%v", err)
			}
			return
		}
	}
}

// send user input to the emulation. input is dropped if the emulation is
// not keeping up.
func (trm *Terminal) send(ev userinput.Event) {
	select {
	case trm.userinput <- ev:
	default:
		logger.Log(logger.Allow, "terminal", "user input dropped")
	}
}

func (trm *Terminal) key(k key) {
	down := userinput.EventKeyboard{Key: k.name, Mod: k.mod, Down: true}
	up := userinput.EventKeyboard{Key: k.name, Mod: k.mod, Down: false}

	// keys that do not control a button act on the press only
	if !userinput.IsButtonKey(k.name) {
		trm.send(down)
		trm.send(up)
		return
	}

	trm.crit.Lock()
	defer trm.crit.Unlock()

	if k.toggle {
		delete(trm.crit.clicks, k.name)
		if trm.crit.held[k.name] {
			delete(trm.crit.held, k.name)
			trm.send(up)
		} else {
			trm.crit.held[k.name] = true
			trm.send(down)
		}
		return
	}

	// a click of a held key has no effect
	if trm.crit.held[k.name] {
		return
	}

	// clicking a key that is still down from an earlier click extends the
	// click
	if _, ok := trm.crit.clicks[k.name]; !ok {
		trm.send(down)
	}
	trm.crit.clicks[k.name] = ClickFrames
}

// release clicked keys that have been held for long enough.
func (trm *Terminal) release() {
	trm.crit.Lock()
	defer trm.crit.Unlock()

	for k, n := range trm.crit.clicks {
		n--
		if n > 0 {
			trm.crit.clicks[k] = n
			continue
		}
		delete(trm.crit.clicks, k)
		trm.send(userinput.EventKeyboard{Key: k, Down: false})
	}
}

// NewFrame implements the hardware.FrameListener interface.
func (trm *Terminal) NewFrame(f hardware.Frame) error {
	trm.release()

	trm.crit.Lock()
	state := trm.crit.state
	halted := trm.crit.halted
	trm.crit.Unlock()

	if !trm.visible {
		return nil
	}

	_, err := io.WriteString(trm.output, render(f, state, halted))
	if err != nil {
		return curated.Errorf("terminal: %v", err)
	}
	return nil
}

// SetFeature implements the gui.GUI interface.
func (trm *Terminal) SetFeature(request gui.FeatureReq, args ...gui.FeatureReqData) error {
	switch request {
	case gui.ReqState:
		trm.crit.Lock()
		trm.crit.state = args[0].(govern.State)
		trm.crit.Unlock()

	case gui.ReqHalted:
		trm.crit.Lock()
		trm.crit.halted, _ = args[0].(error)
		trm.crit.Unlock()

	case gui.ReqSetVisibility:
		show := args[0].(bool)
		if show && !trm.visible {
			io.WriteString(trm.output, csiClear+csiHideCursor)
		} else if !show && trm.visible {
			io.WriteString(trm.output, csiClear+csiHome+csiShowCursor)
		}
		trm.visible = show

	default:
		return curated.Errorf(gui.UnsupportedGuiFeature, request)
	}

	return nil
}

// UserInput implements the gui.GUI interface.
func (trm *Terminal) UserInput() <-chan userinput.Event {
	return trm.userinput
}

// Service implements the gui.GUI interface. The terminal is serviced by its
// own goroutine so there is nothing to do.
func (trm *Terminal) Service() {
}

// Destroy implements the gui.GUI interface. The terminal is returned to the
// mode it was in before NewTerminal() was called.
func (trm *Terminal) Destroy(output io.Writer) {
	close(trm.done)
	if trm.tty != nil {
		<-trm.finished
	}

	io.WriteString(trm.output, normalPen+csiShowCursor+"\r\n")

	if trm.tty == nil {
		return
	}
	if err := trm.tty.Restore(); err != nil {
		fmt.Fprintln(output, err)
	}
	if err := trm.tty.Close(); err != nil {
		fmt.Fprintln(output, err)
	}
}
