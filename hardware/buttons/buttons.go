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

package buttons

import (
	"fmt"
	"time"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/input"
)

// Sentinel error patterns.
const (
	PushedQueueFull = "buttons: pushed event queue is full: input dropped"
	RecorderActive  = "buttons: attach playback: a recorder is already attached"
	PlaybackActive  = "buttons: attach recorder: a playback is already attached"
)

// Event is a change in the position of one of the switches.
type Event struct {
	Button  input.Button
	Pressed bool
}

func (ev Event) String() string {
	if ev.Pressed {
		return fmt.Sprintf("%s press", ev.Button)
	}
	return fmt.Sprintf("%s release", ev.Button)
}

// TimedEvent is an Event with the virtual time it was applied.
type TimedEvent struct {
	Time time.Duration
	Event
}

func (ev TimedEvent) String() string {
	return fmt.Sprintf("%v %s", ev.Time, ev.Event)
}

// Switch is a push-button that the events are applied to.
type Switch interface {
	Set(closed bool)
}

// Clock is the time base of the board.
type Clock interface {
	Now() time.Duration
}

// Recorder implementations mirror every event applied to the switches.
type Recorder interface {
	RecordEvent(TimedEvent) error
}

// Playback implementations supply previously recorded events. GetPlayback()
// returns the next event if it is due at or before the specified time.
type Playback interface {
	GetPlayback(now time.Duration) (TimedEvent, bool, error)
}

// size of the pushed event queue.
const pushedQueueSize = 64

// Buttons is the input system of the board.
type Buttons struct {
	clk      Clock
	switches [input.NumButtons]Switch

	pushed chan Event

	recorder Recorder
	playback Playback

	// number of events applied
	count int
}

// NewButtons is the preferred method of initialisation for the Buttons type.
func NewButtons(clk Clock, switches [input.NumButtons]Switch) *Buttons {
	return &Buttons{
		clk:      clk,
		switches: switches,
		pushed:   make(chan Event, pushedQueueSize),
	}
}

// AttachRecorder attaches a Recorder implementation. A nil value removes the
// recorder.
func (b *Buttons) AttachRecorder(r Recorder) error {
	if r != nil && b.playback != nil {
		return curated.Errorf(PlaybackActive)
	}
	b.recorder = r
	return nil
}

// AttachPlayback attaches a Playback implementation. A nil value removes the
// playback.
func (b *Buttons) AttachPlayback(pb Playback) error {
	if pb != nil && b.recorder != nil {
		return curated.Errorf(RecorderActive)
	}
	b.playback = pb
	return nil
}

// HandleEvent applies the event to the switches immediately. Must only be
// called from the board's goroutine.
//
// Events are ignored while a playback is attached. Returns false if the event
// was ignored.
func (b *Buttons) HandleEvent(ev Event) (bool, error) {
	if b.playback != nil {
		return false, nil
	}
	return true, b.apply(ev)
}

func (b *Buttons) apply(ev Event) error {
	if ev.Button < 0 || int(ev.Button) >= len(b.switches) {
		return curated.Errorf("buttons: no such button (%d)", ev.Button)
	}

	if b.recorder != nil {
		if err := b.recorder.RecordEvent(TimedEvent{Time: b.clk.Now(), Event: ev}); err != nil {
			return err
		}
	}

	b.switches[ev.Button].Set(ev.Pressed)
	b.count++
	return nil
}

// PushEvent queues an event to be applied by the next call to Process(). Safe
// to call from any goroutine. The event is dropped and an error returned if
// the queue is full.
func (b *Buttons) PushEvent(ev Event) error {
	select {
	case b.pushed <- ev:
	default:
		return curated.Errorf(PushedQueueFull)
	}
	return nil
}

// Process applies pushed events and any playback events that are due. Must
// be called by the board at the start of every step.
func (b *Buttons) Process() error {
	if err := b.handlePushed(); err != nil {
		return err
	}
	return b.handlePlayback()
}

func (b *Buttons) handlePushed() error {
	for {
		select {
		case ev := <-b.pushed:
			if _, err := b.HandleEvent(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (b *Buttons) handlePlayback() error {
	if b.playback == nil {
		return nil
	}

	// there may be more than one event due
	for {
		ev, ok, err := b.playback.GetPlayback(b.clk.Now())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := b.apply(ev.Event); err != nil {
			return err
		}
	}
}

// Count returns the number of events applied to the switches.
func (b *Buttons) Count() int {
	return b.count
}
