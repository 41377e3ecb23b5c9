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

// Package debounce turns noisy switch samples into confirmed state changes.
//
// A Debouncer is sampled at a fixed period. A change of state is confirmed
// only after a run of consecutive samples that disagree with the current
// confirmed state. The run required to confirm a press is shorter than the
// run required to confirm a release, because mechanical contacts chatter for
// longer when they open.
package debounce

import "fmt"

// State is the confirmed logical state of a switch.
type State int

// List of valid State values.
const (
	NotPressed State = iota
	Pressed
)

func (s State) String() string {
	switch s {
	case NotPressed:
		return "not pressed"
	case Pressed:
		return "pressed"
	}
	return fmt.Sprintf("unknown state (%d)", int(s))
}

// Reference thresholds, in samples. At the reference sampling period of 5ms
// a press is confirmed after 10ms and a release after 50ms.
const (
	DefaultPressThreshold   = 2
	DefaultReleaseThreshold = 10
)

// Debouncer for a single switch. The zero value is not usable. Use
// NewDebouncer().
type Debouncer struct {
	confirmed State
	count     int

	pressThreshold   int
	releaseThreshold int

	// the raw level that means pressed is low
	activeLow bool
}

// NewDebouncer is the preferred method of initialisation for the Debouncer
// type. Thresholds less than one are treated as one.
func NewDebouncer(pressThreshold int, releaseThreshold int, activeLow bool) *Debouncer {
	return &Debouncer{
		confirmed:        NotPressed,
		pressThreshold:   max(pressThreshold, 1),
		releaseThreshold: max(releaseThreshold, 1),
		activeLow:        activeLow,
	}
}

// Update the debouncer with a raw level sample. Returns the new confirmed
// state and true if the sample completes a transition. Otherwise returns the
// existing confirmed state and false.
func (d *Debouncer) Update(level bool) (State, bool) {
	sample := NotPressed
	if level != d.activeLow {
		sample = Pressed
	}

	if sample == d.confirmed {
		d.count = 0
		return d.confirmed, false
	}

	d.count++

	threshold := d.pressThreshold
	if sample == NotPressed {
		threshold = d.releaseThreshold
	}

	if d.count < threshold {
		return d.confirmed, false
	}

	d.confirmed = sample
	d.count = 0
	return d.confirmed, true
}

// Confirmed returns the last confirmed state.
func (d *Debouncer) Confirmed() State {
	return d.confirmed
}

// Count returns the number of consecutive samples that have disagreed with
// the confirmed state.
func (d *Debouncer) Count() int {
	return d.count
}

func (d *Debouncer) String() string {
	return fmt.Sprintf("%s (%d)", d.confirmed, d.count)
}
