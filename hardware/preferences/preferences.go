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

// Package preferences holds the build and host parameters of the emulated
// board. The firmware accepts no configuration once it is running so these
// values are read once, when the board is created.
package preferences

import (
	"time"

	"github.com/jetsetilly/microvaders/firmware"
	"github.com/jetsetilly/microvaders/hardware/gpio"
	"github.com/jetsetilly/microvaders/prefs"
	"github.com/jetsetilly/microvaders/resources"
)

// DefaultFrameRate is the rate at which perceived frames are produced.
const DefaultFrameRate = 60

// Preferences defines and collates all the preference values used by the
// emulated board.
type Preferences struct {
	dsk *prefs.Disk

	// debounce thresholds in samples
	PressThreshold   prefs.Int
	ReleaseThreshold prefs.Int

	// buttons read low when pressed
	ActiveLow prefs.Bool

	QueueCapacity prefs.Int

	DisplayPeriod  prefs.Duration
	DebouncePeriod prefs.Duration
	PhysicsPeriod  prefs.Duration

	// how long the contacts of a switch chatter for after every press and
	// release
	Bounce prefs.Duration

	// the noise of the bouncing switches does not depend on the time the
	// program was started. recordings are always made with a zero seed
	ZeroSeed prefs.Bool

	// the number of perceived frames produced every second of virtual time
	FrameRate prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(pth)
}

// NewPreferencesFromPath is like NewPreferences() but uses the prefs file at
// the specified path.
func NewPreferencesFromPath(pth string) (*Preferences, error) {
	return newPreferences(pth)
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		v   prefs.Pref
	}{
		{"firmware.debounce.press", &p.PressThreshold},
		{"firmware.debounce.release", &p.ReleaseThreshold},
		{"firmware.debounce.activeLow", &p.ActiveLow},
		{"firmware.queue.capacity", &p.QueueCapacity},
		{"firmware.timers.display", &p.DisplayPeriod},
		{"firmware.timers.debounce", &p.DebouncePeriod},
		{"firmware.timers.physics", &p.PhysicsPeriod},
		{"hardware.switch.bounce", &p.Bounce},
		{"hardware.zeroSeed", &p.ZeroSeed},
		{"hardware.frameRate", &p.FrameRate},
	} {
		if err := p.dsk.Add(e.key, e.v); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to the reference values.
func (p *Preferences) SetDefaults() {
	cfg := firmware.DefaultConfig()
	p.PressThreshold.Set(cfg.PressThreshold)
	p.ReleaseThreshold.Set(cfg.ReleaseThreshold)
	p.ActiveLow.Set(cfg.ActiveLow)
	p.QueueCapacity.Set(cfg.QueueCapacity)
	p.DisplayPeriod.Set(cfg.DisplayPeriod)
	p.DebouncePeriod.Set(cfg.DebouncePeriod)
	p.PhysicsPeriod.Set(cfg.PhysicsPeriod)
	p.Bounce.Set(gpio.DefaultBounce)
	p.ZeroSeed.Set(false)
	p.FrameRate.Set(DefaultFrameRate)
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Config returns the firmware configuration described by the preferences.
// Handler priorities are not preferences and are always the reference
// values.
func (p *Preferences) Config() firmware.Config {
	cfg := firmware.DefaultConfig()
	cfg.PressThreshold = p.PressThreshold.Get().(int)
	cfg.ReleaseThreshold = p.ReleaseThreshold.Get().(int)
	cfg.ActiveLow = p.ActiveLow.Get().(bool)
	cfg.QueueCapacity = p.QueueCapacity.Get().(int)
	cfg.DisplayPeriod = p.DisplayPeriod.Get().(time.Duration)
	cfg.DebouncePeriod = p.DebouncePeriod.Get().(time.Duration)
	cfg.PhysicsPeriod = p.PhysicsPeriod.Get().(time.Duration)
	return cfg
}

// FramePeriod returns the virtual time between perceived frames.
func (p *Preferences) FramePeriod() time.Duration {
	r := p.FrameRate.Get().(int)
	if r <= 0 {
		r = DefaultFrameRate
	}
	return time.Second / time.Duration(r)
}
