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

package firmware

import (
	"time"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/debounce"
	"github.com/jetsetilly/microvaders/firmware/queue"
)

// BadConfig is the sentinel error pattern for an invalid Config.
const BadConfig = "firmware: bad config: %s"

// Reference periods of the three timers.
const (
	DefaultDisplayPeriod  = 4 * time.Microsecond
	DefaultDebouncePeriod = 5 * time.Millisecond
	DefaultPhysicsPeriod  = time.Millisecond
)

// Reference priorities of the three handlers.
const (
	DefaultDisplayPriority  = 3
	DefaultDebouncePriority = 2
	DefaultPhysicsPriority  = 2
)

// Config is the build configuration of the firmware. The device accepts no
// configuration once it is running.
type Config struct {
	// debounce thresholds in samples
	PressThreshold   int
	ReleaseThreshold int

	// buttons read low when pressed
	ActiveLow bool

	QueueCapacity int

	DisplayPeriod  time.Duration
	DebouncePeriod time.Duration
	PhysicsPeriod  time.Duration

	DisplayPriority  int
	DebouncePriority int
	PhysicsPriority  int
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		PressThreshold:   debounce.DefaultPressThreshold,
		ReleaseThreshold: debounce.DefaultReleaseThreshold,
		QueueCapacity:    queue.DefaultCapacity,
		DisplayPeriod:    DefaultDisplayPeriod,
		DebouncePeriod:   DefaultDebouncePeriod,
		PhysicsPeriod:    DefaultPhysicsPeriod,
		DisplayPriority:  DefaultDisplayPriority,
		DebouncePriority: DefaultDebouncePriority,
		PhysicsPriority:  DefaultPhysicsPriority,
	}
}

// Validate returns a curated error if the configuration can't be used.
func (cfg Config) Validate() error {
	if cfg.PressThreshold < 1 {
		return curated.Errorf(BadConfig, "press threshold must be at least one")
	}
	if cfg.ReleaseThreshold < 1 {
		return curated.Errorf(BadConfig, "release threshold must be at least one")
	}
	if cfg.QueueCapacity < 1 {
		return curated.Errorf(BadConfig, "queue capacity must be at least one")
	}
	if cfg.DisplayPeriod <= 0 || cfg.DebouncePeriod <= 0 || cfg.PhysicsPeriod <= 0 {
		return curated.Errorf(BadConfig, "timer periods must be positive")
	}
	if cfg.DisplayPriority < 1 || cfg.DebouncePriority < 1 || cfg.PhysicsPriority < 1 {
		return curated.Errorf(BadConfig, "handler priorities must be above the idle loop")
	}
	return nil
}

// Ceiling returns the ceiling priority of the game state: the highest
// priority of the contexts that use it.
func (cfg Config) Ceiling() int {
	return max(cfg.DisplayPriority, cfg.PhysicsPriority)
}
