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

// Package game is the shoot-the-enemies game played on the 5x5 matrix.
//
// The enemies occupy the top row and the ship the bottom row. The ship moves
// left and right and fires shots upwards. A shot that reaches the top row
// destroys the enemy in that column, if there is one. The game is won when
// every enemy has been destroyed.
//
// The State type has no locking of its own. Callers are responsible for
// mutual exclusion.
package game

import (
	"fmt"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/input"
)

// Dimensions of the playfield.
const (
	Width  = 5
	Height = 5
)

// Fixed rows of the playfield.
const (
	EnemyRow = 0
	ShotRow  = 3
	ShipRow  = 4
)

// MaxShots is the maximum number of shots in flight.
const MaxShots = 25

// InitialShipX is the column of the ship at the start of a game.
const InitialShipX = 2

// Sentinel error patterns.
const (
	OutOfBounds = "game: %s out of bounds (%d)"
)

// Run is the run state of the game.
type Run int

// List of valid Run values.
const (
	Running Run = iota
	Victory
)

func (r Run) String() string {
	switch r {
	case Running:
		return "running"
	case Victory:
		return "victory"
	}
	return fmt.Sprintf("unknown run state (%d)", int(r))
}

// Shot is a shot in flight. Y decreases towards the enemy row.
type Shot struct {
	X int
	Y int
}

// State of the game.
type State struct {
	Run     Run
	ShipX   int
	Enemies [Width]bool

	shots    [MaxShots]Shot
	numShots int
}

// NewState is the preferred method of initialisation for the State type.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset the game to its initial state.
func (s *State) Reset() {
	*s = State{
		Run:   Running,
		ShipX: InitialShipX,
	}
	for i := range s.Enemies {
		s.Enemies[i] = true
	}
}

// Shots returns the shots in flight in the order they were fired. The
// returned slice shares memory with the State and must not be kept.
func (s *State) Shots() []Shot {
	return s.shots[:s.numShots]
}

// NumShots returns the number of shots in flight.
func (s *State) NumShots() int {
	return s.numShots
}

// EnemiesAlive returns the number of enemies that have not been destroyed.
func (s *State) EnemiesAlive() int {
	n := 0
	for _, e := range s.Enemies {
		if e {
			n++
		}
	}
	return n
}

// Fire a shot from the ship's column. Returns false if the shot was not
// added, either because an identical shot is already in flight or because
// the maximum number of shots are in flight.
func (s *State) Fire() bool {
	shot := Shot{X: s.ShipX, Y: ShotRow}
	for _, sh := range s.Shots() {
		if sh == shot {
			return false
		}
	}
	if s.numShots >= MaxShots {
		return false
	}
	s.shots[s.numShots] = shot
	s.numShots++
	return true
}

// Handle an input event.
//
// While in Victory any press resets the game and releases are ignored.
// Otherwise button A moves the ship left, button B moves it right, and a
// release of button B fires.
func (s *State) Handle(ev input.Event) {
	if s.Run == Victory {
		if ev.Pressed() {
			s.Reset()
		}
		return
	}

	switch ev {
	case input.ButtonAPressed:
		if s.ShipX > 0 {
			s.ShipX--
		}
	case input.ButtonBPressed:
		if s.ShipX < Width-1 {
			s.ShipX++
		}
	case input.ButtonBReleased:
		s.Fire()
	}
}

// Tick advances the physics of the game by one period. Every shot is
// evaluated once, from the position it had before the tick. Has no effect
// while in Victory.
func (s *State) Tick() {
	if s.Run == Victory {
		return
	}

	n := 0
	for i := 0; i < s.numShots; i++ {
		sh := s.shots[i]
		if sh.X < 0 || sh.X >= Width {
			panic(curated.Errorf(OutOfBounds, "shot column", sh.X))
		}

		if sh.Y == EnemyRow {
			// the shot leaves the playfield whether or not it hits
			s.Enemies[sh.X] = false
			continue
		}

		sh.Y--
		s.shots[n] = sh
		n++
	}

	for i := n; i < s.numShots; i++ {
		s.shots[i] = Shot{}
	}
	s.numShots = n

	if s.EnemiesAlive() == 0 {
		s.Run = Victory
	}
}

func (s *State) String() string {
	return fmt.Sprintf("%s ship=%d enemies=%d shots=%d", s.Run, s.ShipX, s.EnemiesAlive(), s.numShots)
}
