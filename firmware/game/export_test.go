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

package game

// FillShots fills the shot buffer with shots that do not occupy the row the
// ship fires from. The buffer cannot be filled through play.
func FillShots(s *State) {
	s.numShots = 0
	for i := range s.shots {
		s.shots[i] = Shot{X: i % Width, Y: i % ShotRow}
		s.numShots++
	}
}
