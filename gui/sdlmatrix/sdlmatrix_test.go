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

package sdlmatrix

import (
	"errors"
	"testing"
	"time"

	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/govern"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/test"
)

func TestWindowTitle(t *testing.T) {
	f := hardware.Frame{Num: 60, Time: time.Second, State: *game.NewState()}

	test.ExpectEquality(t, windowTitle(f, govern.Running, nil), "Microvaders 1.000000s running")
	test.ExpectEquality(t, windowTitle(f, govern.Paused, nil), "Microvaders [paused]")
	test.ExpectEquality(t, windowTitle(f, govern.Running, errors.New("storm")), "Microvaders [halted]")
}
