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

package random

import (
	"math/rand"
	"time"
)

// the base seed is added to the virtual time of every request.
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock is the source of virtual time used to key random numbers.
type Clock interface {
	Now() time.Duration
}

// Random is a source of random numbers keyed to virtual time.
type Random struct {
	clk  Clock
	salt int64

	// use zero seed rather than the random base seed
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
// The salt differentiates instances that read the same clock.
func NewRandom(clk Clock, salt int64) *Random {
	return &Random{
		clk:  clk,
		salt: salt,
	}
}

func (rnd *Random) rand() *rand.Rand {
	seed := int64(rnd.clk.Now()) ^ (rnd.salt << 32)
	if !rnd.ZeroSeed {
		seed += baseSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Intn returns a non-negative pseudo-random number in [0,n) for the current
// moment in virtual time. It panics if n <= 0.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Bool returns a pseudo-random boolean for the current moment in virtual
// time.
func (rnd *Random) Bool() bool {
	return rnd.rand().Intn(2) == 1
}
