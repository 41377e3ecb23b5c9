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

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/microvaders/performance/limiter"
	"github.com/jetsetilly/microvaders/test"
)

func TestPeriod(t *testing.T) {
	lim := limiter.NewLimiter(100)
	defer lim.End()
	test.ExpectEquality(t, lim.Period(), 10*time.Millisecond)

	lim.SetLimit(0)
	test.ExpectEquality(t, lim.Period(), time.Second)
}

func TestWait(t *testing.T) {
	lim := limiter.NewLimiter(200)
	defer lim.End()

	start := time.Now()
	for i := 0; i < 10; i++ {
		lim.Wait()
	}

	// the first tick is immediate so nine periods must have elapsed at least
	test.ExpectSuccess(t, time.Since(start) >= 9*lim.Period()-lim.Period()/2)
}
