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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/microvaders/digest"
	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/test"
)

func TestChaining(t *testing.T) {
	a := digest.NewFrames()
	b := digest.NewFrames()

	f := hardware.Frame{Num: 1, Perceived: game.NewState().Frame()}
	test.DemandSuccess(t, a.NewFrame(f))
	test.DemandSuccess(t, b.NewFrame(f))
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectEquality(t, a.FrameNum(), 1)

	// the same frame again changes the hash because the previous hash is
	// part of the data
	first := a.Hash()
	f.Num = 2
	test.DemandSuccess(t, a.NewFrame(f))
	test.ExpectInequality(t, a.Hash(), first)

	// a different frame gives a different hash
	f.Perceived[0][0] = 0
	test.DemandSuccess(t, b.NewFrame(f))
	test.ExpectInequality(t, a.Hash(), b.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), "0000000000000000000000000000000000000000")
}
