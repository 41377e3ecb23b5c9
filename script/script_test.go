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

package script_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/preferences"
	"github.com/jetsetilly/microvaders/script"
	"github.com/jetsetilly/microvaders/test"
)

func newBoard(t *testing.T) *hardware.Board {
	t.Helper()
	p, err := preferences.NewPreferencesFromPath(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.ZeroSeed.Set(true))
	b, err := hardware.NewBoard(p)
	test.DemandSuccess(t, err)
	return b
}

func TestParse(t *testing.T) {
	scr, err := script.Parse(strings.NewReader(`
# move right and fire
click B
	wait 50ms

frames 3
expect run running
log "all done"
`))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, scr.Len(), 5)
}

func TestSyntaxErrors(t *testing.T) {
	bad := []string{
		"jump",
		"press C",
		"press",
		"click A forever",
		"wait soon",
		"frames many",
		"expect ship",
		"expect lives 3",
		"expect enemies none",
		"log \"unterminated",
	}

	for _, s := range bad {
		_, err := script.Parse(strings.NewReader(s))
		test.ExpectSuccess(t, curated.Is(err, script.SyntaxError))
	}
}

func TestRun(t *testing.T) {
	b := newBoard(t)
	r := script.NewRunner(b)

	scr, err := script.Parse(strings.NewReader(`
click B
wait 100ms
expect ship 3
expect enemies 4
expect shots 0
expect run Running
click A
click A
expect ship 1
`))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, r.Run(scr))
	test.ExpectEquality(t, r.Digest().FrameNum(), b.FrameNum())
}

func TestFailedExpectation(t *testing.T) {
	b := newBoard(t)
	r := script.NewRunner(b)

	scr, err := script.Parse(strings.NewReader("frames 1\nexpect ship 0\n"))
	test.DemandSuccess(t, err)

	err = r.Run(scr)
	test.ExpectSuccess(t, curated.Is(err, script.Failed))
	test.ExpectEquality(t, err.Error(), "script: line 2: expected ship 0 but found 2")
}

func TestDigestIsRepeatable(t *testing.T) {
	const src = "click B\nclick B\nwait 250ms\n"

	var hashes []string
	for i := 0; i < 2; i++ {
		r := script.NewRunner(newBoard(t))
		scr, err := script.Parse(strings.NewReader(src))
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, r.Run(scr))
		hashes = append(hashes, r.Digest().Hash())
	}
	test.ExpectEquality(t, hashes[0], hashes[1])

	r := script.NewRunner(newBoard(t))
	scr, err := script.Parse(strings.NewReader(fmt.Sprintf("%sexpect digest %s\n", src, hashes[0])))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Run(scr))
}

func TestScreenshot(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "a screenshot.png")

	r := script.NewRunner(newBoard(t))
	scr, err := script.Parse(strings.NewReader(fmt.Sprintf("frames 1\nscreenshot '%s'\n", fn)))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, r.Run(scr))

	_, err = os.Stat(fn)
	test.ExpectSuccess(t, err)
}
