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

package main

import (
	"errors"
	"io"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/periphio"
	"github.com/jetsetilly/microvaders/hardware/preferences"
	"github.com/jetsetilly/microvaders/test"
)

func TestSplitPins(t *testing.T) {
	names := periphio.DefaultPinNames

	test.ExpectSuccess(t, splitPins(names.Buttons[:], "GPIO2, GPIO3"))
	test.ExpectEquality(t, names.Buttons[0], "GPIO2")
	test.ExpectEquality(t, names.Buttons[1], "GPIO3")

	test.ExpectFailure(t, splitPins(names.Rows[:], "GPIO2,GPIO3"))
}

type frontendStub struct {
	serviced  atomic.Int32
	destroyed atomic.Bool
}

func (fe *frontendStub) Service() {
	fe.serviced.Add(1)
}

func (fe *frontendStub) Destroy(_ io.Writer) {
	fe.destroyed.Store(true)
}

func TestMainThread(t *testing.T) {
	mt := newMainThread()
	code := make(chan int)
	go func() {
		code <- mt.serve()
	}()

	_, err := mt.newFrontend(func() (frontend, error) {
		return nil, errors.New("no display")
	})
	test.ExpectFailure(t, err)

	stub := &frontendStub{}
	fe, err := mt.newFrontend(func() (frontend, error) {
		return stub, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fe.(*frontendStub), stub)

	// the frontend is serviced by the serving goroutine
	deadline := time.Now().Add(time.Second)
	for stub.serviced.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.ExpectSuccess(t, stub.serviced.Load() > 0)

	mt.exit(3)
	test.ExpectEquality(t, <-code, 3)
	test.ExpectSuccess(t, stub.destroyed.Load())
}

func BenchmarkBoard(b *testing.B) {
	p, err := preferences.NewPreferencesFromPath(filepath.Join(b.TempDir(), "prefs"))
	if err != nil {
		b.Fatal(err)
	}

	board, err := hardware.NewBoard(p)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := board.StepFrame(); err != nil {
			b.Fatal(err)
		}
	}
}
