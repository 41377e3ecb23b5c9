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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/microvaders/prefs"
	"github.com/jetsetilly/microvaders/test"
)

func cmpPrefsFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("true"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestInt(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))

	// string conversion to int
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "number :: 10\nnumberB :: 99\n")

	// failure conditions
	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
}

func TestDuration(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var d prefs.Duration
	test.ExpectSuccess(t, dsk.Add("period", &d))
	test.ExpectSuccess(t, d.Set("5ms"))
	test.ExpectEquality(t, d.Get().(time.Duration), 5*time.Millisecond)

	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "period :: 5ms\n")

	test.ExpectSuccess(t, d.Reset())
	test.ExpectEquality(t, d.Get().(time.Duration), time.Duration(0))

	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, d.Get().(time.Duration), 5*time.Millisecond)

	test.ExpectFailure(t, d.Set("five"))
}

func TestGeneric(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var w, h int

	v := prefs.NewGeneric(
		func(s string) error {
			_, err := fmt.Sscanf(s, "%d,%d", &w, &h)
			return err
		},
		func() string {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)
	test.ExpectSuccess(t, dsk.Add("generic", v))

	w = 1
	h = 2
	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "generic :: 1,2\n")

	w = 0
	h = 0

	// reload them from disk
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, w, 1)
	test.ExpectEquality(t, h, 2)
}

func TestSharedFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	// a new disk instance using the same file
	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	// the file contains the values set by both disk instances
	cmpPrefsFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestLoadSaveOnFail(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, v.Set(3))

	// file does not exist and will not be created
	test.ExpectSuccess(t, dsk.Load(false))
	_, err = os.Stat(fn)
	test.ExpectFailure(t, err)

	// file does not exist but will be created
	test.ExpectSuccess(t, dsk.Load(true))
	cmpPrefsFile(t, fn, "number :: 3\n")
}

func TestIllegalKey(t *testing.T) {
	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectFailure(t, dsk.Add("", &v))
	test.ExpectFailure(t, dsk.Add(" padded", &v))
	test.ExpectFailure(t, dsk.Add("a :: b", &v))
}

func TestCommandLineOverride(t *testing.T) {
	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	prefs.PushCommandLineStack("firmware.release::12; unknown::1")
	defer prefs.PopCommandLineStack()

	var v prefs.Int
	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, dsk.Add("firmware.release", &v))
	test.ExpectEquality(t, v.Get().(int), 12)

	// the file is created with the value from before the override and
	// loading does not undo the override
	test.ExpectSuccess(t, dsk.Load(true))
	test.ExpectEquality(t, v.Get().(int), 12)

	var w prefs.Int
	other, err := prefs.NewDisk(dsk.Path())
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, other.Add("firmware.release", &w))
	test.ExpectSuccess(t, other.Load(false))
	test.ExpectEquality(t, w.Get().(int), 10)
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("123456789"))
	test.ExpectEquality(t, s.String(), "123456789")

	// setting maximum length will crop the existing string
	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "12345")

	// unsetting a maximum length will not result in cropped string
	// infomration reappearing
	s.SetMaxLen(0)
	test.ExpectEquality(t, s.String(), "12345")

	// set string after setting a maximum length will result in the set string
	// being cropped
	s.SetMaxLen(3)
	test.ExpectSuccess(t, s.Set("abcdefghi"))
	test.ExpectEquality(t, s.String(), "abc")
}

func TestHooks(t *testing.T) {
	var v prefs.Int

	var pre, post int
	v.SetHookPre(func(nv prefs.Value) error {
		pre = nv.(int)
		if pre < 0 {
			return fmt.Errorf("negative")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		post = nv.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(4))
	test.ExpectEquality(t, pre, 4)
	test.ExpectEquality(t, post, 4)

	// pre hook prevents the value being stored
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 4)
	test.ExpectEquality(t, post, 4)
}
