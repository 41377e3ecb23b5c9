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

// Package prefs facilitates the storing of preference values on disk.
// Preference values are typed (Bool, String, Int, Float, Duration and
// Generic) and safe to read from more than one goroutine.
//
// Values are registered with a Disk instance under a key:
//
//	dsk, err := prefs.NewDisk(path)
//	var debounce prefs.Duration
//	err = dsk.Add("firmware.debounce.period", &debounce)
//
// The command line stack allows preference values to be overridden for the
// duration of a single run, with a string of the form:
//
//	"key::value; key::value"
//
// Values on the top of the stack are consumed when the matching key is added
// to a Disk instance.
package prefs
