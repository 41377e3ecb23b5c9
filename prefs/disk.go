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

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// WarningBoilerPlate is written as the first line of every prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// KeySep separates the key from the value in the prefs file.
const KeySep = " :: "

// DefaultPrefsFile is the name of the prefs file in the resources directory.
const DefaultPrefsFile = "preferences"

// Disk represents preference values as stored on disk. Values are added to a
// Disk instance with Add() and are saved and loaded together.
//
// More than one Disk instance can point to the same file. Save() preserves
// entries in the file that belong to other instances.
//
// Values taken from the command line stack are not loaded from or saved to
// the file. The file keeps the value it had before the override.
type Disk struct {
	path    string
	entries map[string]Pref

	// value of each overridden entry before the command line was applied
	overridden map[string]string
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for prefs file")
	}
	return &Disk{
		path:       path,
		entries:    make(map[string]Pref),
		overridden: make(map[string]string),
	}, nil
}

// Add preference value to list of values to store/load from Disk. If the
// preference is on the command line stack, the command line value is applied
// immediately.
func (dsk *Disk) Add(key string, p Pref) error {
	if strings.Contains(key, KeySep) || strings.TrimSpace(key) != key || key == "" {
		return fmt.Errorf("prefs: illegal key (%s)", key)
	}
	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		dsk.overridden[key] = p.String()
		if err := p.Set(v); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}

	return nil
}

// Path returns the path of the prefs file.
func (dsk *Disk) Path() string {
	return dsk.path
}

func (dsk *Disk) String() string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, KeySep, dsk.entries[k]))
	}
	return s.String()
}

// Reset all preference values to their zero value.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}
	return nil
}

// read the prefs file into a map of key/values. A missing file is not an
// error.
func (dsk *Disk) read() (map[string]string, error) {
	data := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return data, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// first line must be the boilerplate warning
	if !scanner.Scan() {
		return data, nil
	}
	if scanner.Text() != WarningBoilerPlate {
		return nil, fmt.Errorf("prefs: not a valid prefs file (%s)", dsk.path)
	}

	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), KeySep)
		if !ok {
			continue
		}
		data[k] = v
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return data, nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	data, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		if o, ok := dsk.overridden[k]; ok {
			if _, ok := data[k]; !ok {
				data[k] = o
			}
			continue
		}
		data[k] = p.String()
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(k)
		s.WriteString(KeySep)
		s.WriteString(data[k])
		s.WriteString("\n")
	}

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o600); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. If the file doesn't exist and saveOnFail
// is true then the current values are saved to create the file.
func (dsk *Disk) Load(saveOnFail bool) error {
	if _, err := os.Stat(dsk.path); errors.Is(err, fs.ErrNotExist) {
		if saveOnFail {
			return dsk.Save()
		}
		return nil
	}

	data, err := dsk.read()
	if err != nil {
		return err
	}

	for k, v := range data {
		if _, ok := dsk.overridden[k]; ok {
			continue
		}
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}
