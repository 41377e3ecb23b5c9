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

package recorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/jetsetilly/microvaders/hardware/preferences"
	"github.com/sigurn/crc8"
)

const fieldSep = ", "

// entry format
// ------------
//
// <time>, <button>, <press|release>, <frame>, <digest>, <crc>
const (
	fieldTime int = iota
	fieldButton
	fieldPressed
	fieldFrame
	fieldHash
	fieldCRC
	numFields
)

const (
	valuePress   = "press"
	valueRelease = "release"
)

// recording file header format
// ----------------------------
//
// microvaders recording
// <description of preferences>
const (
	lineMagic int = iota
	lineConfig
	numHeaderLines
)

const magic = "microvaders recording"

var table = crc8.MakeTable(crc8.CRC8_MAXIM)

// checksum returns the crc field for the other fields of an entry.
func checksum(fields string) string {
	return fmt.Sprintf("%02x", crc8.Checksum([]byte(fields), table))
}

// describe the preferences that affect the outcome of a run.
func describe(p *preferences.Preferences) string {
	cfg := p.Config()
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("press=%d release=%d activeLow=%v queue=%d ",
		cfg.PressThreshold, cfg.ReleaseThreshold, cfg.ActiveLow, cfg.QueueCapacity))
	s.WriteString(fmt.Sprintf("display=%d debounce=%d physics=%d ",
		cfg.DisplayPeriod.Nanoseconds(), cfg.DebouncePeriod.Nanoseconds(), cfg.PhysicsPeriod.Nanoseconds()))
	s.WriteString(fmt.Sprintf("bounce=%d frame=%d", p.Bounce.Get().(time.Duration).Nanoseconds(), p.FramePeriod().Nanoseconds()))
	return s.String()
}
