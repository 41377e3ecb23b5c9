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

package gpio

import "fmt"

// Pin is an emulated output line. The zero value is a low line with no name.
type Pin struct {
	name  string
	high  bool
	edges uint64
}

// NewPin is the preferred method of initialisation for the Pin type.
func NewPin(name string) *Pin {
	return &Pin{name: name}
}

// SetHigh implements the firmware.OutputLine interface.
func (p *Pin) SetHigh() {
	if !p.high {
		p.high = true
		p.edges++
	}
}

// SetLow implements the firmware.OutputLine interface.
func (p *Pin) SetLow() {
	if p.high {
		p.high = false
		p.edges++
	}
}

// IsHigh implements the firmware.OutputLine interface.
func (p *Pin) IsHigh() bool {
	return p.high
}

// Edges returns the number of level changes since power on.
func (p *Pin) Edges() uint64 {
	return p.edges
}

// Name of the pin.
func (p *Pin) Name() string {
	return p.name
}

func (p *Pin) String() string {
	if p.high {
		return fmt.Sprintf("%s: high", p.name)
	}
	return fmt.Sprintf("%s: low", p.name)
}
