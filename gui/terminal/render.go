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

package terminal

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/microvaders/govern"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/clocks"
	"github.com/jetsetilly/microvaders/screenshot"
)

// ANSI control sequences.
const (
	csiHome       = "\033[H"
	csiClear      = "\033[2J"
	csiClearLine  = "\033[K"
	csiHideCursor = "\033[?25l"
	csiShowCursor = "\033[?25h"
	normalPen     = "\033[0m"
)

// an LED is drawn with two characters so that it is roughly square.
const led = "██"

// pen returns the ANSI sequence for a 24bit foreground colour matching the
// colour of an LED at brightness b.
func pen(b uint8) string {
	c := screenshot.LEDColor(b)
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// render the frame and a status line. the cursor is returned to the top left
// of the terminal before drawing so that each frame overwrites the last.
func render(f hardware.Frame, state govern.State, halted error) string {
	s := strings.Builder{}
	s.WriteString(csiHome)

	for _, row := range f.Perceived {
		s.WriteString(" ")
		for _, b := range row {
			s.WriteString(pen(b))
			s.WriteString(led)
			s.WriteString(" ")
		}
		s.WriteString(normalPen)
		s.WriteString(csiClearLine)
		s.WriteString("\r\n")
	}

	s.WriteString("\r\n")
	switch {
	case halted != nil:
		s.WriteString(fmt.Sprintf(" halted: %v", halted))
	case state == govern.Paused:
		s.WriteString(" paused")
	default:
		s.WriteString(fmt.Sprintf(" %s %s", clocks.Format(f.Time), f.State.String()))
	}
	s.WriteString(csiClearLine)
	s.WriteString("\r\n")

	return s.String()
}
