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
	"github.com/jetsetilly/microvaders/userinput"
)

// control codes read from the terminal.
const (
	keyInterrupt = 3  // end-of-text character
	keyCtrlQ     = 17 // device control 1
	keyEsc       = 27
	keySpace     = 32
)

// key is a key decoded from the terminal's input. The terminal only reports
// key presses.
type key struct {
	name string
	mod  userinput.KeyMod

	// an upper case letter. holds or releases the key rather than clicking it
	toggle bool
}

// escape sequences following the CSI. the final byte of the sequence is
// included.
var csi = map[string]string{
	"A":   "Up",
	"B":   "Down",
	"C":   "Right",
	"D":   "Left",
	"15~": "F5",
	"24~": "F12",
}

// decode the bytes from one read of the terminal. A lone escape byte is the
// escape key. Unrecognised sequences are ignored.
func decode(b []byte) []key {
	var keys []key

	for i := 0; i < len(b); i++ {
		c := b[i]

		switch {
		case c == keyEsc:
			if i+1 >= len(b) {
				keys = append(keys, key{name: "Escape"})
				continue
			}
			if b[i+1] != '[' && b[i+1] != 'O' {
				keys = append(keys, key{name: "Escape"})
				continue
			}

			// the sequence ends with a byte in the range 0x40 to 0x7e
			j := i + 2
			for j < len(b) && (b[j] < 0x40 || b[j] > 0x7e) {
				j++
			}
			if j >= len(b) {
				return keys
			}

			if name, ok := csi[string(b[i+2:j+1])]; ok {
				keys = append(keys, key{name: name})
			}
			i = j

		case c == keyInterrupt || c == keyCtrlQ:
			keys = append(keys, key{name: "Q", mod: userinput.KeyModCtrl})

		case c >= 'a' && c <= 'z':
			keys = append(keys, key{name: string(c - 'a' + 'A')})

		case c >= 'A' && c <= 'Z':
			keys = append(keys, key{name: string(c), toggle: true})

		case c == keySpace:
			keys = append(keys, key{name: "Space"})
		}
	}

	return keys
}
