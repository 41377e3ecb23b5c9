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

// Package gui is an abstraction layer for the frontends of the board. The
// GUI interface is implemented by sdlmatrix, a window drawn with SDL, and by
// terminal, which draws the matrix with ANSI escape sequences.
//
// Frontends receive frames through the hardware.FrameListener interface and
// send user input back as userinput.Event values. Requests are made of the
// frontend through SetFeature().
package gui
