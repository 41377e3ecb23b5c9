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

// Package userinput handles input from the real hardware that the user is
// using to control the emulated board.
//
// It can be thought of as a translation layer between the frontend and the
// buttons package of the board. Frontends convert their native events to the
// Event types of this package and pass them to Controllers.HandleUserInput().
// Keys that map to the board's buttons are pushed to the board. Keys that
// control the emulation itself are returned to the frontend as an Action.
//
// The SDL frontend was the first to be written and so there is a bias towards
// SDL key names.
package userinput
