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

// Package modalflag wraps the flag package from the standard library so that
// a command line can be divided into modes. Each mode has its own set of
// flags and can itself declare sub-modes:
//
//	microvaders [flags] [PLAY | TERM | RUN | PI] [mode flags] [args]
//
// A Modes instance is initialised with NewArgs(). Flags and sub-modes are
// then declared and Parse() is called. If sub-modes were declared the chosen
// mode is available through Mode(). Calling NewMode() starts a new flag set
// for the selected mode and Parse() can be called again. The first sub-mode
// is the default, used when the next argument does not name a mode.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PLAY", "TERM")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//	switch md.Mode() {
//	case "PLAY":
//		md.NewMode()
//		scale := md.AddFloat64("scale", 3.0, "window scaling")
//		...
//	}
package modalflag
