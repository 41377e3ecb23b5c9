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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with Errorf() and are identified later by the
// pattern they were created with, rather than by the formatted message.
//
//	const Halted = "board: device halted: %v"
//
//	err := curated.Errorf(Halted, cause)
//	if curated.Is(err, Halted) {
//		...
//	}
//
// Has() looks for the pattern anywhere in the chain of curated errors and
// IsAny() answers whether an error was created by this package at all. In
// this project that is the difference between an expected condition (a
// curated error, reported to the user) and an unexpected one.
//
// Patterns should be stored as exported string constants near the code that
// raises them. The chain parts are separated by ": " and adjacent duplicate
// parts are removed from the final message, so wrapping an error with a
// pattern that starts with the same prefix does not stutter:
//
//	timer: timer: period must be positive
//
// is printed as
//
//	timer: period must be positive
package curated
