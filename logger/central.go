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

// Package logger is the central log for the application. Entries are made up
// of a tag and a detail string.
//
// The firmware's trace sink is also implemented here. The trace sink is
// best-effort by nature: it takes a lock and may allocate, so it must never
// be used from a handler with a timing budget.
package logger

import (
	"io"
)

// only allowing one central log for the entire application. there's no need to
// allow more than one log.
var central *Logger

// maximum number of entries in the central logger.
const maxCentral = 256

func init() {
	central = NewLogger(maxCentral)
}

// Log adds an entry to the central logger.
func Log(perm Permission, tag, detail string) {
	central.Log(perm, tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(perm Permission, tag, detail string, args ...any) {
	central.Logf(perm, tag, detail, args...)
}

// Clear all entries from central logger.
func Clear() {
	central.Clear()
}

// Write contents of central logger to io.Writer.
func Write(output io.Writer) {
	central.Write(output)
}

// Tail writes the last N entries to io.Writer.
func Tail(output io.Writer, number int) {
	central.Tail(output, number)
}

// SetEcho prints log entries to io.Writer as they are made.
func SetEcho(output io.Writer) {
	central.SetEcho(output)
}

// BorrowLog gives the provided function the critical section and access to the
// list of log entries.
func BorrowLog(f func([]Entry)) {
	central.BorrowLog(f)
}

// Trace implements the firmware's trace sink. Every emitted message becomes an
// entry in the central log under the trace's tag.
type Trace struct {
	tag  string
	perm Permission
}

// NewTrace is the preferred method of initialisation for the Trace type.
func NewTrace(tag string) Trace {
	return Trace{tag: tag, perm: Allow}
}

// NewTraceWithPermission is like NewTrace but the trace will only log when
// perm allows it.
func NewTraceWithPermission(tag string, perm Permission) Trace {
	return Trace{tag: tag, perm: perm}
}

// Emit implements the firmware.Trace interface.
func (t Trace) Emit(message string) {
	central.Log(t.perm, t.tag, message)
}
