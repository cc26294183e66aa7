// seehuhn.de/go/mtef - read MathType MTEF equation data
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mtef

import (
	"errors"
	"strconv"
)

var (
	errMissingNul    = errors.New("string not NUL-terminated")
	errBadNibble     = errors.New("malformed dimension nibble")
	errBadUnit       = errors.New("invalid dimension unit")
	errEmptyDim      = errors.New("empty dimension value")
	errUnexpectedEnd = errors.New("unexpected end of data")
)

// MalformedError indicates that the input is not a valid MTEF stream.
type MalformedError struct {
	Pos int64
	Err error
}

func (err *MalformedError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	return "not valid MTEF data" + middle + tail
}

func (err *MalformedError) Unwrap() error {
	return err.Err
}

// UnsupportedRecordError indicates a record whose byte grammar is not
// known to the decoder.  Since records below tag 100 carry no length
// prefix, such a record cannot be skipped without losing stream
// synchronisation.
type UnsupportedRecordError struct {
	Tag RecordType
	Pos int64
}

func (err *UnsupportedRecordError) Error() string {
	return "unsupported " + err.Tag.String() + " record (at byte " +
		strconv.FormatInt(err.Pos, 10) + ")"
}

// NestingError indicates that the object lists in the stream are
// nested more deeply than the configured limit allows.
type NestingError struct {
	Limit int
	Pos   int64
}

func (err *NestingError) Error() string {
	return "objects nested more than " + strconv.Itoa(err.Limit) +
		" levels deep (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
}

// TableIndexError indicates a reference to a definition table entry
// which does not exist.
type TableIndexError struct {
	Table string // "encoding", "font", "color" or "style"
	Index int
	Len   int
}

func (err *TableIndexError) Error() string {
	return "no " + err.Table + " definition with index " +
		strconv.Itoa(err.Index) + " (table has " +
		strconv.Itoa(err.Len) + " entries)"
}
