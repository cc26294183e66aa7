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

import "bytes"

// cursor reads sequentially from an immutable byte slice.  Every read
// either succeeds as a whole and advances the position, or fails with
// a *MalformedError and leaves the position unchanged.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// Pos returns the current read position.
func (c *cursor) Pos() int64 {
	return int64(c.pos)
}

// AtEnd reports whether all input has been consumed.
func (c *cursor) AtEnd() bool {
	return c.pos >= len(c.data)
}

func (c *cursor) errAt(pos int64, err error) error {
	return &MalformedError{Pos: pos, Err: err}
}

// ReadUint8 reads a single byte.
func (c *cursor) ReadUint8() (uint8, error) {
	if c.pos >= len(c.data) {
		return 0, c.errAt(c.Pos(), errUnexpectedEnd)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadUint16 reads a little-endian 16-bit value.
func (c *cursor) ReadUint16() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, c.errAt(c.Pos(), errUnexpectedEnd)
	}
	x := uint16(c.data[c.pos]) | uint16(c.data[c.pos+1])<<8
	c.pos += 2
	return x, nil
}

// ReadBytes reads n bytes.  The returned slice aliases the input
// buffer and must not be modified.
func (c *cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		return nil, c.errAt(c.Pos(), errUnexpectedEnd)
	}
	res := c.data[c.pos : c.pos+n]
	c.pos += n
	return res, nil
}

// ReadStringRaw reads bytes up to and including the next NUL and
// returns them without the terminator.  A missing terminator is an
// error.
func (c *cursor) ReadStringRaw() ([]byte, error) {
	k := bytes.IndexByte(c.data[c.pos:], 0)
	if k < 0 {
		return nil, c.errAt(c.Pos(), errMissingNul)
	}
	res := c.data[c.pos : c.pos+k]
	c.pos += k + 1
	return res, nil
}
