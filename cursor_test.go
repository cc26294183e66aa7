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
	"bytes"
	"errors"
	"testing"
)

func TestCursorReads(t *testing.T) {
	c := newCursor([]byte{0x01, 0x34, 0x12, 'a', 'b', 'c', 0, 0xFF})

	b, err := c.ReadUint8()
	if err != nil || b != 0x01 {
		t.Fatalf("ReadUint8() = %d, %v", b, err)
	}
	x, err := c.ReadUint16()
	if err != nil || x != 0x1234 {
		t.Fatalf("ReadUint16() = %#x, %v", x, err)
	}
	s, err := c.ReadStringRaw()
	if err != nil || !bytes.Equal(s, []byte("abc")) {
		t.Fatalf("ReadStringRaw() = %q, %v", s, err)
	}
	if c.Pos() != 7 {
		t.Errorf("Pos() = %d, want 7", c.Pos())
	}
	if c.AtEnd() {
		t.Error("AtEnd() = true before end of data")
	}
	if _, err := c.ReadUint8(); err != nil {
		t.Fatal(err)
	}
	if !c.AtEnd() {
		t.Error("AtEnd() = false at end of data")
	}
}

func TestCursorTruncated(t *testing.T) {
	type testCase struct {
		name string
		data []byte
		read func(c *cursor) error
		pos  int64
	}
	cases := []testCase{
		{
			name: "uint8",
			data: []byte{},
			read: func(c *cursor) error { _, err := c.ReadUint8(); return err },
			pos:  0,
		},
		{
			name: "uint16",
			data: []byte{0x12},
			read: func(c *cursor) error { _, err := c.ReadUint16(); return err },
			pos:  0,
		},
		{
			name: "bytes",
			data: []byte{1, 2, 3},
			read: func(c *cursor) error { _, err := c.ReadBytes(4); return err },
			pos:  0,
		},
		{
			name: "string",
			data: []byte{'a', 'b'},
			read: func(c *cursor) error { _, err := c.ReadStringRaw(); return err },
			pos:  0,
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			c := newCursor(test.data)
			err := test.read(c)

			var mErr *MalformedError
			if !errors.As(err, &mErr) {
				t.Fatalf("error = %v, want *MalformedError", err)
			}
			if mErr.Pos != test.pos {
				t.Errorf("error position = %d, want %d", mErr.Pos, test.pos)
			}
			if c.Pos() != test.pos {
				t.Errorf("cursor advanced to %d on failed read", c.Pos())
			}
		})
	}
}
