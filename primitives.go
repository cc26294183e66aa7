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
	"golang.org/x/text/encoding"
)

// readNudge reads a (dx, dy) nudge.  The narrow form is two signed
// bytes.  If either byte is the sentinel value -128, two further bytes
// follow and the four bytes form two little-endian 16-bit values.
func (c *cursor) readNudge() (*Nudge, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return nil, err
	}
	if b[0] != 0x80 && b[1] != 0x80 {
		return &Nudge{DX: int16(int8(b[0])), DY: int16(int8(b[1]))}, nil
	}
	b2, err := c.ReadBytes(2)
	if err != nil {
		return nil, err
	}
	return &Nudge{
		DX: int16(uint16(b[0]) | uint16(b[1])<<8),
		DY: int16(uint16(b2[0]) | uint16(b2[1])<<8),
	}, nil
}

// readVariation reads a template variation value.  The low byte comes
// first; if its high bit is set, a second byte holds the upper bits.
func (c *cursor) readVariation() (uint16, error) {
	lo, err := c.ReadUint8()
	if err != nil {
		return 0, err
	}
	if lo&0x80 == 0 {
		return uint16(lo), nil
	}
	hi, err := c.ReadUint8()
	if err != nil {
		return 0, err
	}
	return uint16(lo&0x7F) | uint16(hi)<<8, nil
}

// readExpandableUint reads an unsigned integer in the expandable
// encoding used for FUTURE record lengths: one byte, or a 0xFF prefix
// followed by a little-endian 16-bit value.
func (c *cursor) readExpandableUint() (uint16, error) {
	b, err := c.ReadUint8()
	if err != nil {
		return 0, err
	}
	if b < 0xFF {
		return uint16(b), nil
	}
	return c.ReadUint16()
}

// readString reads a NUL-terminated string and decodes it with the
// given text decoder.
func (c *cursor) readString(dec *encoding.Decoder) (string, error) {
	pos := c.Pos()
	raw, err := c.ReadStringRaw()
	if err != nil {
		return "", err
	}
	s, err := dec.Bytes(raw)
	if err != nil {
		return "", c.errAt(pos, err)
	}
	return string(s), nil
}

// Units of measurement for dimension values, indexed by the leading
// nibble of the value.
var dimUnits = [...]string{"in", "cm", "pt", "pc", "%"}

// nibbleReader hands out the nibbles of a byte stream, high nibble
// first.
type nibbleReader struct {
	c    *cursor
	cur  byte
	have bool
}

func (r *nibbleReader) next() (byte, error) {
	if r.have {
		r.have = false
		return r.cur & 0x0F, nil
	}
	b, err := r.c.ReadUint8()
	if err != nil {
		return 0, err
	}
	r.cur = b
	r.have = true
	return b >> 4, nil
}

// readDimensions reads n dimension values from a packed nibble stream.
// Each value starts with a unit nibble, followed by character nibbles
// (0-9 digit, 0xA decimal point, 0xB minus sign) up to a 0xF
// terminator.  The stream is byte-aligned after the last value, so a
// trailing pad nibble is discarded.
func (c *cursor) readDimensions(n int) ([]string, error) {
	r := &nibbleReader{c: c}
	res := make([]string, n)
	for i := range res {
		pos := c.Pos()
		unit, err := r.next()
		if err != nil {
			return nil, err
		}
		if int(unit) >= len(dimUnits) {
			return nil, c.errAt(pos, errBadUnit)
		}
		var text []byte
		for {
			nib, err := r.next()
			if err != nil {
				return nil, err
			}
			if nib == 0xF {
				break
			}
			switch {
			case nib <= 9:
				text = append(text, '0'+nib)
			case nib == 0xA:
				text = append(text, '.')
			case nib == 0xB:
				text = append(text, '-')
			default:
				return nil, c.errAt(pos, errBadNibble)
			}
		}
		if len(text) == 0 {
			return nil, c.errAt(pos, errEmptyDim)
		}
		res[i] = string(text) + dimUnits[unit]
	}
	return res, nil
}
