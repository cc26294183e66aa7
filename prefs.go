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

// Prefs holds the contents of an EQN_PREFS record: the typesizes,
// spacing values and style overrides the equation was authored with.
// The tree builder does not consume these values; they are metadata
// for the translation stage.
type Prefs struct {
	Options uint8

	// Sizes are the typesize values, as dimension strings such as
	// "12pt", indexed by [Typesize].
	Sizes []string

	// Spaces are the inter-element spacing values, as dimension
	// strings.
	Spaces []string

	// Styles are the per-size style overrides.
	Styles []PrefStyle
}

// PrefStyle is one style override in an EQN_PREFS record.
type PrefStyle struct {
	// Style is the style selector.  Zero means no override, and no
	// value byte is stored.
	Style uint8

	// Value is the override value, meaningful only if Style is
	// nonzero.
	Value uint8
}

func (c *cursor) readPrefs() (*Prefs, error) {
	p := &Prefs{}

	opts, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	p.Options = opts

	n, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	p.Sizes, err = c.readDimensions(int(n))
	if err != nil {
		return nil, err
	}

	n, err = c.ReadUint8()
	if err != nil {
		return nil, err
	}
	p.Spaces, err = c.readDimensions(int(n))
	if err != nil {
		return nil, err
	}

	n, err = c.ReadUint8()
	if err != nil {
		return nil, err
	}
	p.Styles = make([]PrefStyle, n)
	for i := range p.Styles {
		style, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		p.Styles[i].Style = style
		if style != 0 {
			val, err := c.ReadUint8()
			if err != nil {
				return nil, err
			}
			p.Styles[i].Value = val
		}
	}

	return p, nil
}
