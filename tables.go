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

// Tables holds the definitions declared in an MTEF stream.  Each table
// is append-only; entries are stored in order of first appearance and
// referenced from later records by integer index.
//
// References are resolved lazily, at translation time.  A record may
// legitimately reference a definition which only appears later in the
// stream; the reference resolves once the stream has been read to the
// end.
type Tables struct {
	// Encodings is the encoding definition table.  Indices 0 to 3 are
	// the built-in encodings; stream-declared encodings follow.
	Encodings []string

	// Fonts is the font definition table.
	Fonts []FontDef

	// Colors is the color definition table.
	Colors []ColorDef

	// Styles is the font style definition table.
	Styles []FontStyleDef
}

// FontDef is one entry of the font definition table.
type FontDef struct {
	// Encoding is an index into the encoding table.
	Encoding int

	// Name is the platform font name.
	Name string
}

// ColorDef is one entry of the color definition table.
type ColorDef struct {
	Options ColorDefOptions

	// Values are the color channel values: four for CMYK, three for
	// RGB.
	Values []uint16

	// Name is the color name, if Options.HasName() is true.
	Name string
}

// FontStyleDef is one entry of the font style definition table.
type FontStyleDef struct {
	// Font is an index into the font definition table.
	Font int

	// Style is the character style (bold and italic bits).
	Style uint8
}

// The built-in encodings which occupy the first four slots of every
// encoding table.
var builtinEncodings = []string{
	"MTCode",
	"Unknown",
	"Symbol",
	"MTExtra",
}

func newTables() *Tables {
	t := &Tables{}
	t.Encodings = append(t.Encodings, builtinEncodings...)
	return t
}

// Encoding returns the encoding name with the given index.
func (t *Tables) Encoding(i int) (string, error) {
	if i < 0 || i >= len(t.Encodings) {
		return "", &TableIndexError{Table: "encoding", Index: i, Len: len(t.Encodings)}
	}
	return t.Encodings[i], nil
}

// Font returns the font definition with the given index.
func (t *Tables) Font(i int) (FontDef, error) {
	if i < 0 || i >= len(t.Fonts) {
		return FontDef{}, &TableIndexError{Table: "font", Index: i, Len: len(t.Fonts)}
	}
	return t.Fonts[i], nil
}

// Color returns the color definition with the given index.
func (t *Tables) Color(i int) (ColorDef, error) {
	if i < 0 || i >= len(t.Colors) {
		return ColorDef{}, &TableIndexError{Table: "color", Index: i, Len: len(t.Colors)}
	}
	return t.Colors[i], nil
}

// Style returns the font style definition with the given index.
func (t *Tables) Style(i int) (FontStyleDef, error) {
	if i < 0 || i >= len(t.Styles) {
		return FontStyleDef{}, &TableIndexError{Table: "style", Index: i, Len: len(t.Styles)}
	}
	return t.Styles[i], nil
}
