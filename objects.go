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

// Document is one decoded MTEF equation.
type Document struct {
	// Version is the MTEF format version of the stream.
	Version uint8

	// Platform, Product, ProductVersion and ProductSubVersion identify
	// the generating application.  The values are preserved as found
	// in the stream and not interpreted.
	Platform          uint8
	Product           uint8
	ProductVersion    uint8
	ProductSubVersion uint8

	// Application is the name of the generating application.
	Application string

	// Inline indicates an inline equation, as opposed to a display
	// equation.
	Inline bool

	// Tables holds the encoding, font, color and style definitions
	// declared anywhere in the stream, in order of first appearance.
	Tables *Tables

	// Prefs holds the equation preferences, if an EQN_PREFS record was
	// present.
	Prefs *Prefs

	// Objects is the top-level object list of the equation.
	Objects []Node
}

// Node is one object in an equation tree.
//
// The concrete types are [*Line], [*Character], [*Template], [*Pile],
// [*Matrix], [*Embellishment], [SizeMarker] and [*Future].
type Node interface {
	isNode()
}

// Nudge is an optional (dx, dy) positioning offset attached to an
// object.  Units are 1/32 of a point.
type Nudge struct {
	DX, DY int16
}

// Line is a horizontal arrangement of objects: the contents of a slot,
// a pile row, or the equation itself.
type Line struct {
	Options LineOptions
	Nudge   *Nudge

	// Spacing is the line spacing value.  It is only meaningful if
	// Options.HasSpacing() is true.
	Spacing uint8

	// Objects is the contents of the line: a single pile, a mix of
	// characters and templates, or nothing.
	Objects []Node
}

// Character is a single character together with its style.
type Character struct {
	Options CharOptions
	Nudge   *Nudge

	// Typeface selects the character's style or an explicit font.
	Typeface Typeface

	// MTCode is the font-independent character code.  It is only
	// meaningful if Options.HasMTCode() is true.
	MTCode rune

	// FontPosition8 is the 8-bit position of the character within its
	// font.  It is only meaningful if Options.HasFontPosition8() is
	// true.
	FontPosition8 uint8

	// FontPosition16 is the 16-bit position of the character within
	// its font.  It is only meaningful if Options.HasFontPosition16()
	// is true.  Both positions may be present in the same record.
	FontPosition16 uint16

	// Embellishments is the character's embellishment list, if
	// Options.HasEmbellishments() is true.
	Embellishments []Node
}

// Template is a mathematical construct with fillable slots, such as a
// fraction, a radical, or a script frame.
type Template struct {
	Options TmplOptions
	Nudge   *Nudge

	// Selector identifies the construct.
	Selector uint8

	// Variation refines the selector, for example selecting the layout
	// of a radical's degree slot.
	Variation uint16

	// SlotOptions is the template-specific option byte.
	SlotOptions uint8

	// Objects is the template's subobject list.  Each Line in the list
	// is one slot; some templates embed additional characters between
	// the slots.
	Objects []Node
}

// Slots returns the template's slots, in order.
func (t *Template) Slots() []*Line {
	var slots []*Line
	for _, obj := range t.Objects {
		if l, ok := obj.(*Line); ok {
			slots = append(slots, l)
		}
	}
	return slots
}

// Pile is a vertical stack of lines.
//
// The byte grammar of PILE records is not part of the published format
// description, so the decoder currently rejects them with an
// [UnsupportedRecordError].  The type exists so that the tree can
// represent piles once the grammar is known.
type Pile struct {
	Nudge *Nudge

	// Lines are the rows of the pile, top to bottom.
	Lines []Node
}

// Matrix is a two-dimensional arrangement of slots.
//
// Like [Pile], matrices are not yet decoded.
type Matrix struct {
	Nudge *Nudge

	Rows, Cols uint8
	Slots      []Node
}

// Embellishment is a mark attached to a character, such as a hat or a
// prime.
//
// Like [Pile], embellishments are not yet decoded.
type Embellishment struct {
	Nudge *Nudge

	// Embell identifies the embellishment.
	Embell uint8
}

// SizeMarker switches the type size context for the objects following
// it in the same object list.
type SizeMarker struct {
	Size Typesize
}

// Future is a record from a later MTEF version, preserved without
// interpretation.
type Future struct {
	Tag  RecordType
	Data []byte
}

func (*Line) isNode()          {}
func (*Character) isNode()     {}
func (*Template) isNode()      {}
func (*Pile) isNode()          {}
func (*Matrix) isNode()        {}
func (*Embellishment) isNode() {}
func (SizeMarker) isNode()     {}
func (*Future) isNode()        {}
