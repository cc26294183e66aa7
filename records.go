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

import "strconv"

// RecordType is the tag byte which starts every MTEF record.
type RecordType uint8

// The record types of MTEF version 5.
//
// Values of 100 and above are reserved for future expansion.  Records
// using these tags carry an explicit length and are preserved without
// interpretation.
const (
	RecEnd          RecordType = 0  // end of equation, pile, line, embellishment list, or template
	RecLine         RecordType = 1  // line (slot contents)
	RecChar         RecordType = 2  // character
	RecTmpl         RecordType = 3  // template
	RecPile         RecordType = 4  // pile (vertical stack of lines)
	RecMatrix       RecordType = 5  // matrix
	RecEmbell       RecordType = 6  // character embellishment (hat, prime, ...)
	RecRuler        RecordType = 7  // ruler (tab stop locations)
	RecFontStyleDef RecordType = 8  // font/character style definition
	RecSize         RecordType = 9  // general size
	RecFull         RecordType = 10 // full size
	RecSub          RecordType = 11 // subscript size
	RecSub2         RecordType = 12 // sub-subscript size
	RecSym          RecordType = 13 // symbol size
	RecSubSym       RecordType = 14 // sub-symbol size
	RecColor        RecordType = 15 // color
	RecColorDef     RecordType = 16 // color definition
	RecFontDef      RecordType = 17 // font definition
	RecEqnPrefs     RecordType = 18 // equation preferences
	RecEncodingDef  RecordType = 19 // encoding definition
	RecFuture       RecordType = 100
)

var recordNames = map[RecordType]string{
	RecEnd:          "END",
	RecLine:         "LINE",
	RecChar:         "CHAR",
	RecTmpl:         "TMPL",
	RecPile:         "PILE",
	RecMatrix:       "MATRIX",
	RecEmbell:       "EMBELL",
	RecRuler:        "RULER",
	RecFontStyleDef: "FONT_STYLE_DEF",
	RecSize:         "SIZE",
	RecFull:         "FULL",
	RecSub:          "SUB",
	RecSub2:         "SUB2",
	RecSym:          "SYM",
	RecSubSym:       "SUBSYM",
	RecColor:        "COLOR",
	RecColorDef:     "COLOR_DEF",
	RecFontDef:      "FONT_DEF",
	RecEqnPrefs:     "EQN_PREFS",
	RecEncodingDef:  "ENCODING_DEF",
}

func (t RecordType) String() string {
	if name, ok := recordNames[t]; ok {
		return name
	}
	if t >= RecFuture {
		return "FUTURE(" + strconv.Itoa(int(t)) + ")"
	}
	return "record type " + strconv.Itoa(int(t))
}

// Option bits shared by all equation structure records.
const optNudge = 0x08

// Option bits for CHAR records.
const (
	optCharEmbell    = 0x01
	optCharFuncStart = 0x02
	optCharEnc8      = 0x04
	optCharEnc16     = 0x10
	optCharNoMTCode  = 0x20
)

// Option bits for LINE records.  The ruler bit is shared with PILE.
const (
	optLineNull   = 0x01
	optLineRuler  = 0x02
	optLineLSpace = 0x04
)

// Option bits for COLOR_DEF records.
const (
	optColorCMYK = 0x01
	optColorSpot = 0x02
	optColorName = 0x04
)

// LineOptions is the option byte of a LINE record.
type LineOptions uint8

// HasNudge reports whether a nudge follows the option byte.
func (o LineOptions) HasNudge() bool { return o&optNudge != 0 }

// IsNull reports whether the line is a placeholder only, not displayed.
func (o LineOptions) IsNull() bool { return o&optLineNull != 0 }

// HasRuler reports whether a RULER record follows the line.
func (o LineOptions) HasRuler() bool { return o&optLineRuler != 0 }

// HasSpacing reports whether a line spacing value follows.
func (o LineOptions) HasSpacing() bool { return o&optLineLSpace != 0 }

// CharOptions is the option byte of a CHAR record.
type CharOptions uint8

// HasNudge reports whether a nudge follows the option byte.
func (o CharOptions) HasNudge() bool { return o&optNudge != 0 }

// HasEmbellishments reports whether an embellishment list follows the
// character.
func (o CharOptions) HasEmbellishments() bool { return o&optCharEmbell != 0 }

// StartsFunction reports whether the character starts a function name
// such as "sin" or "cos".
func (o CharOptions) StartsFunction() bool { return o&optCharFuncStart != 0 }

// HasFontPosition8 reports whether an 8-bit font position is present.
func (o CharOptions) HasFontPosition8() bool { return o&optCharEnc8 != 0 }

// HasFontPosition16 reports whether a 16-bit font position is present.
func (o CharOptions) HasFontPosition16() bool { return o&optCharEnc16 != 0 }

// HasMTCode reports whether an MTCode value is present.  The bit is
// inverted on the wire: MTCode is present unless the record opts out.
func (o CharOptions) HasMTCode() bool { return o&optCharNoMTCode == 0 }

// TmplOptions is the option byte of a TMPL record.
type TmplOptions uint8

// HasNudge reports whether a nudge follows the option byte.
func (o TmplOptions) HasNudge() bool { return o&optNudge != 0 }

// ColorDefOptions is the option byte of a COLOR_DEF record.
type ColorDefOptions uint8

// IsCMYK reports whether the color model is CMYK rather than RGB.
func (o ColorDefOptions) IsCMYK() bool { return o&optColorCMYK != 0 }

// IsSpot reports whether the color is a spot color.
func (o ColorDefOptions) IsSpot() bool { return o&optColorSpot != 0 }

// HasName reports whether the color carries a name.
func (o ColorDefOptions) HasName() bool { return o&optColorName != 0 }

// Typeface is the style selector of a CHAR record, with the wire bias
// of 128 already removed.  Positive values select one of the product's
// named styles; negative values select an explicit font, with
// -(value)-1 indexing the font definition table.
type Typeface int8

// The named character styles.
const (
	FaceText     Typeface = 1
	FaceFunction Typeface = 2
	FaceVariable Typeface = 3
	FaceLCGreek  Typeface = 4
	FaceUCGreek  Typeface = 5
	FaceSymbol   Typeface = 6
	FaceVector   Typeface = 7
	FaceNumber   Typeface = 8
	FaceUser1    Typeface = 9
	FaceUser2    Typeface = 10
	FaceMTExtra  Typeface = 11
	FaceTextFE   Typeface = 12
	FaceExpand   Typeface = 22
	FaceMarker   Typeface = 23
	FaceSpace    Typeface = 24
)

var faceNames = map[Typeface]string{
	FaceText:     "text",
	FaceFunction: "function",
	FaceVariable: "variable",
	FaceLCGreek:  "lcgreek",
	FaceUCGreek:  "ucgreek",
	FaceSymbol:   "symbol",
	FaceVector:   "vector",
	FaceNumber:   "number",
	FaceUser1:    "user1",
	FaceUser2:    "user2",
	FaceMTExtra:  "mtextra",
	FaceTextFE:   "text-fe",
	FaceExpand:   "expand",
	FaceMarker:   "marker",
	FaceSpace:    "space",
}

func (t Typeface) String() string {
	if name, ok := faceNames[t]; ok {
		return name
	}
	if t < 0 {
		return "font " + strconv.Itoa(t.FontIndex())
	}
	return "typeface " + strconv.Itoa(int(t))
}

// FontIndex returns the font definition table index selected by a
// negative typeface value.  The result is only meaningful for t < 0.
func (t Typeface) FontIndex() int {
	return -int(t) - 1
}

// Typesize is an enumerated type size context ("lsize").
type Typesize uint8

// The type size contexts.
const (
	SizeFull Typesize = iota
	SizeSub
	SizeSub2
	SizeSym
	SizeSubSym
	SizeUser1
	SizeUser2
	SizeDelta
)

var sizeNames = [...]string{
	"full", "sub", "sub2", "sym", "subsym", "user1", "user2", "delta",
}

func (s Typesize) String() string {
	if int(s) < len(sizeNames) {
		return sizeNames[s]
	}
	return "typesize " + strconv.Itoa(int(s))
}
