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

// Package mtef decodes MTEF, the binary equation format used by
// MathType and the Microsoft Equation Editor.
//
// An MTEF stream is a short header followed by a sequence of
// tag-prefixed records.  Records nest: a template contains slots,
// slots contain lines, lines contain characters and further templates.
// The function Decode() turns one such stream into a [Document], a
// fully built equation tree:
//
//	doc, err := mtef.Decode(data, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	... walk doc.Objects ...
//
// Decode operates on a byte slice containing exactly one MTEF stream,
// starting at the MTEF header.  Extracting this slice from a host
// document is the job of package [seehuhn.de/go/mtef/container].
// Turning the finished tree into text is the job of package
// [seehuhn.de/go/mtef/translate].
//
// Decoding is a single pass over the input.  The resulting Document is
// not modified by this package after Decode returns, and independent
// calls to Decode do not share any state.
package mtef
