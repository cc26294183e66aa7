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

// Package translate turns decoded MTEF equation trees into text.
//
// The walk itself is fixed: depth-first, left-to-right within each
// object list.  What the output looks like is determined entirely by
// two caller-supplied lookup tables, one mapping character identities
// to output fragments and one mapping template selectors to macro
// shapes.  Package [seehuhn.de/go/mtef/latex] provides tables for
// LaTeX output.
package translate

import (
	"errors"
	"strconv"
	"strings"

	"seehuhn.de/go/mtef"
)

// A GlyphTable maps character identities to output fragments.
type GlyphTable interface {
	// Glyph returns the output fragment for the given character in the
	// given size context, and whether a mapping exists.
	Glyph(c *mtef.Character, size mtef.Typesize) (string, bool)
}

// A MacroTable maps template selectors to macro shapes.  A macro shape
// is an output fragment containing the slot markers #1, #2, ...; the
// translated slot contents are spliced in at the markers.
type MacroTable interface {
	// Macro returns the macro shape for the given template selector
	// and variation, and whether a mapping exists.
	Macro(selector uint8, variation uint16) (string, bool)
}

// Tables bundles the two lookup tables needed for translation.
type Tables struct {
	Glyphs GlyphTable
	Macros MacroTable
}

// UnresolvedError reports a node for which no output could be
// produced, either because a lookup table has no mapping for it or
// because it references a definition table entry which does not exist.
type UnresolvedError struct {
	// Node is the offending node.
	Node mtef.Node

	// Key describes the unresolved lookup key.
	Key string

	// Err is the underlying error, if any.
	Err error
}

func (err *UnresolvedError) Error() string {
	msg := "cannot translate " + err.Key
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *UnresolvedError) Unwrap() error {
	return err.Err
}

// Document translates a decoded equation into text.
//
// Nodes which cannot be translated do not abort the walk: their slot
// contents (if any) are still emitted, and one [UnresolvedError] per
// offending node is reported in the returned error, combined with
// [errors.Join].  The returned text is complete except for the
// fragments of the unresolved nodes.
func Document(doc *mtef.Document, tables Tables) (string, error) {
	t := &translator{doc: doc, tab: tables}
	text := t.list(doc.Objects, mtef.SizeFull)
	return text, errors.Join(t.errs...)
}

type translator struct {
	doc  *mtef.Document
	tab  Tables
	errs []error
}

// list translates one object list.  Size markers in the list switch
// the ambient size context for the siblings which follow them; the
// context does not leak out of the list.
func (t *translator) list(nodes []mtef.Node, size mtef.Typesize) string {
	var buf strings.Builder
	for _, node := range nodes {
		if m, ok := node.(mtef.SizeMarker); ok {
			size = m.Size
			continue
		}
		buf.WriteString(t.node(node, size))
	}
	return buf.String()
}

func (t *translator) node(node mtef.Node, size mtef.Typesize) string {
	switch n := node.(type) {
	case *mtef.Line:
		return t.list(n.Objects, size)
	case *mtef.Character:
		return t.character(n, size)
	case *mtef.Template:
		return t.template(n, size)
	case *mtef.Future:
		// opaque by contract
		return ""
	default:
		t.errs = append(t.errs, &UnresolvedError{
			Node: node,
			Key:  nodeKey(node),
		})
		return ""
	}
}

func (t *translator) character(c *mtef.Character, size mtef.Typesize) string {
	if c.Typeface < 0 {
		// Explicit fonts reference the definition tables; a dangling
		// index is a translation error even if the glyph table could
		// handle the character.
		fd, err := t.doc.Tables.Font(c.Typeface.FontIndex())
		if err == nil {
			_, err = t.doc.Tables.Encoding(fd.Encoding)
		}
		if err != nil {
			t.errs = append(t.errs, &UnresolvedError{
				Node: c,
				Key:  charKey(c),
				Err:  err,
			})
			return ""
		}
	}

	frag, ok := t.tab.Glyphs.Glyph(c, size)
	if !ok {
		t.errs = append(t.errs, &UnresolvedError{
			Node: c,
			Key:  charKey(c),
		})
		return ""
	}
	if c.Options.HasEmbellishments() {
		// Embellished characters would need the embellishment grammar;
		// translate what we can and report the rest.
		frag += t.list(c.Embellishments, size)
	}
	return frag
}

func (t *translator) template(tmpl *mtef.Template, size mtef.Typesize) string {
	// Each direct child of the template contributes one slot fragment,
	// whether it is a proper slot line or an embedded character.
	var slots []string
	for _, obj := range tmpl.Objects {
		slots = append(slots, t.node(obj, size))
	}

	shape, ok := t.tab.Macros.Macro(tmpl.Selector, tmpl.Variation)
	if !ok {
		t.errs = append(t.errs, &UnresolvedError{
			Node: tmpl,
			Key:  tmplKey(tmpl),
		})
		return strings.Join(slots, " ")
	}

	for i := len(slots); i >= 1; i-- {
		marker := "#" + strconv.Itoa(i)
		shape = strings.ReplaceAll(shape, marker, slots[i-1])
	}
	return shape
}

func charKey(c *mtef.Character) string {
	key := "character"
	if c.Options.HasMTCode() {
		key += " U+" + strings.ToUpper(strconv.FormatInt(int64(c.MTCode), 16))
	}
	if c.Options.HasFontPosition16() {
		key += " position " + strconv.Itoa(int(c.FontPosition16))
	} else if c.Options.HasFontPosition8() {
		key += " position " + strconv.Itoa(int(c.FontPosition8))
	}
	return key + " (" + c.Typeface.String() + ")"
}

func tmplKey(t *mtef.Template) string {
	return "template " + strconv.Itoa(int(t.Selector)) +
		"." + strconv.Itoa(int(t.Variation))
}

func nodeKey(node mtef.Node) string {
	switch node.(type) {
	case *mtef.Pile:
		return "pile"
	case *mtef.Matrix:
		return "matrix"
	case *mtef.Embellishment:
		return "embellishment"
	default:
		return "object"
	}
}
