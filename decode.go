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
	"log/slog"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// defaultMaxDepth bounds object list nesting if the caller does not
// choose a limit.
const defaultMaxDepth = 32

// The platform byte of the MTEF header.
const (
	platformMac     = 0
	platformWindows = 1
)

// DecodeOptions control the decoding of an MTEF stream.  The zero
// value (and a nil pointer) select the defaults.
type DecodeOptions struct {
	// MaxDepth is the maximum object list nesting depth.  Zero means
	// the default of 32.
	MaxDepth int

	// Text overrides the character encoding used for name strings.
	// If nil, the encoding is chosen from the header's platform byte:
	// Mac Roman for Macintosh streams, Windows-1252 otherwise.
	Text encoding.Encoding

	// Log, if non-nil, receives a debug event for every decoded record
	// and every definition table append.
	Log *slog.Logger
}

// Decode reads one MTEF stream, starting at the MTEF header, and
// builds the equation tree.
//
// Decode makes a single pass over the input.  Definition records
// encountered anywhere in the stream are collected into the document's
// Tables; all other records become nodes of the tree.  Decoding stops
// at the outermost END record or at the end of the input, whichever
// comes first; nested object lists must be explicitly terminated.
func Decode(data []byte, opt *DecodeOptions) (*Document, error) {
	d := &decoder{
		cur: newCursor(data),
		doc: &Document{Tables: newTables()},
	}
	if opt != nil {
		d.maxDepth = opt.MaxDepth
		d.log = opt.Log
	}
	if d.maxDepth <= 0 {
		d.maxDepth = defaultMaxDepth
	}

	err := d.readHeader(opt)
	if err != nil {
		return nil, err
	}

	d.doc.Objects, err = d.readList(1, true)
	if err != nil {
		return nil, err
	}
	return d.doc, nil
}

type decoder struct {
	cur      *cursor
	doc      *Document
	text     *encoding.Decoder
	maxDepth int
	log      *slog.Logger
}

// readHeader reads the fixed MTEF header: five version/platform bytes,
// the NUL-terminated application name, and the inline flag.
func (d *decoder) readHeader(opt *DecodeOptions) error {
	b, err := d.cur.ReadBytes(5)
	if err != nil {
		return err
	}

	doc := d.doc
	doc.Version = b[0]
	doc.Platform = b[1]
	doc.Product = b[2]
	doc.ProductVersion = b[3]
	doc.ProductSubVersion = b[4]

	var enc encoding.Encoding
	if opt != nil && opt.Text != nil {
		enc = opt.Text
	} else {
		enc = platformEncoding(doc.Platform)
	}
	d.text = enc.NewDecoder()

	doc.Application, err = d.cur.readString(d.text)
	if err != nil {
		return err
	}
	inline, err := d.cur.ReadUint8()
	if err != nil {
		return err
	}
	doc.Inline = inline != 0

	if d.log != nil {
		d.log.Debug("mtef header",
			"version", doc.Version,
			"platform", doc.Platform,
			"application", doc.Application,
			"inline", doc.Inline)
	}
	return nil
}

// platformEncoding returns the text encoding implied by the header's
// platform byte.
func platformEncoding(platform uint8) encoding.Encoding {
	if platform == platformMac {
		return charmap.Macintosh
	}
	return charmap.Windows1252
}

// appendHeader re-encodes the fixed header fields of doc to buf.  The
// application name is converted back to the code page implied by the
// document's platform byte; a name which cannot be represented in
// that code page is an error.
func appendHeader(buf []byte, doc *Document) ([]byte, error) {
	buf = append(buf,
		doc.Version,
		doc.Platform,
		doc.Product,
		doc.ProductVersion,
		doc.ProductSubVersion)
	name, err := platformEncoding(doc.Platform).NewEncoder().
		Bytes([]byte(doc.Application))
	if err != nil {
		return nil, err
	}
	buf = append(buf, name...)
	buf = append(buf, 0)
	if doc.Inline {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf, nil
}

// readList decodes records into an object list until the list's END
// record.  At the top level the end of the input also terminates the
// list; in nested lists a missing END is an error.
func (d *decoder) readList(depth int, top bool) ([]Node, error) {
	if depth > d.maxDepth {
		return nil, &NestingError{Limit: d.maxDepth, Pos: d.cur.Pos()}
	}

	var list []Node
	for {
		if top && d.cur.AtEnd() {
			return list, nil
		}
		pos := d.cur.Pos()
		tag, err := d.cur.ReadUint8()
		if err != nil {
			return nil, err
		}
		rec := RecordType(tag)
		if d.log != nil {
			d.log.Debug("record", "tag", rec.String(), "pos", pos)
		}
		if rec == RecEnd {
			return list, nil
		}
		node, err := d.readRecord(rec, pos, depth)
		if err != nil {
			return nil, err
		}
		if node != nil {
			list = append(list, node)
		}
	}
}

// readRecord decodes the payload of one record.  The tag byte has
// already been consumed.  Definition records return a nil node and
// update the document's tables instead.
func (d *decoder) readRecord(rec RecordType, pos int64, depth int) (Node, error) {
	switch rec {
	case RecLine:
		return d.readLine(depth)
	case RecChar:
		return d.readChar(depth)
	case RecTmpl:
		return d.readTmpl(depth)
	case RecFull:
		return SizeMarker{Size: SizeFull}, nil
	case RecSub:
		return SizeMarker{Size: SizeSub}, nil
	case RecSub2:
		return SizeMarker{Size: SizeSub2}, nil
	case RecSym:
		return SizeMarker{Size: SizeSym}, nil
	case RecSubSym:
		return SizeMarker{Size: SizeSubSym}, nil
	case RecFontDef:
		return nil, d.readFontDef()
	case RecFontStyleDef:
		return nil, d.readFontStyleDef()
	case RecEncodingDef:
		return nil, d.readEncodingDef()
	case RecEqnPrefs:
		p, err := d.cur.readPrefs()
		if err != nil {
			return nil, err
		}
		d.doc.Prefs = p
		return nil, nil
	case RecPile, RecMatrix, RecEmbell, RecRuler, RecSize,
		RecColor, RecColorDef:
		// These record types carry no length prefix, and their exact
		// byte grammar is not part of the published format
		// description.  Guessing would desynchronise every record
		// after this one.
		return nil, &UnsupportedRecordError{Tag: rec, Pos: pos}
	default:
		if rec >= RecFuture {
			return d.readFuture(rec)
		}
		return nil, &UnsupportedRecordError{Tag: rec, Pos: pos}
	}
}

func (d *decoder) readLine(depth int) (*Line, error) {
	opts, err := d.cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	l := &Line{Options: LineOptions(opts)}
	if l.Options.HasNudge() {
		l.Nudge, err = d.cur.readNudge()
		if err != nil {
			return nil, err
		}
	}
	if l.Options.HasSpacing() {
		l.Spacing, err = d.cur.ReadUint8()
		if err != nil {
			return nil, err
		}
	}
	l.Objects, err = d.readList(depth+1, false)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (d *decoder) readChar(depth int) (*Character, error) {
	opts, err := d.cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	ch := &Character{Options: CharOptions(opts)}
	if ch.Options.HasNudge() {
		ch.Nudge, err = d.cur.readNudge()
		if err != nil {
			return nil, err
		}
	}

	face, err := d.cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	ch.Typeface = Typeface(int(face) - 128)

	if ch.Options.HasMTCode() {
		code, err := d.cur.ReadUint16()
		if err != nil {
			return nil, err
		}
		ch.MTCode = rune(code)
	}
	if ch.Options.HasFontPosition8() {
		ch.FontPosition8, err = d.cur.ReadUint8()
		if err != nil {
			return nil, err
		}
	}
	if ch.Options.HasFontPosition16() {
		ch.FontPosition16, err = d.cur.ReadUint16()
		if err != nil {
			return nil, err
		}
	}
	if ch.Options.HasEmbellishments() {
		ch.Embellishments, err = d.readList(depth+1, false)
		if err != nil {
			return nil, err
		}
	}
	return ch, nil
}

func (d *decoder) readTmpl(depth int) (*Template, error) {
	opts, err := d.cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	t := &Template{Options: TmplOptions(opts)}
	if t.Options.HasNudge() {
		t.Nudge, err = d.cur.readNudge()
		if err != nil {
			return nil, err
		}
	}
	t.Selector, err = d.cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	t.Variation, err = d.cur.readVariation()
	if err != nil {
		return nil, err
	}
	t.SlotOptions, err = d.cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	t.Objects, err = d.readList(depth+1, false)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (d *decoder) readFuture(rec RecordType) (*Future, error) {
	length, err := d.cur.readExpandableUint()
	if err != nil {
		return nil, err
	}
	data, err := d.cur.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}
	f := &Future{Tag: rec}
	f.Data = append(f.Data, data...)
	return f, nil
}

func (d *decoder) readFontDef() error {
	encIdx, err := d.cur.ReadUint8()
	if err != nil {
		return err
	}
	name, err := d.cur.readString(d.text)
	if err != nil {
		return err
	}
	d.doc.Tables.Fonts = append(d.doc.Tables.Fonts,
		FontDef{Encoding: int(encIdx), Name: name})
	if d.log != nil {
		d.log.Debug("font definition",
			"index", len(d.doc.Tables.Fonts)-1,
			"encoding", int(encIdx),
			"name", name)
	}
	return nil
}

func (d *decoder) readFontStyleDef() error {
	fontIdx, err := d.cur.ReadUint8()
	if err != nil {
		return err
	}
	style, err := d.cur.ReadUint8()
	if err != nil {
		return err
	}
	d.doc.Tables.Styles = append(d.doc.Tables.Styles,
		FontStyleDef{Font: int(fontIdx), Style: style})
	if d.log != nil {
		d.log.Debug("style definition",
			"index", len(d.doc.Tables.Styles)-1,
			"font", int(fontIdx),
			"style", style)
	}
	return nil
}

func (d *decoder) readEncodingDef() error {
	name, err := d.cur.readString(d.text)
	if err != nil {
		return err
	}
	d.doc.Tables.Encodings = append(d.doc.Tables.Encodings, name)
	if d.log != nil {
		d.log.Debug("encoding definition",
			"index", len(d.doc.Tables.Encodings)-1,
			"name", name)
	}
	return nil
}
