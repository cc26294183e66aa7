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

	"github.com/google/go-cmp/cmp"
)

// header returns a minimal MTEF 5 header generated by "MathType" on
// Windows.
func header() []byte {
	res := []byte{5, 0, 0, 0, 0}
	res = append(res, "MathType"...)
	res = append(res, 0, 0)
	return res
}

func TestHeaderRoundTrip(t *testing.T) {
	docs := []*Document{
		{
			Version:     5,
			Application: "MathType",
		},
		{
			Version:           5,
			Platform:          1,
			Product:           1,
			ProductVersion:    4,
			ProductSubVersion: 1,
			Application:       "Equation Editor",
			Inline:            true,
		},
		{ // name outside ASCII, Windows code page
			Version:     5,
			Platform:    1,
			Application: "café",
		},
		{ // name outside ASCII, Mac code page
			Version:     5,
			Application: "MathType™",
		},
	}
	for _, doc := range docs {
		enc, err := appendHeader(nil, doc)
		if err != nil {
			t.Fatal(err)
		}

		got, err := Decode(enc, nil)
		if err != nil {
			t.Fatal(err)
		}

		opts := cmp.Comparer(func(a, b *Tables) bool { return true })
		if d := cmp.Diff(doc, got, opts); d != "" {
			t.Errorf("header mismatch (-want +got):\n%s", d)
		}

		enc2, err := appendHeader(nil, got)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(enc, enc2) {
			t.Errorf("re-encoded header % x, want % x", enc2, enc)
		}
	}
}

func TestHeaderRoundTripBytes(t *testing.T) {
	// A Windows header whose application name uses a code page byte
	// with a different UTF-8 encoding must re-encode to the original
	// bytes, not to the UTF-8 form.
	data := []byte{5, 1, 0, 0, 0, 'c', 'a', 'f', 0xE9, 0, 0}

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Application != "café" {
		t.Errorf("application = %q, want %q", doc.Application, "café")
	}

	enc, err := appendHeader(nil, doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(enc, data) {
		t.Errorf("re-encoded header % x, want % x", enc, data)
	}
}

func TestDecodeChar(t *testing.T) {
	data := header()
	data = append(data, 2, 0x00, 0x83, 0x78, 0x00) // CHAR 'x', variable style
	data = append(data, 0)                         // END

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := []Node{
		&Character{
			Typeface: FaceVariable,
			MTCode:   'x',
		},
	}
	if d := cmp.Diff(want, doc.Objects); d != "" {
		t.Errorf("objects mismatch (-want +got):\n%s", d)
	}
}

func TestDecodeFraction(t *testing.T) {
	data := header()
	data = append(data, 3, 0x00, 1, 0x02, 0x00) // TMPL, selector 1, variation 2
	data = append(data, 1, 0x00)                // first slot
	data = append(data, 2, 0x00, 0x83, 0x78, 0x00)
	data = append(data, 0)
	data = append(data, 1, 0x00) // second slot
	data = append(data, 2, 0x00, 0x83, 0x79, 0x00)
	data = append(data, 0)
	data = append(data, 0) // end of template
	data = append(data, 0) // end of equation

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Objects) != 1 {
		t.Fatalf("got %d root objects, want 1", len(doc.Objects))
	}
	tmpl, ok := doc.Objects[0].(*Template)
	if !ok {
		t.Fatalf("root object is %T, want *Template", doc.Objects[0])
	}
	if tmpl.Selector != 1 || tmpl.Variation != 2 {
		t.Errorf("template is %d.%d, want 1.2", tmpl.Selector, tmpl.Variation)
	}

	slots := tmpl.Slots()
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	for i, want := range []rune{'x', 'y'} {
		if len(slots[i].Objects) != 1 {
			t.Fatalf("slot %d has %d objects, want 1", i, len(slots[i].Objects))
		}
		ch, ok := slots[i].Objects[0].(*Character)
		if !ok || ch.MTCode != want {
			t.Errorf("slot %d contains %v, want character %q",
				i, slots[i].Objects[0], want)
		}
	}
}

func TestDecodeDefinitions(t *testing.T) {
	data := header()
	data = append(data, 19) // ENCODING_DEF
	data = append(data, "Symbol2"...)
	data = append(data, 0)
	data = append(data, 17, 4) // FONT_DEF, encoding index 4
	data = append(data, "Symbol Two"...)
	data = append(data, 0)
	data = append(data, 8, 0, 2) // FONT_STYLE_DEF
	data = append(data, 0)       // END

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}

	wantEnc := append(builtinEncodings[:len(builtinEncodings):len(builtinEncodings)],
		"Symbol2")
	if d := cmp.Diff(wantEnc, doc.Tables.Encodings); d != "" {
		t.Errorf("encodings mismatch (-want +got):\n%s", d)
	}

	fd, err := doc.Tables.Font(0)
	if err != nil {
		t.Fatal(err)
	}
	if fd.Name != "Symbol Two" {
		t.Errorf("font name = %q, want %q", fd.Name, "Symbol Two")
	}
	name, err := doc.Tables.Encoding(fd.Encoding)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Symbol2" {
		t.Errorf("font encoding = %q, want %q", name, "Symbol2")
	}

	style, err := doc.Tables.Style(0)
	if err != nil {
		t.Fatal(err)
	}
	if style != (FontStyleDef{Font: 0, Style: 2}) {
		t.Errorf("style = %v", style)
	}
}

func TestForwardReference(t *testing.T) {
	// The font definition references encoding index 4 before the
	// corresponding ENCODING_DEF record has been seen.  The decode
	// must succeed, and the reference must resolve against the
	// completed table.
	data := header()
	data = append(data, 17, 4) // FONT_DEF, encoding index 4
	data = append(data, "Later"...)
	data = append(data, 0)
	data = append(data, 19) // ENCODING_DEF filling index 4
	data = append(data, "LateEnc"...)
	data = append(data, 0)
	data = append(data, 0)

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}

	fd, err := doc.Tables.Font(0)
	if err != nil {
		t.Fatal(err)
	}
	name, err := doc.Tables.Encoding(fd.Encoding)
	if err != nil {
		t.Fatal(err)
	}
	if name != "LateEnc" {
		t.Errorf("resolved encoding = %q, want %q", name, "LateEnc")
	}

	// an index beyond the final table size must fail cleanly
	_, err = doc.Tables.Encoding(5)
	var idxErr *TableIndexError
	if !errors.As(err, &idxErr) {
		t.Fatalf("error = %v, want *TableIndexError", err)
	}
	if idxErr.Table != "encoding" || idxErr.Index != 5 || idxErr.Len != 5 {
		t.Errorf("unexpected index error %v", idxErr)
	}
}

func TestCharacterEncodings(t *testing.T) {
	type testCase struct {
		name    string
		payload []byte
		want    Character
	}
	cases := []testCase{
		{
			name:    "mtcode only",
			payload: []byte{0x00, 0x82, 0x31, 0x00},
			want: Character{
				Typeface: FaceFunction,
				MTCode:   '1',
			},
		},
		{
			name:    "mtcode and 8-bit position",
			payload: []byte{0x04, 0x86, 0x61, 0x03, 0x61},
			want: Character{
				Options:       0x04,
				Typeface:      FaceSymbol,
				MTCode:        0x0361,
				FontPosition8: 0x61,
			},
		},
		{
			name:    "16-bit position without mtcode",
			payload: []byte{0x30, 0x83, 0xCD, 0xAB},
			want: Character{
				Options:        0x30,
				Typeface:       FaceVariable,
				FontPosition16: 0xABCD,
			},
		},
		{
			name:    "8-bit position without mtcode",
			payload: []byte{0x24, 0x7F, 0x42},
			want: Character{
				Options:       0x24,
				Typeface:      -1,
				FontPosition8: 0x42,
			},
		},
		{
			name:    "both positions without mtcode",
			payload: []byte{0x34, 0x83, 0x42, 0xCD, 0xAB},
			want: Character{
				Options:        0x34,
				Typeface:       FaceVariable,
				FontPosition8:  0x42,
				FontPosition16: 0xABCD,
			},
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			data := header()
			data = append(data, 2)
			data = append(data, test.payload...)
			data = append(data, 0)

			doc, err := Decode(data, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(doc.Objects) != 1 {
				t.Fatalf("got %d objects, want 1", len(doc.Objects))
			}
			if d := cmp.Diff(&test.want, doc.Objects[0]); d != "" {
				t.Errorf("character mismatch (-want +got):\n%s", d)
			}

			ch := doc.Objects[0].(*Character)
			if ch.Options.HasMTCode() != (ch.MTCode != 0) {
				t.Error("MTCode presence does not match option bit")
			}
		})
	}
}

func TestLineOptions(t *testing.T) {
	data := header()
	data = append(data, 1, 0x08|0x04, 3, 252, 18) // LINE with nudge and spacing
	data = append(data, 2, 0x00, 0x83, 0x78, 0x00)
	data = append(data, 0) // end of line
	data = append(data, 1, 0x01)
	data = append(data, 0) // end of the null line
	data = append(data, 0)

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(doc.Objects))
	}

	l1 := doc.Objects[0].(*Line)
	want := &Line{
		Options: 0x0C,
		Nudge:   &Nudge{DX: 3, DY: -4},
		Spacing: 18,
		Objects: []Node{
			&Character{Typeface: FaceVariable, MTCode: 'x'},
		},
	}
	if d := cmp.Diff(want, l1); d != "" {
		t.Errorf("line mismatch (-want +got):\n%s", d)
	}

	l2 := doc.Objects[1].(*Line)
	if !l2.Options.IsNull() || len(l2.Objects) != 0 {
		t.Errorf("second line: options %#x, %d objects", l2.Options, len(l2.Objects))
	}
}

func TestSizeMarkers(t *testing.T) {
	data := header()
	data = append(data, 10, 11, 12, 13, 14)
	data = append(data, 0)

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Node{
		SizeMarker{Size: SizeFull},
		SizeMarker{Size: SizeSub},
		SizeMarker{Size: SizeSub2},
		SizeMarker{Size: SizeSym},
		SizeMarker{Size: SizeSubSym},
	}
	if d := cmp.Diff(want, doc.Objects); d != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", d)
	}
}

func TestFutureRecords(t *testing.T) {
	data := header()
	data = append(data, 100, 3, 0xDE, 0xAD, 0xBF)
	data = append(data, 120, 0xFF, 0x02, 0x00, 0x01, 0x02)
	data = append(data, 0)

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Node{
		&Future{Tag: 100, Data: []byte{0xDE, 0xAD, 0xBF}},
		&Future{Tag: 120, Data: []byte{0x01, 0x02}},
	}
	if d := cmp.Diff(want, doc.Objects); d != "" {
		t.Errorf("future records mismatch (-want +got):\n%s", d)
	}
}

func TestEqnPrefs(t *testing.T) {
	data := header()
	data = append(data, 18, 0) // EQN_PREFS
	data = append(data, 2, 0x21, 0x2F, 0x01, 0x0F)
	data = append(data, 1, 0x41, 0x50, 0xF0)
	data = append(data, 2, 0, 3, 7)
	data = append(data, 0)

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := &Prefs{
		Sizes:  []string{"12pt", "10in"},
		Spaces: []string{"150%"},
		Styles: []PrefStyle{{}, {Style: 3, Value: 7}},
	}
	if d := cmp.Diff(want, doc.Prefs); d != "" {
		t.Errorf("prefs mismatch (-want +got):\n%s", d)
	}
	if len(doc.Objects) != 0 {
		t.Errorf("EQN_PREFS produced %d tree nodes", len(doc.Objects))
	}
}

func TestUnsupportedRecords(t *testing.T) {
	for _, tag := range []RecordType{RecPile, RecMatrix, RecEmbell,
		RecRuler, RecSize, RecColor, RecColorDef, 42} {
		data := header()
		data = append(data, byte(tag))

		_, err := Decode(data, nil)
		var uErr *UnsupportedRecordError
		if !errors.As(err, &uErr) {
			t.Fatalf("tag %d: error = %v, want *UnsupportedRecordError", tag, err)
		}
		if uErr.Tag != tag {
			t.Errorf("error names tag %d, want %d", uErr.Tag, tag)
		}
		if uErr.Pos != int64(len(header())) {
			t.Errorf("error at byte %d, want %d", uErr.Pos, len(header()))
		}
	}
}

func TestUnterminatedList(t *testing.T) {
	// The line's object list is still open when the buffer ends.
	data := header()
	data = append(data, 1, 0x00)
	data = append(data, 2, 0x00, 0x83, 0x78, 0x00)

	_, err := Decode(data, nil)
	var mErr *MalformedError
	if !errors.As(err, &mErr) {
		t.Fatalf("error = %v, want *MalformedError", err)
	}
	if mErr.Pos != int64(len(data)) {
		t.Errorf("error at byte %d, want %d", mErr.Pos, len(data))
	}
}

func TestMissingOuterEnd(t *testing.T) {
	// At the top level, running out of input is a valid end of the
	// equation.
	data := header()
	data = append(data, 2, 0x00, 0x83, 0x78, 0x00)

	doc, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Objects) != 1 {
		t.Errorf("got %d objects, want 1", len(doc.Objects))
	}
}

func TestNestingLimit(t *testing.T) {
	data := header()
	for i := 0; i < 5; i++ {
		data = append(data, 1, 0x00)
	}

	_, err := Decode(data, &DecodeOptions{MaxDepth: 4})
	var nErr *NestingError
	if !errors.As(err, &nErr) {
		t.Fatalf("error = %v, want *NestingError", err)
	}
	if nErr.Limit != 4 {
		t.Errorf("error reports limit %d, want 4", nErr.Limit)
	}

	// the same stream decodes fine with a higher limit, once the
	// lists are closed
	for i := 0; i < 5; i++ {
		data = append(data, 0)
	}
	if _, err := Decode(data, nil); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeDeterministic(t *testing.T) {
	data := header()
	data = append(data, 3, 0x00, 11, 0x00, 0x00)
	data = append(data, 1, 0x00, 2, 0x00, 0x83, 0x78, 0x00, 0)
	data = append(data, 1, 0x00, 2, 0x00, 0x83, 0x79, 0x00, 0)
	data = append(data, 0)
	data = append(data, 0)

	doc1, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	doc2, err := Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(doc1, doc2); d != "" {
		t.Errorf("repeated decode differs (-first +second):\n%s", d)
	}
}
