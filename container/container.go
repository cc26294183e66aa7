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

// Package container locates MTEF equation data inside OLE compound
// files.
//
// Equation Editor and MathType store each equation object as a stream
// named "Equation Native" inside the host document's compound file.
// The stream starts with a 28-byte object header followed by the raw
// MTEF data.  This package reads the compound file, strips the object
// header and hands out the bare MTEF bytes, ready for
// [seehuhn.de/go/mtef.Decode].
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"
)

// streamName is the name of equation object streams in compound files.
const streamName = "Equation Native"

// headerSize is the size of the equation object header.
const headerSize = 28

// ErrNoEquation indicates that a compound file contains no equation
// streams.
var ErrNoEquation = errors.New("no equation streams found")

// Header is the fixed header at the start of every equation object
// stream.
type Header struct {
	// Length is the length of the header itself, always 28.
	Length uint16

	// Version is the format version; the high word must be 2.
	Version uint32

	// ClipboardFormat is the Windows clipboard format id of the
	// equation data.
	ClipboardFormat uint16

	// Size is the length in bytes of the MTEF data following the
	// header.
	Size uint32
}

// Split separates an equation object stream into its header and the
// MTEF data.
func Split(data []byte) (Header, []byte, error) {
	var hdr Header
	if len(data) < headerSize {
		return hdr, nil, fmt.Errorf("equation stream too short (%d bytes)", len(data))
	}
	hdr.Length = binary.LittleEndian.Uint16(data[0:])
	hdr.Version = binary.LittleEndian.Uint32(data[2:])
	hdr.ClipboardFormat = binary.LittleEndian.Uint16(data[6:])
	hdr.Size = binary.LittleEndian.Uint32(data[8:])
	// bytes 12-27 are reserved

	if hdr.Length != headerSize || hdr.Version>>16 != 2 {
		return hdr, nil, errors.New("not an equation object stream")
	}
	end := int64(hdr.Length) + int64(hdr.Size)
	if end > int64(len(data)) {
		return hdr, nil, fmt.Errorf("equation stream truncated (%d of %d bytes)",
			len(data), end)
	}
	return hdr, data[hdr.Length:end], nil
}

// Extract returns the MTEF data of all equation objects in a compound
// file, in the order the streams appear.  If the file contains no
// equation streams, the error is [ErrNoEquation].
func Extract(r io.ReaderAt) ([][]byte, error) {
	doc, err := mscfb.New(r)
	if err != nil {
		return nil, err
	}
	return extract(doc)
}

// directory is the part of [mscfb.Reader] used by extract.
type directory interface {
	Next() (*mscfb.File, error)
}

func extract(doc directory) ([][]byte, error) {
	var eqns [][]byte
	for {
		entry, err := doc.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			// A corrupt directory must not surface as an empty or
			// truncated result.
			return nil, err
		}
		if entry.Name != streamName {
			continue
		}
		buf := make([]byte, entry.Size)
		_, err = io.ReadFull(entry, buf)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", streamName, err)
		}
		_, body, err := Split(buf)
		if err != nil {
			return nil, err
		}
		eqns = append(eqns, body)
	}
	if len(eqns) == 0 {
		return nil, ErrNoEquation
	}
	return eqns, nil
}
