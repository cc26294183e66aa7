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

// Mtef-dump extracts equations from documents with embedded MathType
// or Equation Editor objects.
//
// Usage:
//
//	mtef-dump [-latex] [-v] file
//
// If file is an OLE compound file, all equation objects it contains
// are dumped; otherwise the file is treated as one raw MTEF stream.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"seehuhn.de/go/mtef"
	"seehuhn.de/go/mtef/container"
	"seehuhn.de/go/mtef/latex"
	"seehuhn.de/go/mtef/translate"
)

// cfbMagic is the signature of OLE compound files.
var cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func main() {
	asLatex := flag.Bool("latex", false, "emit LaTeX instead of a tree dump")
	verbose := flag.Bool("v", false, "trace decoding on stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Printf("Usage: %s [options] file\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	var opt *mtef.DecodeOptions
	if *verbose {
		opt = &mtef.DecodeOptions{
			Log: slog.New(slog.NewTextHandler(os.Stderr,
				&slog.HandlerOptions{Level: slog.LevelDebug})),
		}
	}

	var streams [][]byte
	if bytes.HasPrefix(data, cfbMagic) {
		streams, err = container.Extract(bytes.NewReader(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error extracting equations: %v\n", err)
			os.Exit(1)
		}
	} else {
		streams = [][]byte{data}
	}

	exitCode := 0
	for i, stream := range streams {
		if len(streams) > 1 {
			fmt.Printf("--- equation %d ---\n", i+1)
		}
		doc, err := mtef.Decode(stream, opt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding equation %d: %v\n", i+1, err)
			exitCode = 1
			continue
		}
		if *asLatex {
			text, err := translate.Document(doc, latex.Tables())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
			fmt.Println(text)
		} else {
			dumpDocument(doc)
		}
	}
	os.Exit(exitCode)
}

func dumpDocument(doc *mtef.Document) {
	fmt.Printf("MTEF version %d, %q", doc.Version, doc.Application)
	if doc.Inline {
		fmt.Print(", inline")
	}
	fmt.Println()
	for i, name := range doc.Tables.Encodings {
		fmt.Printf("encoding %d: %s\n", i, name)
	}
	for i, fd := range doc.Tables.Fonts {
		fmt.Printf("font %d: %q (encoding %d)\n", i, fd.Name, fd.Encoding)
	}
	dumpList(doc.Objects, 0)
}

func dumpList(nodes []mtef.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, node := range nodes {
		switch n := node.(type) {
		case *mtef.Line:
			fmt.Printf("%sline\n", indent)
			dumpList(n.Objects, depth+1)
		case *mtef.Character:
			switch {
			case n.Options.HasMTCode():
				fmt.Printf("%schar U+%04X %q (%s)\n",
					indent, n.MTCode, n.MTCode, n.Typeface)
			case n.Options.HasFontPosition16():
				fmt.Printf("%schar position %d (%s)\n",
					indent, n.FontPosition16, n.Typeface)
			default:
				fmt.Printf("%schar position %d (%s)\n",
					indent, n.FontPosition8, n.Typeface)
			}
		case *mtef.Template:
			fmt.Printf("%stemplate %d.%d\n", indent, n.Selector, n.Variation)
			dumpList(n.Objects, depth+1)
		case mtef.SizeMarker:
			fmt.Printf("%ssize %s\n", indent, n.Size)
		case *mtef.Future:
			fmt.Printf("%sfuture record %d (%d bytes)\n",
				indent, n.Tag, len(n.Data))
		default:
			fmt.Printf("%s%T\n", indent, node)
		}
	}
}
