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

// Package latex provides lookup tables for translating MTEF equation
// trees to LaTeX.
//
// The tables cover the characters and template shapes commonly found
// in MathType equations.  They are data, not logic: callers with
// different needs can wrap or replace them without touching the
// decoder or the tree walk.
package latex

import (
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/mtef"
	"seehuhn.de/go/mtef/translate"
)

// Tables returns lookup tables for LaTeX output.
func Tables() translate.Tables {
	return translate.Tables{
		Glyphs: glyphTable{},
		Macros: macroTable{},
	}
}

// Template selector values of the MathType template set.
const (
	TmplAngle uint8 = iota
	TmplParen
	TmplBrace
	TmplBrack
	TmplBar
	TmplDBar
	TmplFloor
	TmplCeiling
	TmplOBrack
	TmplInterval
	TmplRoot
	TmplFract
	TmplUBar
	TmplOBar
	TmplArrow
	TmplInteg
	TmplSum
	TmplProd
	TmplCoprod
	TmplUnion
	TmplInter
	TmplIntOp
	TmplSumOp
	TmplLim
	TmplHBrace
	TmplHBrack
	TmplLDiv
	TmplSub
	TmplSup
	TmplSubSup
	TmplDirac
	TmplVec
	TmplTilde
	TmplHat
)

// macros maps a selector to the macro shape used for all its
// variations, unless macroVariants has a more specific entry.
var macros = map[uint8]string{
	TmplAngle:    `\left\langle #1\right\rangle `,
	TmplParen:    `\left(#1\right)`,
	TmplBrace:    `\left\{#1\right\}`,
	TmplBrack:    `\left[#1\right]`,
	TmplBar:      `\left|#1\right|`,
	TmplDBar:     `\left\|#1\right\|`,
	TmplFloor:    `\left\lfloor #1\right\rfloor `,
	TmplCeiling:  `\left\lceil #1\right\rceil `,
	TmplInterval: `\left(#1\right]`,
	TmplRoot:     `\sqrt{#1}`,
	TmplFract:    `\frac{#1}{#2}`,
	TmplUBar:     `\underline{#1}`,
	TmplOBar:     `\overline{#1}`,
	TmplArrow:    `\overrightarrow{#1}`,
	TmplInteg:    `\int_{#2}^{#3}#1`,
	TmplSum:      `\sum_{#2}^{#3}#1`,
	TmplProd:     `\prod_{#2}^{#3}#1`,
	TmplCoprod:   `\coprod_{#2}^{#3}#1`,
	TmplUnion:    `\bigcup_{#2}^{#3}#1`,
	TmplInter:    `\bigcap_{#2}^{#3}#1`,
	TmplLim:      `#1_{#2}`,
	TmplHBrace:   `\underbrace{#1}_{#2}`,
	TmplHBrack:   `\overbrace{#1}^{#2}`,
	TmplSub:      `_{#1}`,
	TmplSup:      `^{#1}`,
	TmplSubSup:   `_{#1}^{#2}`,
	TmplVec:      `\vec{#1}`,
	TmplTilde:    `\tilde{#1}`,
	TmplHat:      `\hat{#1}`,
}

// macroVariants holds variation-specific macro shapes.
var macroVariants = map[uint32]string{
	variant(TmplRoot, 1):  `\sqrt[#2]{#1}`,
	variant(TmplInteg, 0): `\int #1`,
	variant(TmplInteg, 1): `\int_{#2}#1`,
	variant(TmplSum, 0):   `\sum #1`,
	variant(TmplSum, 1):   `\sum_{#2}#1`,
	variant(TmplProd, 0):  `\prod #1`,
	variant(TmplProd, 1):  `\prod_{#2}#1`,
}

func variant(selector uint8, variation uint16) uint32 {
	return uint32(selector)<<16 | uint32(variation)
}

type macroTable struct{}

func (macroTable) Macro(selector uint8, variation uint16) (string, bool) {
	if shape, ok := macroVariants[variant(selector, variation)]; ok {
		return shape, true
	}
	shape, ok := macros[selector]
	return shape, ok
}

// symbols maps MTCode values to LaTeX fragments.  MTCode is a superset
// of Unicode, so the keys are ordinary runes.  Fragments which end in
// a command name carry a trailing space so that adjacent fragments do
// not run together.
var symbols = map[rune]string{
	// ASCII characters with special meaning in LaTeX
	'#':  `\#`,
	'$':  `\$`,
	'%':  `\%`,
	'&':  `\&`,
	'\\': `\backslash `,
	'^':  `\wedge `,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\sim `,

	// lower case Greek
	0x03B1: `\alpha `,
	0x03B2: `\beta `,
	0x03B3: `\gamma `,
	0x03B4: `\delta `,
	0x03B5: `\varepsilon `,
	0x03B6: `\zeta `,
	0x03B7: `\eta `,
	0x03B8: `\theta `,
	0x03B9: `\iota `,
	0x03BA: `\kappa `,
	0x03BB: `\lambda `,
	0x03BC: `\mu `,
	0x03BD: `\nu `,
	0x03BE: `\xi `,
	0x03C0: `\pi `,
	0x03C1: `\rho `,
	0x03C3: `\sigma `,
	0x03C4: `\tau `,
	0x03C5: `\upsilon `,
	0x03C6: `\varphi `,
	0x03C7: `\chi `,
	0x03C8: `\psi `,
	0x03C9: `\omega `,

	// upper case Greek
	0x0393: `\Gamma `,
	0x0394: `\Delta `,
	0x0398: `\Theta `,
	0x039B: `\Lambda `,
	0x039E: `\Xi `,
	0x03A0: `\Pi `,
	0x03A3: `\Sigma `,
	0x03A5: `\Upsilon `,
	0x03A6: `\Phi `,
	0x03A8: `\Psi `,
	0x03A9: `\Omega `,

	// operators and relations
	0x00B1: `\pm `,
	0x00D7: `\times `,
	0x00F7: `\div `,
	0x2022: `\bullet `,
	0x2032: `'`,
	0x2202: `\partial `,
	0x2207: `\nabla `,
	0x2208: `\in `,
	0x2209: `\notin `,
	0x220F: `\prod `,
	0x2211: `\sum `,
	0x2212: `-`,
	0x221A: `\surd `,
	0x221E: `\infty `,
	0x2229: `\cap `,
	0x222A: `\cup `,
	0x222B: `\int `,
	0x2248: `\approx `,
	0x2260: `\ne `,
	0x2261: `\equiv `,
	0x2264: `\le `,
	0x2265: `\ge `,
	0x22C5: `\cdot `,
	0x2190: `\leftarrow `,
	0x2192: `\to `,
	0x21D2: `\Rightarrow `,
	0x21D4: `\Leftrightarrow `,
	0x2200: `\forall `,
	0x2203: `\exists `,
	0x2205: `\emptyset `,
	0x2282: `\subset `,
	0x2286: `\subseteq `,
}

type glyphTable struct{}

func (glyphTable) Glyph(c *mtef.Character, size mtef.Typesize) (string, bool) {
	if !c.Options.HasMTCode() {
		// Font positions alone cannot be mapped without the font's
		// encoding table.
		return "", false
	}
	r := c.MTCode
	if frag, ok := symbols[r]; ok {
		return frag, true
	}
	if r < 0x20 || r >= 0x7F {
		return "", false
	}

	s := string(r)
	switch c.Typeface {
	case mtef.FaceText, mtef.FaceTextFE:
		return `\text{` + s + `}`, true
	case mtef.FaceFunction:
		return `\mathrm{` + s + `}`, true
	case mtef.FaceVector:
		return `\mathbf{` + s + `}`, true
	case mtef.FaceSpace:
		return `\,`, true
	default:
		return s, true
	}
}

// Symbols returns the MTCode values which have a dedicated LaTeX
// fragment, in increasing order.
func Symbols() []rune {
	rs := maps.Keys(symbols)
	slices.Sort(rs)
	return rs
}

// IsCommand reports whether a fragment consists of a single LaTeX
// command.
func IsCommand(frag string) bool {
	rest, ok := strings.CutPrefix(frag, `\`)
	if !ok {
		return false
	}
	rest = strings.TrimSuffix(rest, " ")
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}
