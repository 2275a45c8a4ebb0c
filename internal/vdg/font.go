package vdg

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// glyphCols and glyphRows give the raster size of one VDG character cell.
// The MC6847's internal font is a 5x7 matrix inside an 8x12 cell; this
// rasterizes golang.org/x/image/font/basicfont's bitmap glyphs down to an
// 8x8 cell rather than hand-transcribing ROM character-generator data.
const (
	glyphCols = 8
	glyphRows = 8
)

// glyphBits holds one row-major 8x8 monochrome bitmap per VDG character
// code (the low 6 bits of an ALPHA_INTERNAL byte), built once at package
// init from basicfont.Face7x13. Code n displays ASCII rune n+0x20, the
// MC6847 internal character set's ordering.
var glyphBits [64][glyphRows]byte

func init() {
	face := basicfont.Face7x13
	pen := fixed.Point26_6{X: 0, Y: face.Metrics().Ascent}
	for code := 0; code < 64; code++ {
		glyphBits[code] = rasterizeGlyph(face, pen, rune(code+0x20))
	}
}

func rasterizeGlyph(face *basicfont.Face, pen fixed.Point26_6, r rune) [glyphRows]byte {
	var bits [glyphRows]byte
	dr, mask, maskp, _, ok := face.Glyph(pen, r)
	if !ok {
		return bits
	}
	srcW, srcH := dr.Dx(), dr.Dy()
	if srcW == 0 || srcH == 0 {
		return bits
	}
	for row := 0; row < glyphRows; row++ {
		srcY := row * srcH / glyphRows
		for col := 0; col < glyphCols; col++ {
			srcX := col * srcW / glyphCols
			_, _, _, a := mask.At(maskp.X+srcX, maskp.Y+srcY).RGBA()
			if a != 0 {
				bits[row] |= 1 << uint(glyphCols-1-col)
			}
		}
	}
	return bits
}

// glyphRow returns the bit pattern for glyph row y (0..glyphRows-1) of
// character code (0..63), MSB-first across glyphCols columns.
func glyphRow(code byte, y int) byte {
	if int(code) >= len(glyphBits) || y < 0 || y >= glyphRows {
		return 0
	}
	return glyphBits[code][y]
}
