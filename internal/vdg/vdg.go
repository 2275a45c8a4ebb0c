package vdg

import "github.com/cocoemu/dragon64/internal/host"

// Reader is the memory-fabric slice the VDG needs: byte-addressable reads
// over the active display-memory window. *memory.Memory satisfies this
// without either package importing the other.
type Reader interface {
	Read(addr uint16) byte
}

const (
	textCols = 32
	textRows = 16
	cellW    = 8
	cellH    = 12
)

// resolution describes one graphics mode's framebuffer geometry and byte
// layout, taken directly from the mode table's resolution column.
type resolution struct {
	width, height int
	bytesPerRow   int
	pixelsPerByte int // 4 (2-bit pixels) or 8 (1-bit pixels), before doubling
	doubled       bool
	fourColor     bool
}

var resByMode = map[Mode]resolution{
	Graphics1C: {64, 64, 16, 4, false, true},
	Graphics1R: {128, 64, 16, 8, false, false},
	Graphics2C: {128, 64, 32, 4, false, true},
	Graphics2R: {128, 96, 16, 8, false, false},
	Graphics3C: {128, 96, 32, 4, false, true},
	Graphics3R: {128, 192, 8, 8, true, false},
	Graphics6C: {128, 192, 16, 4, true, true},
	Graphics6R: {256, 192, 32, 8, false, false},
}

const (
	textWidth  = textCols * cellW
	textHeight = textRows * cellH
)

// VDG composes the active display mode from SAM and PIA1 register bits
// and renders video memory into a host-provided indexed framebuffer.
type VDG struct {
	samMode  byte // 3 bits
	piaMode  byte // 5 bits: PIA1-PB[7:3]
	css      bool // PIA1-PB bit 0, color-set select
	offset   byte // SAM's 7-bit display-memory offset

	mode     Mode
	lastMode Mode

	disp host.Display
	fb   []byte
	w, h int
}

// New returns a VDG driving framebuffer allocation through disp.
func New(disp host.Display) *VDG {
	v := &VDG{disp: disp, lastMode: Undefined}
	return v
}

// SetSAMMode is called by internal/sam whenever the SAM video-mode field
// changes.
func (v *VDG) SetSAMMode(mode byte) {
	v.samMode = mode & 0x07
	v.recompose()
}

// SetDisplayOffset is called by internal/sam whenever the display-memory
// offset changes.
func (v *VDG) SetDisplayOffset(offset byte) { v.offset = offset & 0x7F }

// SetPIAMode is called by internal/pia's PIA1 whenever PB bits 7..3
// change (G, GM2, GM1, GM0, A/INT).
func (v *VDG) SetPIAMode(bits byte) {
	v.piaMode = bits & 0x1F
	v.recompose()
}

// SetCSS is called by internal/pia's PIA1 whenever PB bit 0 changes.
func (v *VDG) SetCSS(css bool) { v.css = css }

func (v *VDG) recompose() { v.mode = compose(v.samMode, v.piaMode) }

// baseAddress is the display-memory start address: the 7-bit SAM offset
// shifted left 9 bits, per the SAM's own definition of that field.
func (v *VDG) baseAddress() uint16 { return uint16(v.offset) << 9 }

// Mode returns the currently composed display mode.
func (v *VDG) Mode() Mode { return v.mode }

// Render paints the active display-memory window into the host
// framebuffer, negotiating a new buffer whenever the mode differs from
// the one the current buffer was negotiated for.
func (v *VDG) Render(mem Reader) {
	switch v.mode {
	case AlphaInternal:
		v.ensureBuffer(textWidth, textHeight)
		v.renderText(mem)
	case SemiGraphics8, SemiGraphics12, SemiGraphics24:
		v.ensureBuffer(textWidth, textHeight)
		v.renderSemigraphicsFull(mem)
	case AlphaExternal, DMA, Undefined:
		// Unsupported or undefined: leave the existing framebuffer as-is.
	default:
		if res, ok := resByMode[v.mode]; ok {
			v.ensureBuffer(res.width, res.height)
			v.renderGraphics(mem, res)
		}
	}
}

func (v *VDG) ensureBuffer(w, h int) {
	if v.mode == v.lastMode && v.fb != nil {
		return
	}
	if v.fb == nil {
		v.fb = v.disp.Init(w, h)
	} else {
		v.fb = v.disp.Resize(w, h)
	}
	v.w, v.h = w, h
	v.lastMode = v.mode
}

func (v *VDG) setPixel(x, y int, colorIdx byte) {
	if x < 0 || x >= v.w || y < 0 || y >= v.h {
		return
	}
	v.fb[y*v.w+x] = colorIdx
}

// renderText paints ALPHA_INTERNAL: 32x16 cells, each a font glyph or a
// semigraphic-4 cell depending on byte bit 7.
func (v *VDG) renderText(mem Reader) {
	base := v.baseAddress()
	for row := 0; row < textRows; row++ {
		for col := 0; col < textCols; col++ {
			b := mem.Read(base + uint16(col) + uint16(row)*textCols)
			ox, oy := col*cellW, row*cellH
			if b&0x80 != 0 {
				v.paintSemigraphics4Cell(ox, oy, b)
				continue
			}
			inverse := b&0x40 != 0
			code := b & 0x3F
			fg, bg := byte(colorGreen), byte(colorBlack)
			if inverse {
				fg, bg = bg, fg
			}
			v.paintGlyphCell(ox, oy, code, fg, bg)
		}
	}
}

func (v *VDG) paintGlyphCell(ox, oy int, code, fg, bg byte) {
	for y := 0; y < cellH; y++ {
		var bits byte
		if y < glyphRows {
			bits = glyphRow(code, y)
		}
		for x := 0; x < cellW; x++ {
			c := bg
			if bits&(1<<uint(cellW-1-x)) != 0 {
				c = fg
			}
			v.setPixel(ox+x, oy+y, c)
		}
	}
}

// paintSemigraphics4Cell paints a bit-7-set ALPHA_INTERNAL byte: bits 4-6
// select a foreground color, bits 0-3 a 2x2 block pattern, each quadrant
// covering half the cell in each dimension.
func (v *VDG) paintSemigraphics4Cell(ox, oy int, b byte) {
	fg := semigraphicsColors[(b>>4)&0x07]
	pattern := b & 0x0F
	halfW, halfH := cellW/2, cellH/2
	quadrants := [4]struct{ x, y, bit int }{
		{0, 0, 3}, {1, 0, 2}, {0, 1, 1}, {1, 1, 0},
	}
	for _, q := range quadrants {
		lit := pattern&(1<<uint(q.bit)) != 0
		c := byte(colorBlack)
		if lit {
			c = fg
		}
		for y := 0; y < halfH; y++ {
			for x := 0; x < halfW; x++ {
				v.setPixel(ox+q.x*halfW+x, oy+q.y*halfH+y, c)
			}
		}
	}
}

// renderSemigraphicsFull paints SEMI_GRAPHICS_8/12/24: same 32x16 cell
// grid as text mode, but every byte is always a semigraphic-4 pattern
// (the per-mode vertical resolution difference lives entirely in how
// many video-RAM bytes a ROM font driver would address per cell, which
// this core does not model beyond the shared cell grid).
func (v *VDG) renderSemigraphicsFull(mem Reader) {
	base := v.baseAddress()
	for row := 0; row < textRows; row++ {
		for col := 0; col < textCols; col++ {
			b := mem.Read(base + uint16(col) + uint16(row)*textCols)
			v.paintSemigraphics4Cell(col*cellW, row*cellH, b)
		}
	}
}

// renderGraphics paints a bitmap graphics mode: res.bytesPerRow bytes per
// scanline, each contributing pixelsPerByte pixels of 2 bits (C variants)
// or 1 bit (R variants), horizontally doubled when res.doubled is set.
func (v *VDG) renderGraphics(mem Reader, res resolution) {
	base := v.baseAddress()
	palette := v.activeGraphicsPalette(res)
	bitsPerPixel := 1
	if res.fourColor {
		bitsPerPixel = 2
	}
	pixelScale := 1
	if res.doubled {
		pixelScale = 2
	}
	for row := 0; row < res.height; row++ {
		rowAddr := base + uint16(row)*uint16(res.bytesPerRow)
		outX := 0
		for bx := 0; bx < res.bytesPerRow; bx++ {
			bits := mem.Read(rowAddr + uint16(bx))
			for p := 0; p < res.pixelsPerByte; p++ {
				var idx byte
				if bitsPerPixel == 2 {
					shift := uint((res.pixelsPerByte - 1 - p) * 2)
					idx = (bits >> shift) & 0x03
				} else {
					shift := uint(res.pixelsPerByte - 1 - p)
					idx = (bits >> shift) & 0x01
				}
				color := palette[idx]
				for s := 0; s < pixelScale; s++ {
					v.setPixel(outX, row, color)
					outX++
				}
			}
		}
	}
}

func (v *VDG) activeGraphicsPalette(res resolution) []byte {
	set := 0
	if v.css {
		set = 1
	}
	if res.fourColor {
		return graphics4Color[set][:]
	}
	return graphics2Color[set][:]
}

// State is the serializable VDG register snapshot. The framebuffer itself
// is host-owned and not part of machine save state.
type State struct {
	SAMMode       byte
	PIAMode       byte
	CSS           bool
	DisplayOffset byte
}

// Save returns a snapshot of VDG's mode-composition inputs.
func (v *VDG) Save() State {
	return State{SAMMode: v.samMode, PIAMode: v.piaMode, CSS: v.css, DisplayOffset: v.offset}
}

// Restore installs a previously saved snapshot and recomposes the mode.
func (v *VDG) Restore(st State) {
	v.samMode = st.SAMMode
	v.piaMode = st.PIAMode
	v.css = st.CSS
	v.offset = st.DisplayOffset
	v.recompose()
}
