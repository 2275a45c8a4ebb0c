// Package vdg implements the MC6847 Video Display Generator: mode
// composition from SAM and PIA1 register bits, and rendering of the
// active video-memory region into a host-provided indexed framebuffer.
package vdg

// Mode enumerates every composed VDG display mode.
type Mode int

const (
	Undefined Mode = iota
	AlphaInternal
	AlphaExternal // unsupported; Render leaves the framebuffer unchanged
	SemiGraphics8
	SemiGraphics12
	SemiGraphics24
	Graphics1C
	Graphics1R
	Graphics2C
	Graphics2R
	Graphics3C
	Graphics3R
	Graphics6C
	Graphics6R
	DMA // unsupported; Render leaves the framebuffer unchanged
)

func (m Mode) String() string {
	switch m {
	case AlphaInternal:
		return "ALPHA_INTERNAL"
	case AlphaExternal:
		return "ALPHA_EXTERNAL"
	case SemiGraphics8:
		return "SEMI_GRAPHICS_8"
	case SemiGraphics12:
		return "SEMI_GRAPHICS_12"
	case SemiGraphics24:
		return "SEMI_GRAPHICS_24"
	case Graphics1C:
		return "GRAPHICS_1C"
	case Graphics1R:
		return "GRAPHICS_1R"
	case Graphics2C:
		return "GRAPHICS_2C"
	case Graphics2R:
		return "GRAPHICS_2R"
	case Graphics3C:
		return "GRAPHICS_3C"
	case Graphics3R:
		return "GRAPHICS_3R"
	case Graphics6C:
		return "GRAPHICS_6C"
	case Graphics6R:
		return "GRAPHICS_6R"
	case DMA:
		return "DMA"
	default:
		return "UNDEFINED"
	}
}

// compose derives the active Mode from SAM's 3-bit video mode and PIA1's
// 5-bit video mode (PB bits 7..3: G, GM2, GM1, GM0, A/INT).
//
// sam_video_mode 7 is DMA regardless of the PIA bits. Otherwise, G (bit 4)
// selects between the graphics modes (chosen by GM[2:0]) and the
// character-cell modes (alphanumeric or semigraphics, chosen by
// sam_video_mode with A/INT distinguishing internal from external font).
//
// The original source's mode table carries a dead SEMI_GRAPHICS_12 arm
// whose condition duplicates SEMI_GRAPHICS_24's, leaving SEMI_GRAPHICS_24
// unreachable; this composes sam_video_mode 6 directly to SEMI_GRAPHICS_24
// per the documented intent rather than reproducing the dead branch.
func compose(samMode, piaMode byte) Mode {
	if samMode == 7 {
		return DMA
	}

	const (
		bitG    = 1 << 4
		bitAInt = 1 << 0
	)

	if piaMode&bitG != 0 {
		gm := (piaMode >> 1) & 0x07
		return graphicsModeByGM[gm]
	}

	switch samMode {
	case 0:
		if piaMode&bitAInt != 0 {
			return AlphaExternal
		}
		return AlphaInternal
	case 2:
		return SemiGraphics8
	case 4:
		return SemiGraphics12
	case 6:
		return SemiGraphics24
	default:
		return Undefined
	}
}

var graphicsModeByGM = [8]Mode{
	Graphics1C, Graphics1R, Graphics2C, Graphics2R,
	Graphics3C, Graphics3R, Graphics6C, Graphics6R,
}
