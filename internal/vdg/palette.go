package vdg

// Palette is the 16-entry indexed palette fixed at host framebuffer
// initialization, per the host contract's fb_init: Black, Blue, Green,
// Cyan, Red, Magenta, Brown, Gray, DarkGray, LightBlue, LightGreen,
// LightCyan, LightRed, LightMagenta, Yellow, White, each stored as
// (B, G, R).
var Palette = [16][3]byte{
	{0x00, 0x00, 0x00}, // Black
	{0xFF, 0x00, 0x00}, // Blue
	{0x00, 0xFF, 0x00}, // Green
	{0xFF, 0xFF, 0x00}, // Cyan
	{0x00, 0x00, 0xFF}, // Red
	{0xFF, 0x00, 0xFF}, // Magenta
	{0x00, 0x55, 0x80}, // Brown
	{0xC0, 0xC0, 0xC0}, // Gray
	{0x60, 0x60, 0x60}, // DarkGray
	{0xFF, 0x80, 0x80}, // LightBlue
	{0x80, 0xFF, 0x80}, // LightGreen
	{0xFF, 0xFF, 0x80}, // LightCyan
	{0x80, 0x80, 0xFF}, // LightRed
	{0xFF, 0x80, 0xFF}, // LightMagenta
	{0x00, 0xFF, 0xFF}, // Yellow
	{0xFF, 0xFF, 0xFF}, // White
}

// Palette indices used by the renderers. ALPHA_INTERNAL text is always
// green-on-black; CSS is not consulted for text or semigraphics cells,
// whose bits 4-6 pick a color from semigraphicsColors.
const (
	colorGreen  = 2
	colorBlack  = 0
	colorYellow = 14
	colorBlue   = 1
	colorRed    = 4
	colorWhite  = 15
	colorCyan   = 3
	colorOrange = 9
)

// semigraphicsColors maps a semigraphics cell's 3-bit color field to a
// palette index, the eight colors the MC6847 offers per cell in
// SEMI_GRAPHICS_8/12/24 and the bit7 semigraphics-4 cells of
// ALPHA_INTERNAL.
var semigraphicsColors = [8]byte{
	colorGreen, colorYellow, colorBlue, colorRed,
	colorWhite, colorCyan, colorOrange, colorBlack,
}

// graphics2Color is the two-color palette used by every R-variant
// graphics mode; CSS selects the pair. Index 0 is black in both pairs;
// index 1 is green (CSS=0) or yellow (CSS=1).
var graphics2Color = [2][2]byte{
	{colorBlack, colorGreen},  // CSS=0
	{colorBlack, colorYellow}, // CSS=1
}

// graphics4Color is the four-color palette used by every C-variant
// graphics mode; CSS selects one of two four-color sets.
var graphics4Color = [2][4]byte{
	{colorGreen, colorYellow, colorBlue, colorRed},  // CSS=0
	{colorWhite, colorCyan, colorOrange, colorBlack}, // CSS=1
}
