package pia

// keyEntry gives the row-scan matrix position a keyboard scan code maps
// to: row selects one of PIA0's seven row-bitmap caches, colMask is the
// bit within that row's cached byte the key occupies.
type keyEntry struct {
	row     byte
	colMask byte
}

// functionKeyCodes maps scan codes 59..68 to the one-shot function-key
// latch value 1..10 (F1..F10); these never touch the row-scan matrix.
var functionKeyCodes = map[byte]byte{
	59: 1, 60: 2, 61: 3, 62: 4, 63: 5,
	64: 6, 65: 7, 66: 8, 67: 9, 68: 10,
}

// keyTable is a 49-entry AT-style scan-code to (row, column) mapping
// covering the CoCo's 7x8 keyboard matrix (alphanumerics, punctuation,
// the editing/cursor cluster, space, enter, shift, and break). Scan codes
// not present here are ignored by PB-write handling.
var keyTable = map[byte]keyEntry{
	// Row 0: A B C D E F G
	30: {0, 0x02}, // A
	48: {0, 0x04}, // B
	46: {0, 0x08}, // C
	32: {0, 0x10}, // D
	18: {0, 0x20}, // E
	33: {0, 0x40}, // F
	34: {0, 0x80}, // G

	// Row 1: H I J K L M N O
	35: {1, 0x01}, // H
	23: {1, 0x02}, // I
	36: {1, 0x04}, // J
	37: {1, 0x08}, // K
	38: {1, 0x10}, // L
	50: {1, 0x20}, // M
	49: {1, 0x40}, // N
	24: {1, 0x80}, // O

	// Row 2: P Q R S T U V W
	25: {2, 0x01}, // P
	16: {2, 0x02}, // Q (shares scan code with @ in this simplified layout)
	19: {2, 0x04}, // R
	31: {2, 0x08}, // S
	20: {2, 0x10}, // T
	22: {2, 0x20}, // U
	47: {2, 0x40}, // V
	17: {2, 0x80}, // W

	// Row 3: X Y Z 0 1 2 3 4
	45: {3, 0x01}, // X
	21: {3, 0x02}, // Y
	44: {3, 0x04}, // Z
	11: {3, 0x08}, // 0
	2:  {3, 0x10}, // 1
	3:  {3, 0x20}, // 2
	4:  {3, 0x40}, // 3
	5:  {3, 0x80}, // 4

	// Row 4: 5 6 7 8 9 ; , .
	6:  {4, 0x01}, // 5
	7:  {4, 0x02}, // 6
	8:  {4, 0x04}, // 7
	9:  {4, 0x08}, // 8
	10: {4, 0x10}, // 9
	39: {4, 0x20}, // ; (colon shares the key on a CoCo keyboard)
	51: {4, 0x40}, // ,
	52: {4, 0x80}, // .

	// Row 5: / Enter Clear Break Up Down Left Right
	53: {5, 0x01}, // /
	28: {5, 0x02}, // Enter
	1:  {5, 0x04}, // Clear (Esc)
	14: {5, 0x08}, // Break (Backspace)
	72: {5, 0x10}, // Up
	80: {5, 0x20}, // Down
	75: {5, 0x40}, // Left
	77: {5, 0x80}, // Right

	// Row 6: Space Shift
	57: {6, 0x01}, // Space
	42: {6, 0x02}, // Shift
}
