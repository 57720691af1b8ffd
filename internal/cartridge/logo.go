package cartridge

import "strings"

const (
	logoRows    = 8
	logoColumns = 48
)

var nintendoLogo = [logoLength]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// LogoMatrix is the 48x8 bitmap that the boot ROM scrolls onto the screen.
type LogoMatrix [logoRows][logoColumns]bool

// Matrix decodes the logo of the header. Each half of the logo data encodes
// 4 rows of 12 tiles; every byte holds 2 rows of 4 pixels of a tile.
func (h Header) Matrix() LogoMatrix {
	var matrix LogoMatrix
	half := logoLength / 2
	decodeLogoChunk(h.Logo[:half], matrix[:4])
	decodeLogoChunk(h.Logo[half:], matrix[4:])
	return matrix
}

func decodeLogoChunk(chunk []byte, rows [][logoColumns]bool) {
	for row := range 2 {
		for col := range 12 {
			b := chunk[2*col+row]
			for bit := range 4 {
				rows[2*row][4*col+bit] = b&(0x80>>bit) != 0
				rows[2*row+1][4*col+bit] = b&(0x08>>bit) != 0
			}
		}
	}
}

// String renders the matrix using block characters, one line per row.
func (m LogoMatrix) String() string {
	var sb strings.Builder
	for _, line := range m {
		for _, dot := range line {
			if dot {
				sb.WriteRune('█')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
