package theme

import (
	"strconv"
	"strings"
)

const (
	TextBlack = "#000000"
	TextWhite = "#ffffff"

	// Rec. 709 weights scaled by 10000 so the comparison stays exact.
	weightRed          = 2126
	weightGreen        = 7152
	weightBlue         = 722
	luminanceThreshold = 128 * 10000
)

// ContrastText picks black or white text for the given background color.
// Accepts 3- or 6-digit hex with or without a leading '#'; anything else
// falls back to white.
func ContrastText(background string) string {
	r, g, b, ok := parseHexColor(background)
	if !ok {
		return TextWhite
	}

	luminance := weightRed*int(r) + weightGreen*int(g) + weightBlue*int(b)
	if luminance > luminanceThreshold {
		return TextBlack
	}
	return TextWhite
}

func parseHexColor(raw string) (r, g, b uint8, ok bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(raw), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return uint8(value >> 16), uint8(value >> 8), uint8(value), true
}
