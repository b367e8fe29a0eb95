package util

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color string")

var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// ParseHexColor parses "#RRGGBB" and "#RGB" style color strings.
func ParseHexColor(value string) (color.NRGBA, error) {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, "#") {
		return White, fmt.Errorf("%w: '%s'", ErrInvalidColor, value)
	}

	digits := trimmed[1:]
	if len(digits) == 3 {
		digits = expandShortHex(digits)
	}
	if len(digits) != 6 {
		return White, fmt.Errorf("%w: '%s'", ErrInvalidColor, value)
	}

	channels := [3]uint8{}
	for i := 0; i < 3; i++ {
		parsed, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return White, fmt.Errorf("%w: '%s'", ErrInvalidColor, value)
		}
		channels[i] = uint8(parsed)
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: 255}, nil
}

func expandShortHex(digits string) string {
	var expanded strings.Builder
	for _, digit := range digits {
		expanded.WriteRune(digit)
		expanded.WriteRune(digit)
	}
	return expanded.String()
}
