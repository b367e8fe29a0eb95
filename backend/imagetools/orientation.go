package imagetools

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"vincit.fi/photo-frame/api/apitype"
)

var ErrInvalidOrientation = errors.New("invalid orientation")

// NormalizeOrientation rotates the image to the panel's logical
// orientation: horizontal is 0 and vertical 90 degrees, inverted adds
// another 180. Right angle rotations are lossless and the canvas
// expands so corners are never cropped.
func NormalizeOrientation(img image.Image, orientation apitype.Orientation, inverted bool) (image.Image, error) {
	var angle int
	switch orientation {
	case apitype.OrientationHorizontal:
		angle = 0
	case apitype.OrientationVertical:
		angle = 90
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidOrientation, orientation)
	}

	if inverted {
		angle = (angle + 180) % 360
	}

	switch angle {
	case 90:
		return imaging.Rotate90(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 270:
		return imaging.Rotate270(img), nil
	default:
		return img, nil
	}
}
