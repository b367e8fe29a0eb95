package apitype

import (
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// ExifData carries the rotation needed to bring an image to its
// intended orientation, decoded from the EXIF orientation tag.
type ExifData struct {
	orientation uint8
	rotation    float64
	flipped     bool
}

func (s *ExifData) Rotation() float64 {
	return s.rotation
}

func (s *ExifData) IsFlipped() bool {
	return s.flipped
}

func (s *ExifData) IsOriented() bool {
	return s.rotation != noRotate || s.flipped
}

func NewInvalidExifData() *ExifData {
	return &ExifData{orientation: 1, rotation: noRotate, flipped: noHorizontalFlip}
}

// NewExifData decodes EXIF from raw image bytes. Images without EXIF or
// without an orientation tag yield data that leaves the image untouched.
func NewExifData(reader io.Reader) (*ExifData, error) {
	decodedExif, err := exif.Decode(reader)
	if err != nil {
		return NewInvalidExifData(), err
	}

	orientationTag, err := decodedExif.Get(exif.Orientation)
	if err != nil {
		return NewInvalidExifData(), err
	}

	orientation, err := orientationTag.Int(0)
	if err != nil {
		return NewInvalidExifData(), err
	}

	angle, flip := ExifOrientationToAngleAndFlip(orientation)
	return &ExifData{
		orientation: uint8(orientation),
		rotation:    angle,
		flipped:     flip,
	}, nil
}

const (
	noRotate  = 0
	rotate180 = 180
	left90    = 90
	right90   = 270

	noHorizontalFlip = false
	horizontalFlip   = true
)

func ExifOrientationToAngleAndFlip(orientation int) (float64, bool) {
	switch orientation {
	case 1:
		return noRotate, noHorizontalFlip
	case 2:
		return noRotate, horizontalFlip
	case 3:
		return rotate180, noHorizontalFlip
	case 4:
		return rotate180, horizontalFlip
	case 5:
		return right90, horizontalFlip
	case 6:
		return right90, noHorizontalFlip
	case 7:
		return left90, horizontalFlip
	case 8:
		return left90, noHorizontalFlip
	default:
		return noRotate, noHorizontalFlip
	}
}

func ExifRotateImage(loadedImage image.Image, rotation float64, flipped bool) image.Image {
	loadedImage = imaging.Rotate(loadedImage, rotation, color.Black)
	if flipped {
		return imaging.FlipH(loadedImage)
	}
	return loadedImage
}
