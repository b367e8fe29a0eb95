package apitype

import (
	"image"
)

type Size struct {
	width  int
	height int
}

func (s *Size) GetHeight() int {
	return s.height
}

func (s *Size) GetWidth() int {
	return s.width
}

func SizeOf(width int, height int) Size {
	return Size{width, height}
}

func SizeOfImage(img image.Image) Size {
	bounds := img.Bounds()
	return Size{width: bounds.Dx(), height: bounds.Dy()}
}

// Swapped flips width and height. Used when the panel is mounted
// vertically and content is produced pre-rotation.
func (s *Size) Swapped() Size {
	return Size{width: s.height, height: s.width}
}

func (s *Size) IsValid() bool {
	return s.width > 0 && s.height > 0
}

// ScaleToFit returns the largest width and height that fit inside the
// target while keeping the source aspect ratio. Scales up as well as down.
func ScaleToFit(sourceWidth int, sourceHeight int, targetWidth int, targetHeight int) (int, int) {
	ratio := float32(sourceWidth) / float32(sourceHeight)
	newWidth := int(float32(targetHeight) * ratio)
	newHeight := targetHeight

	if newWidth > targetWidth {
		newWidth = targetWidth
		newHeight = int(float32(targetWidth) / ratio)
	}
	return newWidth, newHeight
}
