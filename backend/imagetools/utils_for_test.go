package imagetools

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

func solidImage(width int, height int, fill color.Color) image.Image {
	return imaging.New(width, height, fill)
}

func gradientImage(width int, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x + y) * 255 / (width + height)),
				A: 255,
			})
		}
	}
	return img
}

func pixelsEqual(a image.Image, b image.Image) bool {
	cloneA := imaging.Clone(a)
	cloneB := imaging.Clone(b)
	if !cloneA.Rect.Eq(cloneB.Rect) {
		return false
	}
	return bytes.Equal(cloneA.Pix, cloneB.Pix)
}

func sameColor(c1 color.Color, c2 color.Color) bool {
	r1, g1, b1, a1 := c1.RGBA()
	r2, g2, b2, a2 := c2.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
