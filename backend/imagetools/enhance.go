package imagetools

import (
	"image"

	"github.com/disintegration/imaging"

	"vincit.fi/photo-frame/api/apitype"
)

// Enhance applies brightness, contrast, saturation and sharpness as
// multiplicative adjustments in that fixed order. Each stage works on
// the previous stage's output and a 1.0 multiplier leaves the image
// untouched.
func Enhance(img image.Image, settings apitype.EnhanceSettings) image.Image {
	result := img

	if settings.Brightness() != 1.0 {
		result = imaging.AdjustBrightness(result, toPercentage(settings.Brightness()))
	}
	if settings.Contrast() != 1.0 {
		result = imaging.AdjustContrast(result, toPercentage(settings.Contrast()))
	}
	if settings.Saturation() != 1.0 {
		result = imaging.AdjustSaturation(result, toPercentage(settings.Saturation()))
	}
	if sharpness := settings.Sharpness(); sharpness > 1.0 {
		result = imaging.Sharpen(result, sharpness-1.0)
	} else if sharpness < 1.0 {
		result = imaging.Blur(result, 1.0-sharpness)
	}

	return result
}

// toPercentage maps a multiplier to the -100..100 percentage range the
// imaging adjustments expect.
func toPercentage(multiplier float64) float64 {
	return (multiplier - 1.0) * 100
}
