package imagetools

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"vincit.fi/photo-frame/api/apitype"
)

var ErrInvalidTargetSize = errors.New("invalid target size")

// FitToTarget reconciles the source image with the target canvas and
// returns an image sized exactly to the target. A preserve mode takes
// precedence over the strategy. Unrecognized strategies crop to fill.
func FitToTarget(img image.Image, target apitype.Size, fit apitype.FitConfig, orientation apitype.Orientation, background color.Color) (image.Image, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTargetSize, target.GetWidth(), target.GetHeight())
	}

	switch fit.Preserve {
	case apitype.PreserveWidth:
		return preserveWidthCrop(img, target), nil
	case apitype.PreserveHeight:
		return preserveHeightCrop(img, target), nil
	}

	switch fit.Strategy {
	case apitype.FitContain:
		return Letterbox(img, target, background), nil
	case apitype.FitStretch:
		return stretch(img, target), nil
	case apitype.FitSmart:
		return smartFit(img, target, orientation, background), nil
	default:
		return cover(img, target), nil
	}
}

// Smart fit picks the strategy from the panel orientation and the
// source shape. A portrait photo on a horizontal panel keeps its full
// content with padding, everything else fills or stretches the canvas.
func smartFit(img image.Image, target apitype.Size, orientation apitype.Orientation, background color.Color) image.Image {
	source := apitype.SizeOfImage(img)
	isPortrait := source.GetHeight() > source.GetWidth()

	if orientation == apitype.OrientationVertical {
		if isPortrait {
			return cover(img, target)
		}
		return stretch(img, target)
	}

	if isPortrait {
		return Letterbox(img, target, background)
	}
	return cover(img, target)
}

func cover(img image.Image, target apitype.Size) image.Image {
	return imaging.Fill(img, target.GetWidth(), target.GetHeight(), imaging.Center, imaging.Lanczos)
}

func stretch(img image.Image, target apitype.Size) image.Image {
	return imaging.Resize(img, target.GetWidth(), target.GetHeight(), imaging.Lanczos)
}

// Letterbox scales the source to fit entirely inside the target and
// centers it on a background filled canvas. The image loader uses this
// directly to pre-fit downloaded photos.
func Letterbox(img image.Image, target apitype.Size, background color.Color) image.Image {
	source := apitype.SizeOfImage(img)
	scaledWidth, scaledHeight := apitype.ScaleToFit(
		source.GetWidth(), source.GetHeight(),
		target.GetWidth(), target.GetHeight())
	if scaledWidth < 1 {
		scaledWidth = 1
	}
	if scaledHeight < 1 {
		scaledHeight = 1
	}

	scaled := imaging.Resize(img, scaledWidth, scaledHeight, imaging.Lanczos)
	canvas := imaging.New(target.GetWidth(), target.GetHeight(), background)
	return imaging.PasteCenter(canvas, scaled)
}

// preserveWidthCrop keeps the full source width: the source is center
// cropped vertically to the target aspect ratio and then resized. The
// crop clamps to the source bounds so extreme ratios never fail.
func preserveWidthCrop(img image.Image, target apitype.Size) image.Image {
	source := apitype.SizeOfImage(img)
	targetRatio := float64(target.GetWidth()) / float64(target.GetHeight())

	cropHeight := clamp(int(math.Round(float64(source.GetWidth())/targetRatio)), 1, source.GetHeight())
	cropped := imaging.CropCenter(img, source.GetWidth(), cropHeight)
	return stretch(cropped, target)
}

func preserveHeightCrop(img image.Image, target apitype.Size) image.Image {
	source := apitype.SizeOfImage(img)
	targetRatio := float64(target.GetWidth()) / float64(target.GetHeight())

	cropWidth := clamp(int(math.Round(float64(source.GetHeight())*targetRatio)), 1, source.GetWidth())
	cropped := imaging.CropCenter(img, cropWidth, source.GetHeight())
	return stretch(cropped, target)
}

func clamp(value int, low int, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
