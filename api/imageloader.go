package api

import (
	"image"
	"image/color"

	"vincit.fi/photo-frame/api/apitype"
)

// ImageLoader downloads a photo and composites it onto a solid canvas
// sized for the panel, preserving the source aspect ratio.
type ImageLoader interface {
	FetchAndFit(url string, target apitype.Size, background color.Color) (image.Image, error)
}
