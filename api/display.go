package api

import (
	"image"

	"vincit.fi/photo-frame/api/apitype"
)

// Display is a physical or virtual panel that can show one image at a time.
type Display interface {
	Show(image image.Image) error
	Close()
}

// Renderer prepares an image for the configured panel and hands it to
// the active display.
type Renderer interface {
	Render(image image.Image, fit apitype.FitConfig, backgroundColor string) error
}
