package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/api/apitype"
	"vincit.fi/photo-frame/backend/imagetools"
	"vincit.fi/photo-frame/common/logger"
	"vincit.fi/photo-frame/common/util"
)

var ErrNoDisplay = errors.New("no display driver configured")

// Manager prepares a photo for the panel and hands the final raster to
// the driver. The same raster is saved to the current-image file so the
// last rendered frame survives restarts.
type Manager struct {
	driver           api.Display
	resolution       apitype.Size
	orientation      apitype.Orientation
	invertedImage    bool
	enhance          apitype.EnhanceSettings
	currentImagePath string

	api.Renderer
}

func NewManager(
	driver api.Display,
	resolution apitype.Size,
	orientation apitype.Orientation,
	invertedImage bool,
	enhance apitype.EnhanceSettings,
	currentImagePath string) api.Renderer {
	return &Manager{
		driver:           driver,
		resolution:       resolution,
		orientation:      orientation,
		invertedImage:    invertedImage,
		enhance:          enhance,
		currentImagePath: currentImagePath,
	}
}

func (s *Manager) Render(img image.Image, fit apitype.FitConfig, backgroundColor string) error {
	if s.driver == nil {
		return ErrNoDisplay
	}

	background := resolveBackground(backgroundColor)

	oriented, err := imagetools.NormalizeOrientation(img, s.orientation, false)
	if err != nil {
		return err
	}

	fitted, err := imagetools.FitToTarget(oriented, s.resolution, fit, s.orientation, background)
	if err != nil {
		return err
	}

	// Device-level flip for panels mounted upside down, independent of
	// the orientation setting
	if s.invertedImage {
		fitted = imaging.Rotate180(fitted)
	}

	final := imagetools.Enhance(fitted, s.enhance)

	if err := s.saveCurrentImage(final); err != nil {
		return err
	}

	return s.driver.Show(final)
}

// resolveBackground never fails: a bad color string logs a warning and
// renders on white.
func resolveBackground(value string) color.NRGBA {
	if strings.TrimSpace(value) == "" {
		return util.White
	}
	if parsed, err := util.ParseHexColor(value); err != nil {
		logger.Warn.Printf("Invalid background color '%s', using white", value)
		return util.White
	} else {
		return parsed
	}
}

func (s *Manager) saveCurrentImage(img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(s.currentImagePath), 0755); err != nil {
		return fmt.Errorf("could not create current image directory: %w", err)
	}
	if err := imaging.Save(img, s.currentImagePath); err != nil {
		return fmt.Errorf("could not save current image: %w", err)
	}
	return nil
}
