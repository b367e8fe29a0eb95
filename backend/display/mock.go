package display

import (
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/common/logger"
)

const (
	mockImageFile   = "mock_display.png"
	mockPreviewFile = "mock_display_preview.png"
	previewWidth    = 400
	previewHeight   = 400
)

// MockDisplay renders to files under the data directory instead of a
// panel. Useful on development machines without display hardware.
type MockDisplay struct {
	dataDir     string
	renderCount int

	api.Display
}

func NewMockDisplay(dataDir string) *MockDisplay {
	return &MockDisplay{dataDir: dataDir}
}

func (s *MockDisplay) Show(img image.Image) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}

	imagePath := filepath.Join(s.dataDir, mockImageFile)
	if err := imaging.Save(img, imagePath); err != nil {
		return err
	}

	preview := resize.Thumbnail(previewWidth, previewHeight, img, resize.Lanczos3)
	if err := imaging.Save(preview, filepath.Join(s.dataDir, mockPreviewFile)); err != nil {
		return err
	}

	s.renderCount++
	logger.Info.Printf("Mock display rendered %dx%d image to '%s'", img.Bounds().Dx(), img.Bounds().Dy(), imagePath)
	return nil
}

func (s *MockDisplay) Close() {
}

func (s *MockDisplay) RenderCount() int {
	return s.renderCount
}
