package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/common/logger"
)

const (
	panelImageFile = "panel_image.png"
	helperTimeout  = 2 * time.Minute
)

var ErrMissingHelper = errors.New("display helper command not configured")

// VendorDisplay drives panels whose vendor SDK lives outside this
// process. The raster is saved to disk and a helper command pushes it
// to the hardware.
type VendorDisplay struct {
	panel   string
	helper  string
	dataDir string

	api.Display
}

func NewVendorDisplay(panel string, helper string, dataDir string) (*VendorDisplay, error) {
	if strings.TrimSpace(helper) == "" {
		return nil, fmt.Errorf("%w: panel '%s'", ErrMissingHelper, panel)
	}
	return &VendorDisplay{panel: panel, helper: helper, dataDir: dataDir}, nil
}

func (s *VendorDisplay) Show(img image.Image) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}

	imagePath := filepath.Join(s.dataDir, panelImageFile)
	if err := imaging.Save(img, imagePath); err != nil {
		return err
	}

	// E-ink refreshes are slow, give the helper plenty of time
	ctx, cancel := context.WithTimeout(context.Background(), helperTimeout)
	defer cancel()

	command := exec.CommandContext(ctx, s.helper, s.panel, imagePath)
	if output, err := command.CombinedOutput(); err != nil {
		return fmt.Errorf("display helper failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	logger.Debug.Printf("Display helper finished for panel '%s'", s.panel)
	return nil
}

func (s *VendorDisplay) Close() {
}
