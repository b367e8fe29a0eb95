package display

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"

	"vincit.fi/photo-frame/api"
)

var (
	testRed  = color.NRGBA{R: 255, A: 255}
	testBlue = color.NRGBA{B: 255, A: 255}
	testGray = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
)

type StubDisplay struct {
	api.Display

	shown   []image.Image
	showErr error
}

func (s *StubDisplay) Show(img image.Image) error {
	if s.showErr != nil {
		return s.showErr
	}
	s.shown = append(s.shown, img)
	return nil
}

func (s *StubDisplay) Close() {
}

type StubSender struct {
	api.Sender
}

func solidImage(width int, height int, fill color.Color) *image.NRGBA {
	return imaging.New(width, height, fill)
}

func assertSameColor(t *testing.T, expected color.Color, actual color.Color) {
	t.Helper()
	eR, eG, eB, eA := expected.RGBA()
	aR, aG, aB, aA := actual.RGBA()
	assert.Equal(t, []uint32{eR, eG, eB, eA}, []uint32{aR, aG, aB, aA})
}
