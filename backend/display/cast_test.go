package display

import (
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/mdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vincit.fi/photo-frame/api/apitype"
)

func TestCastCanvas_ScalesOntoTvCanvas(t *testing.T) {
	a := require.New(t)

	canvas := castCanvas(solidImage(800, 480, testBlue))

	a.Equal(apitype.SizeOf(castCanvasWidth, castCanvasHeight), apitype.SizeOfImage(canvas))

	// Photo centered at full height, blurred grayscale fill on the sides
	assertSameColor(t, testBlue, canvas.At(960, 540))
	r, g, b, _ := canvas.At(10, 540).RGBA()
	a.Equal(r, g)
	a.Equal(g, b)
}

func TestImageHandler_ServesCurrentImageAsJpeg(t *testing.T) {
	a := require.New(t)

	display := NewCastDisplay(0, "", &StubSender{})
	display.currentImage = solidImage(800, 480, testBlue)

	recorder := httptest.NewRecorder()
	display.imageHandler(recorder, httptest.NewRequest(http.MethodGet, "/secret/cache-buster", nil))

	a.Equal(http.StatusOK, recorder.Code)
	a.Equal("image/jpeg", recorder.Header().Get("Content-Type"))

	served, err := jpeg.Decode(recorder.Body)
	a.Nil(err)
	a.Equal(apitype.SizeOf(castCanvasWidth, castCanvasHeight), apitype.SizeOfImage(served))
}

func TestImageHandler_WithoutImageRespondsNotFound(t *testing.T) {
	a := assert.New(t)

	display := NewCastDisplay(0, "", &StubSender{})

	recorder := httptest.NewRecorder()
	display.imageHandler(recorder, httptest.NewRequest(http.MethodGet, "/secret/cache-buster", nil))

	a.Equal(http.StatusNotFound, recorder.Code)
}

func TestResolveDeviceName(t *testing.T) {
	a := assert.New(t)

	entry := &mdns.ServiceEntry{InfoFields: []string{"id=abc123", "fn=Living Room TV", "md=Chromecast"}}

	a.Equal("Living Room TV", resolveDeviceName(entry))
}

func TestNewCacheBuster_Varies(t *testing.T) {
	a := assert.New(t)

	a.NotEmpty(newCacheBuster())
	a.NotEqual(newCacheBuster(), newCacheBuster())
}
