package imageloader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/pixiv/go-libjpeg/jpeg"

	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/api/apitype"
	"vincit.fi/photo-frame/backend/imagetools"
	"vincit.fi/photo-frame/common/logger"
)

const (
	userAgent    = "photo-frame/0.1"
	fetchTimeout = 30 * time.Second
)

var (
	// ErrFetch covers transport failures: the request never completed or
	// the server answered with a non-2xx status.
	ErrFetch = errors.New("photo download failed")
	// ErrDecode covers payloads that arrived but are not a usable image.
	ErrDecode = errors.New("photo data could not be decoded")
)

var options = &jpeg.DecoderOptions{}

// HttpImageLoader downloads photos over HTTP and letterboxes them onto
// a canvas sized for the panel.
type HttpImageLoader struct {
	client *http.Client

	api.ImageLoader
}

func NewImageLoader() api.ImageLoader {
	return &HttpImageLoader{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

func (s *HttpImageLoader) FetchAndFit(url string, target apitype.Size, background color.Color) (image.Image, error) {
	data, err := s.fetch(url)
	if err != nil {
		return nil, err
	}

	decoded, err := decode(data)
	if err != nil {
		return nil, err
	}

	return imagetools.Letterbox(decoded, target, background), nil
}

func (s *HttpImageLoader) fetch(url string) ([]byte, error) {
	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFetch, err)
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFetch, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrFetch, response.Status)
	}

	if data, err := io.ReadAll(response.Body); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFetch, err)
	} else {
		return data, nil
	}
}

// decode tries libjpeg first and falls back to the registered standard
// decoders for the occasional PNG or GIF in a stream.
func decode(data []byte) (image.Image, error) {
	if decoded, err := jpeg.Decode(bytes.NewReader(data), options); err == nil {
		return orient(decoded, data), nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err)
	}
	return orient(decoded, data), nil
}

// orient applies the EXIF orientation tag when one is present. Photos
// without usable EXIF are shown as decoded.
func orient(decoded image.Image, data []byte) image.Image {
	exifData, err := apitype.NewExifData(bytes.NewReader(data))
	if err != nil {
		logger.Trace.Printf("No EXIF orientation: %s", err)
		return decoded
	}
	if !exifData.IsOriented() {
		return decoded
	}
	return apitype.ExifRotateImage(decoded, exifData.Rotation(), exifData.IsFlipped())
}
