package icloud

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"vincit.fi/photo-frame/api/apitype"
	"vincit.fi/photo-frame/common/logger"
)

const (
	userAgent      = "photo-frame/iCloudPhotos/0.1"
	requestTimeout = 30 * time.Second
)

var (
	ErrRequestFailed    = errors.New("shared album request failed")
	ErrEmptyAlbum       = errors.New("no photos in shared album")
	ErrNoDerivatives    = errors.New("no photo derivatives in stream")
	ErrChecksumNotFound = errors.New("no matching checksum for asset")
)

// Client talks to the iCloud shared stream API. The album URL is
// parsed on every call so a changed URL takes effect immediately.
type Client struct {
	client *http.Client

	// Overrides the p{partition}-sharedstreams host in tests
	baseUrl string
}

func NewClient() *Client {
	return &Client{
		client: &http.Client{Timeout: requestTimeout},
	}
}

type webStreamRequest struct {
	StreamCtag *string `json:"streamCtag"`
}

type webStreamResponse struct {
	Photos []webStreamPhoto `json:"photos"`
}

type webStreamPhoto struct {
	PhotoGuid   string                   `json:"photoGuid"`
	Derivatives map[string]webDerivative `json:"derivatives"`
}

// Width arrives as a number from some shards and as a string from
// others, so it is parsed separately.
type webDerivative struct {
	Width    json.RawMessage `json:"width"`
	Checksum string          `json:"checksum"`
}

type webAssetsRequest struct {
	PhotoGuids []string `json:"photoGuids"`
}

type webAssetsResponse struct {
	Items     map[string]webAsset    `json:"items"`
	Locations map[string]webLocation `json:"locations"`
}

type webAsset struct {
	UrlLocation string `json:"url_location"`
	UrlPath     string `json:"url_path"`
}

type webLocation struct {
	Scheme string   `json:"scheme"`
	Hosts  []string `json:"hosts"`
}

// FetchCatalog returns the shared album's current photos as a mapping
// from photo id to the checksum of the largest derivative. Photos
// without any derivative are left out.
func (s *Client) FetchCatalog(albumUrl string) (apitype.PhotoCatalog, error) {
	token, err := ParseAlbumUrl(albumUrl)
	if err != nil {
		return nil, err
	}
	partition, err := StreamPartition(token)
	if err != nil {
		return nil, err
	}

	url := s.streamUrl(token, partition, "webstream")
	logger.Debug.Printf("Fetching stream contents from %s", url)

	var response webStreamResponse
	if err := s.post(url, &webStreamRequest{}, &response); err != nil {
		return nil, err
	}

	if len(response.Photos) == 0 {
		return nil, ErrEmptyAlbum
	}

	catalog := apitype.PhotoCatalog{}
	for _, photo := range response.Photos {
		if checksum, found := largestDerivativeChecksum(photo.Derivatives); found {
			catalog[apitype.PhotoId(photo.PhotoGuid)] = checksum
		}
	}
	if len(catalog) == 0 {
		return nil, ErrNoDerivatives
	}

	logger.Debug.Printf("Stream returned %d photos", len(catalog))
	return catalog, nil
}

// ResolvePhotoUrl requests the asset URLs for one photo and composes a
// download URL from the mirror host list, picking one host at random.
func (s *Client) ResolvePhotoUrl(albumUrl string, photoId apitype.PhotoId, checksum string) (string, error) {
	token, err := ParseAlbumUrl(albumUrl)
	if err != nil {
		return "", err
	}
	partition, err := StreamPartition(token)
	if err != nil {
		return "", err
	}

	url := s.streamUrl(token, partition, "webasseturls")
	logger.Debug.Printf("Resolving photo URL for '%s' via %s", photoId, url)

	var response webAssetsResponse
	if err := s.post(url, &webAssetsRequest{PhotoGuids: []string{string(photoId)}}, &response); err != nil {
		return "", err
	}

	asset, found := response.Items[checksum]
	if !found {
		return "", fmt.Errorf("%w: %s", ErrChecksumNotFound, checksum)
	}

	scheme := "https"
	hosts := []string{asset.UrlLocation}
	if location, found := response.Locations[asset.UrlLocation]; found {
		if location.Scheme != "" {
			scheme = location.Scheme
		}
		if len(location.Hosts) > 0 {
			hosts = location.Hosts
		}
	}
	host := hosts[rand.IntN(len(hosts))]

	return fmt.Sprintf("%s://%s%s", scheme, host, asset.UrlPath), nil
}

func (s *Client) streamUrl(token string, partition int, endpoint string) string {
	base := s.baseUrl
	if base == "" {
		base = fmt.Sprintf("https://p%d-sharedstreams.icloud.com", partition)
	}
	return fmt.Sprintf("%s/%s/sharedstreams/%s", base, token, endpoint)
}

func (s *Client) post(url string, payload interface{}, response interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	request, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRequestFailed, err)
	}
	request.Header.Set("Content-Type", "text/plain")
	request.Header.Set("User-Agent", userAgent)

	httpResponse, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRequestFailed, err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d from %s", ErrRequestFailed, httpResponse.StatusCode, url)
	}

	if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
		return fmt.Errorf("%w: %s", ErrRequestFailed, err)
	}
	return nil
}

// largestDerivativeChecksum picks the checksum of the widest
// derivative. Keys are visited in sorted order so ties resolve the
// same way on every call.
func largestDerivativeChecksum(derivatives map[string]webDerivative) (string, bool) {
	keys := make([]string, 0, len(derivatives))
	for key := range derivatives {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bestWidth := -1
	checksum := ""
	for _, key := range keys {
		derivative := derivatives[key]
		if width := derivativeWidth(derivative.Width); width > bestWidth && derivative.Checksum != "" {
			bestWidth = width
			checksum = derivative.Checksum
		}
	}
	return checksum, checksum != ""
}

func derivativeWidth(raw json.RawMessage) int {
	value := strings.Trim(string(raw), `"`)
	width, err := strconv.Atoi(value)
	if err != nil {
		logger.Trace.Printf("Could not parse derivative width '%s'", value)
		return 0
	}
	return width
}
