package icloud

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"vincit.fi/photo-frame/api/apitype"
)

const testAlbumUrl = "https://www.icloud.com/sharedalbum/#B2DGtoken"

func newStreamServer(t *testing.T, endpoint string, expectedBody string, status int, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := assert.New(t)
		a.Equal(http.MethodPost, r.Method)
		a.Equal("/B2DGtoken/sharedstreams/"+endpoint, r.URL.Path)
		a.Equal("text/plain", r.Header.Get("Content-Type"))
		a.Equal("photo-frame/iCloudPhotos/0.1", r.Header.Get("User-Agent"))

		body, _ := io.ReadAll(r.Body)
		a.Equal(expectedBody, string(body))

		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func newTestClient(server *httptest.Server) *Client {
	client := NewClient()
	client.baseUrl = server.URL
	return client
}

func TestFetchCatalog(t *testing.T) {
	a := assert.New(t)

	server := newStreamServer(t, "webstream", `{"streamCtag":null}`, http.StatusOK, `{
		"photos": [
			{
				"photoGuid": "guid-1",
				"derivatives": {
					"1": {"width": 640, "checksum": "chk-small"},
					"2": {"width": "2048", "checksum": "chk-large"}
				}
			},
			{
				"photoGuid": "guid-2",
				"derivatives": {}
			},
			{
				"photoGuid": "guid-3",
				"derivatives": {
					"1": {"width": 1024, "checksum": "chk-3"}
				}
			}
		]
	}`)
	defer server.Close()

	catalog, err := newTestClient(server).FetchCatalog(testAlbumUrl)

	a.Nil(err)
	a.Equal(apitype.PhotoCatalog{
		"guid-1": "chk-large",
		"guid-3": "chk-3",
	}, catalog)
}

func TestFetchCatalog_EmptyAlbum(t *testing.T) {
	a := assert.New(t)

	server := newStreamServer(t, "webstream", `{"streamCtag":null}`, http.StatusOK, `{"photos": []}`)
	defer server.Close()

	_, err := newTestClient(server).FetchCatalog(testAlbumUrl)

	a.ErrorIs(err, ErrEmptyAlbum)
}

func TestFetchCatalog_NoDerivatives(t *testing.T) {
	a := assert.New(t)

	server := newStreamServer(t, "webstream", `{"streamCtag":null}`, http.StatusOK, `{
		"photos": [
			{"photoGuid": "guid-1", "derivatives": {}},
			{"photoGuid": "guid-2"}
		]
	}`)
	defer server.Close()

	_, err := newTestClient(server).FetchCatalog(testAlbumUrl)

	a.ErrorIs(err, ErrNoDerivatives)
}

func TestFetchCatalog_ServerError(t *testing.T) {
	a := assert.New(t)

	server := newStreamServer(t, "webstream", `{"streamCtag":null}`, http.StatusInternalServerError, "")
	defer server.Close()

	_, err := newTestClient(server).FetchCatalog(testAlbumUrl)

	a.ErrorIs(err, ErrRequestFailed)
}

func TestFetchCatalog_InvalidAlbumUrl(t *testing.T) {
	a := assert.New(t)

	_, err := NewClient().FetchCatalog("https://example.com/album")

	a.ErrorIs(err, ErrInvalidAlbumUrl)
}

func TestResolvePhotoUrl(t *testing.T) {
	a := assert.New(t)

	server := newStreamServer(t, "webasseturls", `{"photoGuids":["guid-1"]}`, http.StatusOK, `{
		"items": {
			"chk-large": {
				"url_location": "cvws.icloud-content.com",
				"url_path": "/S/abc/IMG_1234.JPG?o=signed"
			}
		},
		"locations": {
			"cvws.icloud-content.com": {
				"scheme": "https",
				"hosts": ["cvws-1.icloud-content.com"]
			}
		}
	}`)
	defer server.Close()

	url, err := newTestClient(server).ResolvePhotoUrl(testAlbumUrl, "guid-1", "chk-large")

	a.Nil(err)
	a.Equal("https://cvws-1.icloud-content.com/S/abc/IMG_1234.JPG?o=signed", url)
}

func TestResolvePhotoUrl_PicksOfferedMirrorHost(t *testing.T) {
	a := assert.New(t)

	server := newStreamServer(t, "webasseturls", `{"photoGuids":["guid-1"]}`, http.StatusOK, `{
		"items": {
			"chk-large": {
				"url_location": "cvws.icloud-content.com",
				"url_path": "/S/abc"
			}
		},
		"locations": {
			"cvws.icloud-content.com": {
				"scheme": "https",
				"hosts": ["host-1.example.com", "host-2.example.com"]
			}
		}
	}`)
	defer server.Close()

	url, err := newTestClient(server).ResolvePhotoUrl(testAlbumUrl, "guid-1", "chk-large")

	a.Nil(err)
	a.Contains([]string{
		"https://host-1.example.com/S/abc",
		"https://host-2.example.com/S/abc",
	}, url)
}

func TestResolvePhotoUrl_DefaultsWhenLocationMissing(t *testing.T) {
	a := assert.New(t)

	server := newStreamServer(t, "webasseturls", `{"photoGuids":["guid-1"]}`, http.StatusOK, `{
		"items": {
			"chk-large": {
				"url_location": "cvws.icloud-content.com",
				"url_path": "/S/abc"
			}
		}
	}`)
	defer server.Close()

	url, err := newTestClient(server).ResolvePhotoUrl(testAlbumUrl, "guid-1", "chk-large")

	a.Nil(err)
	a.Equal("https://cvws.icloud-content.com/S/abc", url)
}

func TestResolvePhotoUrl_ChecksumNotFound(t *testing.T) {
	a := assert.New(t)

	server := newStreamServer(t, "webasseturls", `{"photoGuids":["guid-1"]}`, http.StatusOK, `{"items": {}, "locations": {}}`)
	defer server.Close()

	_, err := newTestClient(server).ResolvePhotoUrl(testAlbumUrl, "guid-1", "chk-large")

	a.ErrorIs(err, ErrChecksumNotFound)
}
