package api

import (
	"vincit.fi/photo-frame/api/apitype"
)

// AlbumClient talks to the shared-album service. The album URL is parsed
// on every call; stream identity is never cached or persisted.
type AlbumClient interface {
	// FetchCatalog returns the current photo ids with the checksum of
	// each photo's widest derivative.
	FetchCatalog(albumUrl string) (apitype.PhotoCatalog, error)
	// ResolvePhotoUrl returns a downloadable URL for one photo,
	// matched by checksum.
	ResolvePhotoUrl(albumUrl string, photoId apitype.PhotoId, checksum string) (string, error)
}
