package rotation

import (
	"errors"
	"maps"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/api/apitype"
	"vincit.fi/photo-frame/common/logger"
)

var (
	ErrNoAlbumConfigured = errors.New("no album URL configured")
	ErrNoPhotos          = errors.New("no photos available")
)

// Engine owns the viewed state machine over the photo pool. One
// NextPhoto call runs a whole cycle: catalog sync, selection, URL
// resolution and a single commit of the updated pool. State lives in
// the stores, nothing is cached between cycles.
type Engine struct {
	album    api.AlbumClient
	photos   api.PhotoStore
	settings api.SettingsStore
	random   *rand.Rand
}

func NewEngine(album api.AlbumClient, photos api.PhotoStore, settings api.SettingsStore) *Engine {
	seed := uint64(time.Now().UnixNano())
	return NewSeededEngine(album, photos, settings, rand.New(rand.NewPCG(seed, seed)))
}

// NewSeededEngine takes the random source used for selection so tests
// can pin the outcome with a fixed seed.
func NewSeededEngine(album api.AlbumClient, photos api.PhotoStore, settings api.SettingsStore, random *rand.Rand) *Engine {
	return &Engine{
		album:    album,
		photos:   photos,
		settings: settings,
		random:   random,
	}
}

func (s *Engine) NextPhoto() (*apitype.SelectedPhoto, error) {
	albumUrl, err := s.settings.Get(apitype.AlbumUrlSetting, "")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(albumUrl) == "" {
		return nil, ErrNoAlbumConfigured
	}

	catalog, err := s.album.FetchCatalog(albumUrl)
	if err != nil {
		return nil, err
	}

	previous, err := s.photos.Pool()
	if err != nil {
		return nil, err
	}

	pool, changed := mergeCatalog(previous, catalog)
	if changed {
		logger.Info.Printf("Catalog sync changed the pool: %d photos (was %d)", len(pool), len(previous))
	}

	eligible := unviewedIds(pool)
	if len(eligible) == 0 && len(pool) > 0 {
		logger.Info.Print("All photos viewed. Resetting viewed flags")
		for id, entry := range pool {
			entry.Viewed = false
			pool[id] = entry
		}
		eligible = unviewedIds(pool)
	}

	if len(eligible) == 0 {
		return nil, ErrNoPhotos
	}

	chosenId := eligible[s.random.IntN(len(eligible))]
	chosen := pool[chosenId]
	logger.Info.Printf("Selected photo '%s' (%d of %d unviewed)", chosenId, len(eligible), len(pool))

	// Resolve before mutating persisted state so a failed resolution
	// leaves the pool exactly as it was.
	url, err := s.album.ResolvePhotoUrl(albumUrl, chosenId, chosen.Checksum)
	if err != nil {
		return nil, err
	}

	chosen.Viewed = true
	pool[chosenId] = chosen

	// Marking the selection viewed always dirties the pool, so every
	// successful cycle commits exactly once, here.
	if err := s.photos.ReplacePool(pool); err != nil {
		return nil, err
	}

	return &apitype.SelectedPhoto{
		Id:       chosenId,
		Checksum: chosen.Checksum,
		Url:      url,
	}, nil
}

// mergeCatalog builds a new pool holding exactly the catalog's ids.
// The viewed flag carries over for ids that existed before, new ids
// start unviewed and ids gone from the catalog are dropped. The
// returned flag tells whether the result differs from the previous
// pool.
func mergeCatalog(previous apitype.PhotoPool, catalog apitype.PhotoCatalog) (apitype.PhotoPool, bool) {
	pool := apitype.PhotoPool{}
	for id, checksum := range catalog {
		entry := apitype.PoolEntry{Checksum: checksum}
		if existing, found := previous[id]; found {
			entry.Viewed = existing.Viewed
		}
		pool[id] = entry
	}
	return pool, !maps.Equal(previous, pool)
}

// unviewedIds returns the eligible ids in sorted order so a seeded
// random source selects reproducibly.
func unviewedIds(pool apitype.PhotoPool) []apitype.PhotoId {
	ids := make([]apitype.PhotoId, 0, len(pool))
	for id, entry := range pool {
		if !entry.Viewed {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}
