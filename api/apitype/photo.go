package apitype

// PhotoId is the stable identity of a remote photo in a shared album.
type PhotoId string

// PhotoCatalog maps photo ids to the content checksum of their widest
// derivative, as returned by a single catalog fetch.
type PhotoCatalog map[PhotoId]string

// PoolEntry is the persisted per-photo state.
type PoolEntry struct {
	Checksum string
	Viewed   bool
}

// PhotoPool is the persisted pool of known photos keyed by id.
type PhotoPool map[PhotoId]PoolEntry

// SelectedPhoto is the result of one rotation cycle: the chosen photo
// and its resolved download URL.
type SelectedPhoto struct {
	Id       PhotoId
	Checksum string
	Url      string
}

type SettingKey string

const (
	AlbumUrlSetting      SettingKey = "album_url"
	LastImageHashSetting SettingKey = "last_image_hash"
)
