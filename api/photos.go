package api

import (
	"vincit.fi/photo-frame/api/apitype"
)

// PhotoRotator decides which photo to show next. One call per refresh
// cycle; persisted viewed state is committed at most once per call.
type PhotoRotator interface {
	NextPhoto() (*apitype.SelectedPhoto, error)
}

// PhotoStore persists the photo pool between cycles.
type PhotoStore interface {
	Pool() (apitype.PhotoPool, error)
	ReplacePool(pool apitype.PhotoPool) error
}

// SettingsStore is a mutable key-value store for runtime settings.
type SettingsStore interface {
	Get(key apitype.SettingKey, defaultValue string) (string, error)
	Set(key apitype.SettingKey, value string) error
}
