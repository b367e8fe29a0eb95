package database

import (
	"errors"

	"github.com/upper/db/v4"

	"vincit.fi/photo-frame/api/apitype"
	"vincit.fi/photo-frame/common/logger"
)

type SettingsStore struct {
	database   *Database
	collection db.Collection
}

func NewSettingsStore(database *Database) *SettingsStore {
	return &SettingsStore{
		database: database,
	}
}

func (s *SettingsStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("settings")
	}
	return s.collection
}

// Get returns the stored value or the default when the key is absent.
func (s *SettingsStore) Get(key apitype.SettingKey, defaultValue string) (string, error) {
	var setting Setting
	if err := s.getCollection().Find(db.Cond{"key": key}).One(&setting); err != nil {
		if errors.Is(err, db.ErrNoMoreRows) {
			return defaultValue, nil
		}
		return defaultValue, err
	}
	return setting.Value, nil
}

func (s *SettingsStore) Set(key apitype.SettingKey, value string) error {
	logger.Debug.Printf("Updating setting %s", key)

	collection := s.getCollection()
	exists, err := collection.Find(db.Cond{"key": key}).Exists()
	if err != nil {
		return err
	}

	setting := &Setting{Key: string(key), Value: value}
	if exists {
		return collection.Find(db.Cond{"key": key}).Update(setting)
	}
	_, err = collection.Insert(setting)
	return err
}
