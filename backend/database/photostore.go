package database

import (
	"github.com/upper/db/v4"

	"vincit.fi/photo-frame/api/apitype"
	"vincit.fi/photo-frame/common/logger"
)

type PhotoStore struct {
	database   *Database
	collection db.Collection
}

func NewPhotoStore(database *Database) *PhotoStore {
	return &PhotoStore{
		database: database,
	}
}

func (s *PhotoStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("photo")
	}
	return s.collection
}

func (s *PhotoStore) getCollectionForSession(session db.Session) db.Collection {
	return session.Collection(s.getCollection().Name())
}

func (s *PhotoStore) Pool() (apitype.PhotoPool, error) {
	var photos []Photo
	if err := s.getCollection().Find().All(&photos); err != nil {
		return nil, err
	}

	pool := apitype.PhotoPool{}
	for _, photo := range photos {
		pool[apitype.PhotoId(photo.Id)] = apitype.PoolEntry{
			Checksum: photo.Checksum,
			Viewed:   photo.Viewed,
		}
	}
	return pool, nil
}

// ReplacePool writes the whole pool in one transaction. The previous
// rows are dropped so removed photos do not linger.
func (s *PhotoStore) ReplacePool(pool apitype.PhotoPool) error {
	logger.Debug.Printf("Persisting pool with %d photos", len(pool))
	return s.getCollection().Session().Tx(func(session db.Session) error {
		collection := s.getCollectionForSession(session)
		if err := collection.Truncate(); err != nil {
			return err
		}

		for id, entry := range pool {
			photo := &Photo{
				Id:       string(id),
				Checksum: entry.Checksum,
				Viewed:   entry.Viewed,
			}
			if _, err := collection.Insert(photo); err != nil {
				logger.Error.Printf("Error while persisting photo '%s'", id)
				return err
			}
		}
		return nil
	})
}
