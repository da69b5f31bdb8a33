package session

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"kisan-be/internal/vendor"
)

var (
	bucketName = []byte("session")
	currentKey = []byte("current")
)

type Store interface {
	// Load returns nil without error when nothing is stored.
	Load() (*vendor.Session, error)
	Save(s *vendor.Session) error
	Clear() error
}

// BoltStore keeps the vendor session in a single-bucket bbolt file.
type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init session store: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load() (*vendor.Session, error) {
	var out *vendor.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get(currentKey)
		if raw == nil {
			return nil
		}
		var sess vendor.Session
		if err := json.Unmarshal(raw, &sess); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		out = &sess
		return nil
	})
	return out, err
}

func (s *BoltStore) Save(sess *vendor.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(currentKey, raw)
	})
}

func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete(currentKey)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
