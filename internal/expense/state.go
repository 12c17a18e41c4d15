package expense

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketName = "claimclam"
	stateKey   = "expenses"
)

// StateStore is the persistence port: a key-value store holding the whole
// serialized expense collection under a single fixed key. Load returns
// nil data (and no error) when no snapshot has ever been written.
type StateStore interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Close() error
}

// BoltStateStore implements StateStore using BoltDB
type BoltStateStore struct {
	db *bbolt.DB
}

// NewBoltStateStore opens (or creates) the database file and its bucket
func NewBoltStateStore(path string) (*BoltStateStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStateStore{db: db}, nil
}

// Load reads the current collection snapshot
func (b *BoltStateStore) Load() ([]byte, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(bucketName)).Get([]byte(stateKey))
		if raw == nil {
			return nil
		}
		// The slice bbolt returns is only valid inside the transaction
		data = make([]byte, len(raw))
		copy(data, raw)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return data, nil
}

// Save replaces the collection snapshot
func (b *BoltStateStore) Save(data []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(stateKey), data)
	})
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// Close closes the database connection
func (b *BoltStateStore) Close() error {
	return b.db.Close()
}
