// Package history persists per-session conversation snapshots so a past
// analysis can be inspected after the assistant exits.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"gamesight/internal/agent"
)

var sessionsBucket = []byte("sessions")

// Record is the persisted conversation snapshot with metadata.
type Record struct {
	Model     string          `json:"model"`
	Messages  []agent.Message `json:"messages"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save overwrites the session's snapshot, preserving CreatedAt when the
// session already exists.
func (s *Store) Save(sessionID string, rec Record) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionsBucket)
		if err != nil {
			return err
		}

		now := time.Now()
		rec.UpdatedAt = now
		rec.CreatedAt = now

		if prev := b.Get([]byte(sessionID)); prev != nil {
			var old Record
			if err := json.Unmarshal(prev, &old); err == nil && !old.CreatedAt.IsZero() {
				rec.CreatedAt = old.CreatedAt
			}
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		return b.Put([]byte(sessionID), data)
	})
}

func (s *Store) Load(sessionID string) (Record, bool, error) {
	var (
		rec   Record
		found bool
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		if b == nil {
			return nil
		}

		data := b.Get([]byte(sessionID))
		if data == nil {
			return nil
		}

		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("decode session %s: %w", sessionID, err)
		}
		found = true
		return nil
	})

	return rec, found, err
}

// Sessions lists stored session ids in key order.
func (s *Store) Sessions() ([]string, error) {
	var ids []string

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})

	return ids, err
}
