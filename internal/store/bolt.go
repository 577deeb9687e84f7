package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tasklab/todo-portal/internal/common"
	"github.com/tasklab/todo-portal/internal/models"
)

var (
	tasksBucket = []byte("tasks")
	metaBucket  = []byte("meta")
	nextIDKey   = []byte("next_id")
)

// BoltStore is a persistent task store backed by bbolt. Records are keyed by
// big-endian identifier, so bucket iteration order equals assignment order,
// which equals insertion order (identifiers are strictly increasing).
type BoltStore struct {
	db     *bolt.DB
	logger *common.Logger
}

// NewBoltStore opens (or creates) the database at path and ensures the
// required buckets and counter exist.
func NewBoltStore(path string, logger *common.Logger) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(tasksBucket); err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists(metaBucket)
		if err != nil {
			return err
		}
		if meta.Get(nextIDKey) == nil {
			return meta.Put(nextIDKey, itob(1))
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize bolt buckets: %w", err)
	}

	logger.Debug().Str("path", path).Msg("bolt task store opened")

	return &BoltStore{db: db, logger: logger}, nil
}

// Append assigns the next identifier, persists the record, and advances the
// counter in one transaction.
func (s *BoltStore) Append(t models.Task) (models.Task, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		next := btoi(meta.Get(nextIDKey))

		t.ID = next
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal task: %w", err)
		}
		if err := tx.Bucket(tasksBucket).Put(itob(next), data); err != nil {
			return err
		}
		return meta.Put(nextIDKey, itob(next+1))
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to append task: %w", err)
	}
	return t, nil
}

// ListAll returns all records in identifier (= insertion) order.
func (s *BoltStore) ListAll() ([]models.Task, error) {
	out := []models.Task{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(tasksBucket).ForEach(func(_, v []byte) error {
			var t models.Task
			if err := json.Unmarshal(v, &t); err != nil {
				return fmt.Errorf("failed to unmarshal task: %w", err)
			}
			out = append(out, t)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if out == nil {
		out = []models.Task{}
	}
	return out, nil
}

// Find returns the record matching id.
func (s *BoltStore) Find(id int) (models.Task, error) {
	var t models.Task
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(tasksBucket).Get(itob(id))
		if data == nil {
			return &NotFoundError{ID: id}
		}
		return json.Unmarshal(data, &t)
	})
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Replace substitutes the record matching id. The key encodes the position,
// so order is preserved.
func (s *BoltStore) Replace(id int, t models.Task) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		tasks := tx.Bucket(tasksBucket)
		if tasks.Get(itob(id)) == nil {
			return &NotFoundError{ID: id}
		}
		t.ID = id
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal task: %w", err)
		}
		return tasks.Put(itob(id), data)
	})
}

// Remove deletes the record matching id and returns the removed value.
func (s *BoltStore) Remove(id int) (models.Task, error) {
	var t models.Task
	err := s.db.Update(func(tx *bolt.Tx) error {
		tasks := tx.Bucket(tasksBucket)
		data := tasks.Get(itob(id))
		if data == nil {
			return &NotFoundError{ID: id}
		}
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to unmarshal task: %w", err)
		}
		return tasks.Delete(itob(id))
	})
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// itob encodes an identifier as a big-endian key so lexical bucket order
// matches numeric order.
func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func btoi(b []byte) int {
	if len(b) != 8 {
		return 1
	}
	return int(binary.BigEndian.Uint64(b))
}
