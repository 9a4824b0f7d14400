package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const snapshotFileName = "clientstore.json"

// ErrSnapshotCorrupt is returned by NewFileBackend when an existing snapshot
// file cannot be parsed. The constructor fails rather than discarding data;
// the selector then binds the fallback store and the snapshot stays on disk
// untouched.
var ErrSnapshotCorrupt = errors.New("snapshot file corrupt")

// FileBackend is the fast path: the full keyspace lives in memory and every
// write is synchronously flushed to a single JSON snapshot file, replaced
// atomically via rename. Construction fails when the directory is unusable
// or an existing snapshot does not parse; that failure is what makes the
// selector bind the fallback store for the rest of the process.
type FileBackend struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

// NewFileBackend opens (or creates) the snapshot under dir and loads the
// full keyspace into memory.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty snapshot directory", ErrUnavailable)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	b := &FileBackend{
		path: filepath.Join(dir, snapshotFileName),
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(raw) == 0 {
		return b, nil
	}
	if err := json.Unmarshal(raw, &b.data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}

	return b, nil
}

// Get returns the stored value for key, or ErrNotFound.
func (b *FileBackend) Get(_ context.Context, key string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key and flushes the snapshot before returning.
func (b *FileBackend) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prior, existed := b.data[key]
	b.data[key] = value
	if err := b.flushLocked(); err != nil {
		// Keep memory and disk consistent when the flush fails.
		if existed {
			b.data[key] = prior
		} else {
			delete(b.data, key)
		}
		return err
	}
	return nil
}

// Delete removes key and flushes. Missing keys are not an error.
func (b *FileBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prior, existed := b.data[key]
	if !existed {
		return nil
	}
	delete(b.data, key)
	if err := b.flushLocked(); err != nil {
		b.data[key] = prior
		return err
	}
	return nil
}

// Keys returns every stored key.
func (b *FileBackend) Keys(_ context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.data))
	for key := range b.data {
		keys = append(keys, key)
	}
	return keys, nil
}

// Clear wipes the whole keyspace and flushes the empty snapshot.
func (b *FileBackend) Clear(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prior := b.data
	b.data = make(map[string]string)
	if err := b.flushLocked(); err != nil {
		b.data = prior
		return err
	}
	return nil
}

// Close flushes any pending state. The snapshot is already durable after
// every write, so this is a final consistency check only.
func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked()
}

func (b *FileBackend) flushLocked() error {
	encoded, err := json.Marshal(b.data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
