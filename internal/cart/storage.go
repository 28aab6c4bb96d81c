package cart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrStorage wraps every failure to read or write persisted cart state.
var ErrStorage = errors.New("cart storage")

// ErrQuotaExceeded is returned by MemStorage when a write would not fit.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Storage is a string-keyed blob store, the device-local equivalent of a
// browser's localStorage.
type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// FileStorage keeps one file per key under Dir. Writes replace the file
// atomically; with several writers the last one wins.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{Dir: dir}
}

// DefaultDir is the per-user directory used when none is configured.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "shopfront"), nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

func (s *FileStorage) Get(key string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *FileStorage) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.Dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

// MemStorage is an in-process Storage. A positive Quota caps the total
// bytes held across keys.
type MemStorage struct {
	mu    sync.Mutex
	m     map[string][]byte
	Quota int
}

func NewMemStorage() *MemStorage {
	return &MemStorage{m: make(map[string][]byte)}
}

func (s *MemStorage) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (s *MemStorage) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Quota > 0 {
		used := len(value)
		for k, v := range s.m {
			if k != key {
				used += len(v)
			}
		}
		if used > s.Quota {
			return fmt.Errorf("%w: %d > %d bytes", ErrQuotaExceeded, used, s.Quota)
		}
	}

	s.m[key] = append([]byte(nil), value...)
	return nil
}
