package storage

import (
	"context"
	"sync"
)

var _ Repo = (*FileStore)(nil)

// FileStore keeps every entry in one JSON file. With a passphrase the file is sealed with
// scrypt + XChaCha20-Poly1305.
type FileStore struct {
	path       string
	passphrase string
	mu         sync.Mutex
}

func NewFileStore(path, passphrase string) *FileStore {
	return &FileStore{path: path, passphrase: passphrase}
}

func (s *FileStore) MultiGet(_ context.Context, keys ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := entries[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *FileStore) MultiSet(_ context.Context, pairs map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	for k, v := range pairs {
		entries[k] = v
	}
	return s.save(entries)
}

func (s *FileStore) MultiRemove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := entries[k]; ok {
			delete(entries, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(entries)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() (map[string]string, error) {
	b, err := readFile(s.path)
	if err != nil || len(b) == 0 {
		return make(map[string]string), err
	}
	if s.passphrase != "" {
		if b, err = open(s.passphrase, b); err != nil {
			return nil, err
		}
	}
	return decodeEntries(b)
}

func (s *FileStore) save(entries map[string]string) error {
	b, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	if s.passphrase != "" {
		if b, err = seal(s.passphrase, b); err != nil {
			return err
		}
	}
	return writeFile(s.path, b, 0o600)
}
