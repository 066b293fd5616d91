// Package config persists the integer-valued PoW configuration keys
// (branch overrides, pattern defaults) to a TOML file on disk, generalizing
// the single in-memory boolean toggle the rest of this codebase's ancestor
// used into a small keyed store.
package config

import (
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

// fileFormat is the on-disk shape of the config file.
type fileFormat struct {
	Values map[string]int `toml:"values"`
}

// Store is a read-through, write-through map[string]int backed by a TOML
// file. The zero value is not usable; construct one with Open.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]int
}

// Open loads path if it exists, or starts from an empty store if it does
// not. A missing file is not an error: a fresh repository has no PoW
// configuration yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]int)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	var ff fileFormat
	if err := toml.Unmarshal(data, &ff); err != nil {
		return nil, err
	}
	if ff.Values != nil {
		s.values = ff.Values
	}
	return s, nil
}

// GetInt returns the configured value for key and whether it was set.
func (s *Store) GetInt(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the store to disk.
func (s *Store) Set(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLocked()
}

// Unset removes key and persists the store to disk. Unsetting a key that was
// never set is not an error.
func (s *Store) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flushLocked()
}

// Keys returns every configured key, in no particular order. Used by policy
// administration to list branch overrides.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) flushLocked() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(fileFormat{Values: s.values})
}
