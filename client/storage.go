package client

import (
	"encoding/json"
	"fmt"
	"os"
)

// Storage is a JSON file-backed key-value store playing the role browser
// local storage plays for the web storefront: read once at startup, written
// synchronously after every mutation.
type Storage struct {
	path string
	data map[string]json.RawMessage
}

// NewStorage loads (or initialises) the store persisted at path.
func NewStorage(path string) (*Storage, error) {
	s := &Storage{path: path, data: map[string]json.RawMessage{}}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading storage file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("error parsing storage file: %w", err)
		}
	}
	return s, nil
}

// Get decodes the value stored under key into out. It reports whether the
// key was present.
func (s *Storage) Get(key string, out interface{}) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("error decoding %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key and flushes to disk.
func (s *Storage) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding %q: %w", key, err)
	}
	s.data[key] = raw
	return s.flush()
}

// Delete removes key and flushes to disk.
func (s *Storage) Delete(key string) error {
	delete(s.data, key)
	return s.flush()
}

func (s *Storage) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0644)
}
