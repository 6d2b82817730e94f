// Package memory implements an in-memory blob store for tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// BlobStore keeps saved objects in a map. Safe for concurrent use.
type BlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// New returns an empty in-memory blob store.
func New() *BlobStore {
	return &BlobStore{objects: make(map[string][]byte)}
}

// Save stores a copy of data under objectName.
func (s *BlobStore) Save(_ context.Context, objectName string, data []byte) error {
	if strings.TrimSpace(objectName) == "" {
		return fmt.Errorf("object name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = append([]byte(nil), data...)
	return nil
}

// Object returns the stored bytes for objectName, or false if absent.
func (s *BlobStore) Object(objectName string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[objectName]
	return data, ok
}

// Names returns the sorted object names saved so far.
func (s *BlobStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
