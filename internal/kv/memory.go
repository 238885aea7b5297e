package kv

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key]
	if !ok {
		return Document{Key: key}, nil
	}
	value := make([]byte, len(doc.Value))
	copy(value, doc.Value)
	doc.Value = value
	return doc, nil
}

func (s *MemoryStore) Commit(_ context.Context, writes ...Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		if current := s.docs[w.Key].Version; current != w.ExpectedVersion {
			return fmt.Errorf("%w: %s expected version %d, got %d", ErrVersionConflict, w.Key, w.ExpectedVersion, current)
		}
	}
	for _, w := range writes {
		if w.Value == nil {
			delete(s.docs, w.Key)
			continue
		}
		value := make([]byte, len(w.Value))
		copy(value, w.Value)
		s.docs[w.Key] = Document{Key: w.Key, Value: value, Version: w.ExpectedVersion + 1}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
