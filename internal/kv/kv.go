// Package kv is the durable document store behind the storefront. Every
// document is a whole JSON snapshot with a version stamp; writes are
// compare-and-set against the version that was read, and a batch of writes is
// committed atomically.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrVersionConflict is returned when a document changed between read and write.
var ErrVersionConflict = errors.New("document version conflict")

// Document is a stored snapshot. An absent key is a Document with a nil Value
// and Version 0.
type Document struct {
	Key     string
	Value   []byte
	Version int64
}

// Exists reports whether the document has been written.
func (d Document) Exists() bool {
	return d.Version > 0 && d.Value != nil
}

// Write replaces (or, with a nil Value, deletes) a document if its current
// version still equals ExpectedVersion.
type Write struct {
	Key             string
	Value           []byte
	ExpectedVersion int64
}

// Store is a versioned key/value document store.
type Store interface {
	Get(ctx context.Context, key string) (Document, error)
	// Commit applies all writes atomically or none of them.
	Commit(ctx context.Context, writes ...Write) error
	Close() error
}

// Load decodes the document at key into a T. Absent keys yield the zero T.
func Load[T any](ctx context.Context, s Store, key string) (T, int64, error) {
	var v T
	doc, err := s.Get(ctx, key)
	if err != nil {
		return v, 0, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if doc.Value == nil {
		return v, doc.Version, nil
	}
	if err := json.Unmarshal(doc.Value, &v); err != nil {
		return v, 0, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return v, doc.Version, nil
}

// Encode builds a write that stores v at key.
func Encode(key string, v any, expectedVersion int64) (Write, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Write{}, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return Write{Key: key, Value: payload, ExpectedVersion: expectedVersion}, nil
}

// Delete builds a write that removes key.
func Delete(key string, expectedVersion int64) Write {
	return Write{Key: key, ExpectedVersion: expectedVersion}
}

// Update reads the document at key, applies fn and writes the result back
// against the version that was read.
func Update[T any](ctx context.Context, s Store, key string, fn func(*T) error) (T, error) {
	v, version, err := Load[T](ctx, s, key)
	if err != nil {
		return v, err
	}
	if err := fn(&v); err != nil {
		return v, err
	}
	w, err := Encode(key, v, version)
	if err != nil {
		return v, err
	}
	if err := s.Commit(ctx, w); err != nil {
		return v, fmt.Errorf("failed to save %s: %w", key, err)
	}
	return v, nil
}
