package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	N int `json:"n"`
}

func TestMemoryStoreAbsentKeyIsEmpty(t *testing.T) {
	s := NewMemoryStore()

	doc, err := s.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, doc.Exists())
	assert.Equal(t, int64(0), doc.Version)

	v, version, err := Load[counter](context.Background(), s, "missing")
	require.NoError(t, err)
	assert.Equal(t, counter{}, v)
	assert.Equal(t, int64(0), version)
}

func TestMemoryStoreVersionIncrements(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i := 1; i <= 3; i++ {
		got, err := Update(ctx, s, "c", func(c *counter) error {
			c.N++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, i, got.N)
	}

	doc, err := s.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), doc.Version)
}

func TestMemoryStoreRejectsStaleWrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, err := Encode("c", counter{N: 1}, 0)
	require.NoError(t, err)
	require.NoError(t, s.Commit(ctx, first))

	stale, err := Encode("c", counter{N: 99}, 0)
	require.NoError(t, err)
	err = s.Commit(ctx, stale)
	require.ErrorIs(t, err, ErrVersionConflict)

	v, _, err := Load[counter](ctx, s, "c")
	require.NoError(t, err)
	assert.Equal(t, 1, v.N)
}

func TestMemoryStoreBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, _ := Encode("a", counter{N: 1}, 0)
	require.NoError(t, s.Commit(ctx, a))

	a2, _ := Encode("a", counter{N: 2}, 1)
	b, _ := Encode("b", counter{N: 1}, 7) // wrong version
	require.ErrorIs(t, s.Commit(ctx, a2, b), ErrVersionConflict)

	v, version, err := Load[counter](ctx, s, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, v.N)
	assert.Equal(t, int64(1), version)

	doc, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, doc.Exists())
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	w, _ := Encode("a", counter{N: 1}, 0)
	require.NoError(t, s.Commit(ctx, w))
	require.NoError(t, s.Commit(ctx, Delete("a", 1)))

	doc, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, doc.Exists())
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	w, _ := Encode("a", counter{N: 1}, 0)
	require.NoError(t, s.Commit(ctx, w))

	doc, err := s.Get(ctx, "a")
	require.NoError(t, err)
	doc.Value[0] = 'x'

	v, _, err := Load[counter](ctx, s, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, v.N)
}
