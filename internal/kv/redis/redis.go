// Package redis stores kv documents as Redis hashes. Commits use WATCH/MULTI so
// a document touched by another client between read and write aborts the batch.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/kv"
)

const (
	fieldValue   = "value"
	fieldVersion = "version"
)

// Store is a kv.Store backed by Redis.
type Store struct {
	client *goredis.Client
	prefix string
	log    *zap.SugaredLogger
}

// Open connects to the Redis server at addr.
func Open(ctx context.Context, addr, prefix string, log *zap.SugaredLogger) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	log.Infow("Document store connected", "backend", "redis", "addr", addr)
	return New(client, prefix, log), nil
}

// New wraps an existing client. Keys are namespaced with prefix.
func New(client *goredis.Client, prefix string, log *zap.SugaredLogger) *Store {
	return &Store{client: client, prefix: prefix, log: log}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) Get(ctx context.Context, key string) (kv.Document, error) {
	fields, err := s.client.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return kv.Document{}, fmt.Errorf("failed to read document %s: %w", key, err)
	}
	if len(fields) == 0 {
		return kv.Document{Key: key}, nil
	}
	version, err := strconv.ParseInt(fields[fieldVersion], 10, 64)
	if err != nil {
		return kv.Document{}, fmt.Errorf("corrupt version for %s: %w", key, err)
	}
	return kv.Document{Key: key, Value: []byte(fields[fieldValue]), Version: version}, nil
}

func (s *Store) Commit(ctx context.Context, writes ...kv.Write) error {
	if len(writes) == 0 {
		return nil
	}

	keys := make([]string, len(writes))
	for i, w := range writes {
		keys[i] = s.key(w.Key)
	}

	err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
		for i, w := range writes {
			current, err := tx.HGet(ctx, keys[i], fieldVersion).Int64()
			if errors.Is(err, goredis.Nil) {
				current = 0
			} else if err != nil {
				return fmt.Errorf("failed to read version of %s: %w", w.Key, err)
			}
			if current != w.ExpectedVersion {
				return fmt.Errorf("%w: %s expected version %d, got %d", kv.ErrVersionConflict, w.Key, w.ExpectedVersion, current)
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, w := range writes {
				if w.Value == nil {
					pipe.Del(ctx, keys[i])
					continue
				}
				pipe.HSet(ctx, keys[i], fieldValue, w.Value, fieldVersion, w.ExpectedVersion+1)
			}
			return nil
		})
		return err
	}, keys...)

	if errors.Is(err, goredis.TxFailedErr) {
		s.log.Warnw("Document commit aborted by concurrent writer", "keys", keys)
		return fmt.Errorf("%w: watched keys changed", kv.ErrVersionConflict)
	}
	return err
}

func (s *Store) Close() error {
	return s.client.Close()
}
