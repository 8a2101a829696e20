package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/recordex/internal/db"
)

// Incr atomically increments a counter and returns the new value.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	cmd := s.b().Incr().Key(key).Build()
	val, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpIncr, Err: err}
	}
	return val, nil
}

// SetNX stores a value only if the key does not exist yet.
// Returns false when the key was already present.
func (s *Store) SetNX(ctx context.Context, key, value string) (bool, error) {
	cmd := s.b().Set().Key(key).Value(value).Nx().Build()
	err := s.do(ctx, cmd).Error()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpSetNX, Err: err}
	}
	return true, nil
}
