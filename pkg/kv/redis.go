package kv

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	redisclient "github.com/angelmondragon/wandermart-backend/pkg/redis"
	"github.com/redis/go-redis/v9"
)

const (
	fieldPayload  = "payload"
	fieldRevision = "revision"
)

// RedisStore keeps each entry in a hash and uses WATCH/MULTI for
// conditional writes.
type RedisStore struct {
	client *redisclient.Client
}

func NewRedisStore(client *redisclient.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, error) {
	vals, err := s.client.Raw().HMGet(ctx, s.client.KVKey(key), fieldPayload, fieldRevision).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("hmget %s: %w", key, err)
	}
	payload, ok := vals[0].(string)
	if !ok {
		return Entry{}, ErrNotFound
	}
	var rev int64
	if raw, ok := vals[1].(string); ok {
		if rev, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return Entry{}, fmt.Errorf("parse revision of %s: %w", key, err)
		}
	}
	return Entry{Value: []byte(payload), Revision: rev}, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	hashKey := s.client.KVKey(key)
	next := expected + 1

	err := s.client.Raw().Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, hashKey, fieldRevision).Int64()
		switch {
		case errors.Is(err, redis.Nil):
			current = 0
		case err != nil:
			return err
		}
		if current != expected {
			return ErrRevisionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, hashKey, fieldPayload, string(value), fieldRevision, next)
			return nil
		})
		return err
	}, hashKey)

	switch {
	case err == nil:
		return next, nil
	case errors.Is(err, ErrRevisionConflict), errors.Is(err, redis.TxFailedErr):
		return 0, ErrRevisionConflict
	default:
		return 0, fmt.Errorf("put %s: %w", key, err)
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Raw().Del(ctx, s.client.KVKey(key)).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
