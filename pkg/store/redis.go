package store

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/buildinfo"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// DefaultRedisPrefix namespaces blueprint keys in a shared Redis.
const DefaultRedisPrefix = "hellion:blueprint:"

// RedisStore keeps each document under "<prefix><id>".
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to the Redis server at addr and pings it.
func NewRedisStore(ctx context.Context, addr, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, ClientName: buildinfo.UserAgent()})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis at %s", addr)
	}
	return NewRedisStoreFromClient(client, prefix), nil
}

// NewRedisStoreFromClient wraps an existing client. Close closes the client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := withRetry(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.key(id)).Bytes()
		switch {
		case err == nil:
			return nil
		case stderrors.Is(err, redis.Nil):
			return ErrNotFound
		default:
			return Retryable(err)
		}
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "redis get %s", id)
	}
	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, id string, data []byte) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	err := withRetry(ctx, func() error {
		return Retryable(s.client.Set(ctx, s.key(id), data, 0).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "redis set %s", id)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	err := withRetry(ctx, func() error {
		return Retryable(s.client.Del(ctx, s.key(id)).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "redis del %s", id)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "redis scan")
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
