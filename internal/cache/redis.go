package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is absent.
var ErrMiss = errors.New("cache miss")

type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		Protocol: 2,
	})

	return &Redis{client: client}
}

// Ping verifies the connection. Callers treat a failure as "run without
// cache", not as a fatal error.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Set(ctx context.Context, k string, v any, ttl time.Duration) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, k, value, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, k string, into any) error {
	res := r.client.Get(ctx, k)
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return ErrMiss
		}
		return res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(buf, into)
}

func (r *Redis) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
