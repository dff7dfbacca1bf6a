package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/advisor"
	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "advisor:snapshot:"

// Redis stores snapshots as string values, one key per user.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to a redis server and checks it answers.
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, classify("connect to redis", err)
	}
	return &Redis{client: client}, nil
}

// NewRedisClient wraps an existing client.
func NewRedisClient(client *redis.Client) *Redis { return &Redis{client: client} }

func (r *Redis) Load(ctx context.Context, user string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+user).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, advisor.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, classify(fmt.Sprintf("load snapshot of %q", user), err)
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, user string, data []byte) error {
	err := r.client.Set(ctx, redisKeyPrefix+user, data, 0).Err()
	return classify(fmt.Sprintf("save snapshot of %q", user), err)
}

func (r *Redis) Close() error { return r.client.Close() }
