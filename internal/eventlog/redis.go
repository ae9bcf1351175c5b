package eventlog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSink stores the latest event under a single key, so multiple
// replicas behind a load balancer share one inspection slot.
type RedisSink struct {
	client *redis.Client
	key    string
}

// NewRedisSink creates a sink backed by the given Redis client.
func NewRedisSink(client *redis.Client, key string) *RedisSink {
	return &RedisSink{client: client, key: key}
}

func (s *RedisSink) Publish(ctx context.Context, event json.RawMessage) error {
	return s.client.Set(ctx, s.key, []byte(event), 0).Err()
}

func (s *RedisSink) Latest(ctx context.Context) (json.RawMessage, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(data), true, nil
}
