package eventlog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySinkEmpty(t *testing.T) {
	sink := NewMemorySink()

	_, ok, err := sink.Latest(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySinkOverwrites(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()

	require.NoError(t, sink.Publish(ctx, json.RawMessage(`{"score":1}`)))
	require.NoError(t, sink.Publish(ctx, json.RawMessage(`{"score":5}`)))

	event, ok, err := sink.Latest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"score":5}`, string(event))
}

func TestRedisSink(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sink := NewRedisSink(client, "bridge:latest-csat-event")
	ctx := context.Background()

	_, ok, err := sink.Latest(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, sink.Publish(ctx, json.RawMessage(`{"event_fqn":"CONVERSATION_RATED"}`)))
	require.NoError(t, sink.Publish(ctx, json.RawMessage(`{"event_fqn":"CONVERSATION_RATED","data":{"score":3}}`)))

	event, ok, err := sink.Latest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"event_fqn":"CONVERSATION_RATED","data":{"score":3}}`, string(event))
}

func TestRedisSinkError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sink := NewRedisSink(client, "k")

	mr.Close()

	_, _, err := sink.Latest(context.Background())
	assert.Error(t, err)
}
