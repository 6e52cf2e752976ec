package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var NilError = goredis.Nil

type Options = goredis.UniversalOptions

// StreamEntry is one record in a Redis stream.
type StreamEntry struct {
	ID     string
	Values map[string]interface{}
}

// RedisAdapter is the subset of Redis the back-office needs: plain
// keys with TTL for sessions, and streams for the audit feed.
type RedisAdapter interface {
	Set(key string, value []byte, ttl time.Duration) error
	SetNX(key string, value []byte, ttl time.Duration) (bool, error)
	Get(key string) ([]byte, error)
	Del(key string) error
	Expire(key string, ttl time.Duration) error
	Exist(key string) (int64, error)
	Client() goredis.UniversalClient

	XAdd(key string, values map[string]interface{}) (string, error)
	XRange(key, start, stop string) ([]StreamEntry, error)
	XRevRange(key, start, stop string) ([]StreamEntry, error)
	XLen(key string) (int64, error)
	XTrimApprox(key string, maxLen int64) error
}

type redisAdapter struct {
	prefix   string
	Conn     goredis.UniversalClient
	ConnName string
}

var (
	connLock sync.Mutex
	conns    = map[string]goredis.UniversalClient{}
)

// NewRedisAdapter returns an adapter over a shared universal client.
// Connections are cached by name so repeated construction with the
// same name reuses the pool.
func NewRedisAdapter(name, prefix string, opts *Options) (RedisAdapter, error) {
	connLock.Lock()
	defer connLock.Unlock()

	conn, ok := conns[name]
	if !ok {
		conn = goredis.NewUniversalClient(opts)
		if err := conn.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		conns[name] = conn
	}

	return &redisAdapter{
		prefix:   prefix,
		Conn:     conn,
		ConnName: name,
	}, nil
}

func (r *redisAdapter) Set(key string, value []byte, ttl time.Duration) error {
	return r.Conn.Set(context.Background(), r.prefix+key, value, ttl).Err()
}

func (r *redisAdapter) SetNX(key string, value []byte, ttl time.Duration) (bool, error) {
	return r.Conn.SetNX(context.Background(), r.prefix+key, value, ttl).Result()
}

func (r *redisAdapter) Get(key string) ([]byte, error) {
	return r.Conn.Get(context.Background(), r.prefix+key).Bytes()
}

func (r *redisAdapter) Del(key string) error {
	return r.Conn.Del(context.Background(), r.prefix+key).Err()
}

func (r *redisAdapter) Expire(key string, ttl time.Duration) error {
	return r.Conn.Expire(context.Background(), r.prefix+key, ttl).Err()
}

func (r *redisAdapter) Exist(key string) (int64, error) {
	return r.Conn.Exists(context.Background(), r.prefix+key).Result()
}

func (r *redisAdapter) Client() goredis.UniversalClient {
	return r.Conn
}

func (r *redisAdapter) XAdd(key string, values map[string]interface{}) (string, error) {
	cmd := r.Conn.XAdd(context.Background(), &goredis.XAddArgs{
		Stream: r.prefix + key,
		ID:     "*",
		Values: values,
	})
	if cmd.Err() != nil {
		return "", cmd.Err()
	}
	return cmd.Val(), nil
}

func (r *redisAdapter) XRange(key, start, stop string) ([]StreamEntry, error) {
	cmd := r.Conn.XRange(context.Background(), r.prefix+key, start, stop)
	if cmd.Err() != nil {
		return nil, cmd.Err()
	}
	return toEntries(cmd.Val()), nil
}

func (r *redisAdapter) XRevRange(key, start, stop string) ([]StreamEntry, error) {
	cmd := r.Conn.XRevRange(context.Background(), r.prefix+key, start, stop)
	if cmd.Err() != nil {
		return nil, cmd.Err()
	}
	return toEntries(cmd.Val()), nil
}

func (r *redisAdapter) XLen(key string) (int64, error) {
	cmd := r.Conn.XLen(context.Background(), r.prefix+key)
	if cmd.Err() != nil {
		return 0, cmd.Err()
	}
	return cmd.Val(), nil
}

func (r *redisAdapter) XTrimApprox(key string, maxLen int64) error {
	return r.Conn.XTrimMaxLenApprox(context.Background(), r.prefix+key, maxLen, 0).Err()
}

func toEntries(msgs []goredis.XMessage) []StreamEntry {
	entries := make([]StreamEntry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, StreamEntry{ID: m.ID, Values: m.Values})
	}
	return entries
}
