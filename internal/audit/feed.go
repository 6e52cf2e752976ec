// Package audit stores the admin activity feed in a Redis stream. The
// stream is append-only and capped; entries are recorded explicitly by
// operators, never derived from record mutations.
package audit

import (
	"fmt"
	"time"

	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/pkg/redis"
)

type Feed struct {
	redis  redis.RedisAdapter
	stream string
	maxLen int64
}

func NewFeed(redisAdapter redis.RedisAdapter, stream string, maxLen int64) *Feed {
	return &Feed{
		redis:  redisAdapter,
		stream: stream,
		maxLen: maxLen,
	}
}

// Record appends one activity. The stream entry id becomes the
// activity id, which keeps identifiers unique without a counter.
func (f *Feed) Record(p model.ActivityCreateRequest) (model.Activity, error) {
	if err := p.Validate(); err != nil {
		return model.Activity{}, err
	}

	now := time.Now().UTC()
	id, err := f.redis.XAdd(f.stream, map[string]interface{}{
		"user":   p.User,
		"action": p.Action,
		"type":   string(p.Type),
		"ts":     now.Format(time.RFC3339Nano),
	})
	if err != nil {
		return model.Activity{}, fmt.Errorf("append activity: %w", err)
	}

	if f.maxLen > 0 {
		if err := f.redis.XTrimApprox(f.stream, f.maxLen); err != nil {
			return model.Activity{}, fmt.Errorf("trim activity stream: %w", err)
		}
	}

	return model.Activity{
		ID:        id,
		User:      p.User,
		Action:    p.Action,
		Timestamp: now,
		Type:      p.Type,
	}, nil
}

// List returns the whole feed, oldest first.
func (f *Feed) List() ([]model.Activity, error) {
	entries, err := f.redis.XRange(f.stream, "-", "+")
	if err != nil {
		return nil, fmt.Errorf("read activity stream: %w", err)
	}
	out := make([]model.Activity, 0, len(entries))
	for _, e := range entries {
		out = append(out, toActivity(e))
	}
	return out, nil
}

func (f *Feed) Len() (int64, error) {
	return f.redis.XLen(f.stream)
}

func toActivity(e redis.StreamEntry) model.Activity {
	a := model.Activity{ID: e.ID}
	if v, ok := e.Values["user"].(string); ok {
		a.User = v
	}
	if v, ok := e.Values["action"].(string); ok {
		a.Action = v
	}
	if v, ok := e.Values["type"].(string); ok {
		a.Type = model.ActivityType(v)
	}
	if v, ok := e.Values["ts"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			a.Timestamp = ts
		}
	}
	return a
}
