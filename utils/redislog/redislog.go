// Package redislog keeps a short audit trail of domain events in a Redis LIST.
// It complements the process logger: entries survive restarts and can be tailed
// from any Redis client with LRANGE.
package redislog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Default list settings used by the serve command.
const (
	DefaultKey       = "logs:todo"
	DefaultMax       = 1000
	DefaultRetention = 7 * 24 * time.Hour
)

// Entry is one audit record, stored as JSON.
type Entry struct {
	Level  string            `json:"level"`
	Event  string            `json:"event"`
	UserID string            `json:"user_id,omitempty"`
	Time   string            `json:"time"`
	Meta   map[string]string `json:"meta,omitempty"`
}

// Logger pushes entries with LPUSH and trims the list to the newest max items.
// A nil *Logger is valid and discards everything.
type Logger struct {
	rdb       *redis.Client
	key       string
	max       int64
	retention time.Duration // 0 keeps the key forever
	now       func() time.Time
}

// New returns nil when rdb is nil so callers can pass the result around unconditionally.
func New(rdb *redis.Client, key string, max int64, retention time.Duration) *Logger {
	if rdb == nil {
		return nil
	}
	return &Logger{rdb: rdb, key: key, max: max, retention: retention, now: time.Now}
}

// Key is the Redis list the logger writes to.
func (l *Logger) Key() string {
	if l == nil {
		return ""
	}
	return l.key
}

func (l *Logger) write(ctx context.Context, level, event, userID string, meta map[string]string) {
	if l == nil || l.rdb == nil {
		return
	}
	b, err := json.Marshal(Entry{
		Level:  level,
		Event:  event,
		UserID: userID,
		Time:   l.now().UTC().Format(time.RFC3339),
		Meta:   meta,
	})
	if err != nil {
		return
	}
	// Audit writes are best effort; a Redis outage must not fail the request.
	if err := l.rdb.LPush(ctx, l.key, b).Err(); err != nil {
		return
	}
	_ = l.rdb.LTrim(ctx, l.key, 0, l.max-1).Err()
	if l.retention > 0 {
		_ = l.rdb.Expire(ctx, l.key, l.retention).Err()
	}
}

func (l *Logger) Info(ctx context.Context, event, userID string, meta map[string]string) {
	l.write(ctx, "info", event, userID, meta)
}

func (l *Logger) Warn(ctx context.Context, event, userID string, meta map[string]string) {
	l.write(ctx, "warn", event, userID, meta)
}

func (l *Logger) Error(ctx context.Context, event, userID string, meta map[string]string) {
	l.write(ctx, "error", event, userID, meta)
}

// Recent returns up to n newest entries, newest first.
func (l *Logger) Recent(ctx context.Context, n int64) ([]Entry, error) {
	if l == nil || l.rdb == nil || n <= 0 {
		return nil, nil
	}
	raw, err := l.rdb.LRange(ctx, l.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(raw))
	for _, r := range raw {
		var e Entry
		if json.Unmarshal([]byte(r), &e) == nil {
			out = append(out, e)
		}
	}
	return out, nil
}
