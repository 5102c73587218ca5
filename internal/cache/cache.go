package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	DelPrefix(ctx context.Context, prefix string) error
}

// Key namespaces for the public job listing.
const (
	JobsPrefix    = "jobs:"
	JobsRecentKey = JobsPrefix + "recent"
)

func JobsListKey(mbtiType, query string) string {
	return JobsPrefix + "list:" + mbtiType + ":" + query
}

// Noop is used when Redis is not configured; every read misses.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Del(context.Context, ...string) error                      { return nil }
func (Noop) DelPrefix(context.Context, string) error                   { return nil }
