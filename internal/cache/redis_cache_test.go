package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb), mr
}

type entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestRedisCache_GetSet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got []entry
	hit, err := c.GetJSON(ctx, "jobs:list::", &got)
	if err != nil || hit {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}

	want := []entry{{ID: "1", Title: "Quran Teacher"}}
	if err := c.SetJSON(ctx, "jobs:list::", want, time.Minute); err != nil {
		t.Fatal(err)
	}
	hit, err = c.GetJSON(ctx, "jobs:list::", &got)
	if err != nil || !hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("got %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	hit, _ = c.GetJSON(ctx, "jobs:list::", &got)
	if hit {
		t.Error("entry should expire with its ttl")
	}
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	if err := mr.Set("jobs:recent", "{not json"); err != nil {
		t.Fatal(err)
	}

	var got []entry
	hit, err := c.GetJSON(context.Background(), "jobs:recent", &got)
	if err != nil || hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if mr.Exists("jobs:recent") {
		t.Error("corrupt entry should be dropped")
	}
}

func TestRedisCache_DelPrefix(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 250; i++ {
		if err := c.SetJSON(ctx, JobsListKey(fmt.Sprintf("T%03d", i), ""), i, time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	_ = c.SetJSON(ctx, JobsRecentKey, []int{1}, time.Minute)
	_ = c.SetJSON(ctx, "auth:revoked:abc", "1", time.Minute)

	if err := c.DelPrefix(ctx, JobsPrefix); err != nil {
		t.Fatalf("DelPrefix() error = %v", err)
	}

	keys := mr.Keys()
	if len(keys) != 1 || keys[0] != "auth:revoked:abc" {
		t.Errorf("remaining keys = %v", keys)
	}

	// nothing to delete
	if err := c.DelPrefix(ctx, JobsPrefix); err != nil {
		t.Errorf("DelPrefix() on empty prefix error = %v", err)
	}
}

func TestJobsListKey(t *testing.T) {
	if got := JobsListKey("INFJ", "teacher"); got != "jobs:list:INFJ:teacher" {
		t.Errorf("JobsListKey() = %q", got)
	}
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()
	if err := c.SetJSON(ctx, "k", 1, time.Minute); err != nil {
		t.Fatal(err)
	}
	var v int
	if hit, err := c.GetJSON(ctx, "k", &v); hit || err != nil {
		t.Errorf("Noop must always miss, hit=%v err=%v", hit, err)
	}
}
