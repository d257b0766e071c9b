package cache

import (
	"testing"
	"time"
)

func TestCacheFreshness(t *testing.T) {
	now := time.Now()
	c := New(30*time.Second, 10*time.Minute)
	c.nowFunc = func() time.Time { return now }

	c.Set("events:list:all", []string{"e1"})

	if _, ok := c.Get("events:list:all"); !ok {
		t.Fatal("fresh entry missing")
	}

	// still fresh just inside the window
	now = now.Add(29 * time.Second)
	if _, ok := c.Get("events:list:all"); !ok {
		t.Error("entry expired before the freshness window")
	}

	// stale past the window
	now = now.Add(2 * time.Second)
	if _, ok := c.Get("events:list:all"); ok {
		t.Error("stale entry served")
	}
}

func TestCacheIdleEviction(t *testing.T) {
	now := time.Now()
	c := New(time.Hour, time.Minute)
	c.nowFunc = func() time.Time { return now }

	c.Set("a", 1)
	now = now.Add(2 * time.Minute)
	c.Set("b", 2) // write sweeps idle entries

	c.mu.Lock()
	_, ok := c.entries["a"]
	c.mu.Unlock()
	if ok {
		t.Error("idle entry survived the sweep")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New(time.Hour, time.Hour)
	c.Set("events:list:all", 1)
	c.Set("events:list:org1", 2)
	c.Set("events:detail:e1", 3)
	c.Set("allocations", 4)

	c.Invalidate("allocations", "events:detail:e1")
	if _, ok := c.Get("allocations"); ok {
		t.Error("invalidated key served")
	}
	if _, ok := c.Get("events:detail:e1"); ok {
		t.Error("invalidated key served")
	}

	c.InvalidatePrefix("events:list:")
	if _, ok := c.Get("events:list:all"); ok {
		t.Error("prefix-invalidated key served")
	}
	if _, ok := c.Get("events:list:org1"); ok {
		t.Error("prefix-invalidated key served")
	}
}
