package cache

import (
	"testing"
	"time"
)

func newClockedCache[T any](ttl time.Duration) (*Cache[T], *time.Time) {
	c := New[T](ttl)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })
	return c, &now
}

func TestGet_FreshEntry(t *testing.T) {
	c, clock := newClockedCache[float64](150 * time.Second)

	c.Put("THY", 284.5)
	*clock = clock.Add(149 * time.Second)

	got, ok := c.Get("THY")
	if !ok || got != 284.5 {
		t.Errorf("Get() = %v, %v, want 284.5, true", got, ok)
	}
}

func TestGet_ExpiresExactlyAtTTL(t *testing.T) {
	c, clock := newClockedCache[float64](150 * time.Second)

	c.Put("THY", 284.5)
	*clock = clock.Add(150 * time.Second)

	if _, ok := c.Get("THY"); ok {
		t.Error("entry aged exactly ttl should be a miss")
	}
}

func TestGet_MissingKey(t *testing.T) {
	c := New[string](time.Minute)
	if _, ok := c.Get("nope"); ok {
		t.Error("missing key should be a miss")
	}
}

func TestGetStale_IgnoresAge(t *testing.T) {
	c, clock := newClockedCache[string](time.Minute)

	c.Put("k", "old")
	*clock = clock.Add(24 * time.Hour)

	if _, ok := c.Get("k"); ok {
		t.Error("Get() should miss on an expired entry")
	}
	got, ok := c.GetStale("k")
	if !ok || got != "old" {
		t.Errorf("GetStale() = %q, %v, want old, true", got, ok)
	}
	if _, ok := c.GetStale("missing"); ok {
		t.Error("GetStale() should miss on an absent key")
	}
}

func TestPut_OverwritesAndRefreshes(t *testing.T) {
	c, clock := newClockedCache[int](time.Minute)

	c.Put("k", 1)
	*clock = clock.Add(2 * time.Minute)
	c.Put("k", 2)

	got, ok := c.Get("k")
	if !ok || got != 2 {
		t.Errorf("Get() = %v, %v, want 2, true", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
