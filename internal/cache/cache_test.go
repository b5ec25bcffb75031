package cache

import (
	"testing"
)

func TestCacheBasicOperations(t *testing.T) {
	c := New[string]()

	c.Set("test-key", "test-value")

	val, found := c.Get("test-key")
	if !found {
		t.Fatal("expected to find cached value")
	}
	if val != "test-value" {
		t.Errorf("got %v, want test-value", val)
	}

	// Test miss
	val, found = c.Get("nonexistent")
	if found {
		t.Error("expected cache miss for nonexistent key")
	}
	if val != "" {
		t.Errorf("miss should return zero value, got %q", val)
	}
}

func TestCacheStats(t *testing.T) {
	c := New[[]string]()

	c.Set("key1", []string{"a"})
	c.Get("key1") // hit
	c.Get("key1") // hit
	c.Get("key2") // miss

	stats := c.Stats()

	if stats["hits"].(int64) != 2 {
		t.Errorf("expected 2 hits, got %v", stats["hits"])
	}
	if stats["misses"].(int64) != 1 {
		t.Errorf("expected 1 miss, got %v", stats["misses"])
	}
	if stats["key_count"].(int) != 1 {
		t.Errorf("expected 1 key, got %v", stats["key_count"])
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := New[[]string]()

	c.Set(SearchKey("rock", "", "", ""), []string{"1"})
	c.Set(SearchKey("jazz", "bebop", "", ""), []string{"2"})
	c.Set(PathKey([]string{"rock"}, true), []string{"1"})

	c.InvalidatePrefix("search:")

	if _, found := c.Get(SearchKey("rock", "", "", "")); found {
		t.Error("rock search should be invalidated")
	}
	if _, found := c.Get(SearchKey("jazz", "bebop", "", "")); found {
		t.Error("jazz search should be invalidated")
	}
	if _, found := c.Get(PathKey([]string{"rock"}, true)); !found {
		t.Error("path entry should NOT be invalidated")
	}
}

func TestPathPrefix(t *testing.T) {
	c := New[[]string]()
	c.Set(PathKey([]string{"rock"}, true), []string{"1"})
	c.Set(PathKey([]string{"rock", "classic"}, false), []string{"3"})
	c.Set(PathKey([]string{"jazz"}, true), []string{"4"})

	c.InvalidatePrefix(PathPrefix("rock"))

	if c.Len() != 1 {
		t.Errorf("expected 1 entry left, got %d", c.Len())
	}
	if _, found := c.Get(PathKey([]string{"jazz"}, true)); !found {
		t.Error("jazz path entry should NOT be invalidated")
	}
}

func TestInvalidateKeepsCounters(t *testing.T) {
	c := New[int]()
	c.Set("a", 1)
	c.Get("a")
	c.Invalidate()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if _, found := c.Get("a"); found {
		t.Error("expected miss after invalidate")
	}
	stats := c.Stats()
	if stats["hits"].(int64) != 1 || stats["misses"].(int64) != 1 {
		t.Errorf("unexpected counters: %v", stats)
	}
}

func TestKeysDistinguishSubtree(t *testing.T) {
	if PathKey([]string{"rock"}, true) == PathKey([]string{"rock"}, false) {
		t.Error("subtree flag must be part of the key")
	}
}
