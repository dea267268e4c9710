package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestMemorySearchCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySearchCache(time.Minute)

	key := SearchKey("yahoo", "go")
	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get() on empty cache = ok %v, err %v", ok, err)
	}

	body := json.RawMessage(`{"results":[1,2]}`)
	if err := c.Set(ctx, key, body); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || string(got) != string(body) {
		t.Fatalf("Get() = %s, %v, want %s", got, ok, body)
	}
}

func TestMemorySearchCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySearchCache(20 * time.Millisecond)
	if err := c.Set(ctx, "k", json.RawMessage(`{}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("Get() after ttl = hit, want miss")
	}
}

func TestNew(t *testing.T) {
	if c := New(nil, 0); c != nil {
		t.Fatalf("New(nil, 0) = %T, want nil", c)
	}
	if _, ok := New(nil, time.Minute).(*MemorySearchCache); !ok {
		t.Fatal("New(nil, ttl) should fall back to memory cache")
	}
}

func TestSearchKey(t *testing.T) {
	if got := SearchKey("bing", "ai video"); got != "search:bing:ai video" {
		t.Fatalf("SearchKey() = %q", got)
	}
}
