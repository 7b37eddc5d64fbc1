package cache

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func TestCache_PutGetRoundTrip(t *testing.T) {
	c := New(t.TempDir())
	key := "/assets/backgrounds/desktop.webp"

	want := []byte("not actually a webp")
	if err := c.Put(key, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected cache hit, got miss")
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Get = %q, want %q", got, want)
	}
}

func TestCache_HasExpiry(t *testing.T) {
	c := New(t.TempDir())
	key := "desktop"

	if err := c.Put(key, []byte("data")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !c.Has(key, time.Hour) {
		t.Fatal("expected fresh entry")
	}

	path := c.pathForKey(key)
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("failed to update cache mtime: %v", err)
	}

	if c.Has(key, time.Hour) {
		t.Fatal("expected expired entry to be reported absent")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestCache_HasNoTTLNeverExpires(t *testing.T) {
	c := New(t.TempDir())
	if err := c.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	path := c.pathForKey("k")
	old := time.Now().Add(-240 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("failed to update cache mtime: %v", err)
	}

	if !c.Has("k", 0) {
		t.Error("ttl<=0 should never expire")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(t.TempDir())
	_ = c.Put("a", []byte("1"))
	_ = c.Put("b", []byte("2"))

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
}

func TestCache_NilSafe(t *testing.T) {
	var c *Cache
	if c.Has("k", time.Hour) {
		t.Error("nil cache should report miss")
	}
	if err := c.Put("k", []byte("v")); err != nil {
		t.Errorf("nil cache Put should be a no-op, got %v", err)
	}
}
