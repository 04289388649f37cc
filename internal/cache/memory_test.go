package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("key", "value", time.Minute)
	got, ok := c.Get("key")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.(string) != "value" {
		t.Errorf("unexpected value: %v", got)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 10*time.Millisecond)

	c.Set("key", "value", 20*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be deleted")
	}

	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("expected cache to be empty after Clear")
	}
}

func TestKey_Deterministic(t *testing.T) {
	if Key("query") != Key("query") {
		t.Error("same input must produce the same key")
	}
	if Key("query a") == Key("query b") {
		t.Error("different inputs must produce different keys")
	}
}
