package cache

import (
	"testing"
	"time"
)

// Redis integration is exercised in environments with a live server; these
// tests cover the memory-only degradation path, which is also what the
// gateway runs when REDIS_URL is unset.

func TestLayeredWithoutRedisBehavesLikeMemory(t *testing.T) {
	l := NewLayered(NewMemory(), nil, nil)

	l.Set("espn:scoreboard", []byte("v"), time.Minute)

	value, ok := l.Get("espn:scoreboard")
	if !ok || string(value) != "v" {
		t.Fatalf("expected memory hit, got ok=%v value=%s", ok, value)
	}
	if stats := l.Stats(); stats.Size != 1 {
		t.Fatalf("expected 1 entry, got %+v", stats)
	}
	if removed := l.Clear("espn:"); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, ok := l.Get("espn:scoreboard"); ok {
		t.Fatal("expected miss after clear")
	}
}

func TestLayeredMissWithoutRedis(t *testing.T) {
	l := NewLayered(NewMemory(), nil, nil)

	if _, ok := l.Get("espn:absent"); ok {
		t.Fatal("expected miss for absent key")
	}
}
