package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, err := c.Get(ctx, "solve:abc"); err != nil || hit {
		t.Fatalf("Get before Set = hit %v, err %v; want miss", hit, err)
	}

	// Round trip
	want := []byte(`{"value":185}`)
	if err := c.Set(ctx, "solve:abc", want, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "solve:abc")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v; want hit", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %s, want %s", got, want)
	}

	// Keys do not collide
	if err := c.Set(ctx, "solve:def", []byte("other"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, _, _ = c.Get(ctx, "solve:abc")
	if !bytes.Equal(got, want) {
		t.Errorf("Get after second Set = %s, want %s", got, want)
	}

	// Delete
	if err := c.Delete(ctx, "solve:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "solve:abc"); hit {
		t.Error("Get after Delete should miss")
	}

	// Deleting an absent key is not an error
	if err := c.Delete(ctx, "solve:missing"); err != nil {
		t.Errorf("Delete absent key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// An already-expired entry reads as a miss
	if err := c.Set(ctx, "key", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("expired entry = hit %v, err %v; want miss", hit, err)
	}

	// A fresh entry survives
	if err := c.Set(ctx, "key", []byte("fresh"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("fresh entry should hit")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// HTTPKey
	httpKey := k.HTTPKey("io", "https://example.com/plant.json")
	if httpKey != "http:io:https://example.com/plant.json" {
		t.Errorf("HTTPKey unexpected: %s", httpKey)
	}

	// ProblemKey
	if got := k.ProblemKey("abc123"); got != "problem:abc123" {
		t.Errorf("ProblemKey unexpected: %s", got)
	}

	// StructureKey should include the base restriction in the hash
	sk1 := k.StructureKey("abc123", StructureKeyOpts{})
	sk2 := k.StructureKey("abc123", StructureKeyOpts{Base: []string{"reactor"}})
	if sk1 == sk2 {
		t.Error("Different StructureKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(sk1, "msg:abc123:") {
		t.Errorf("StructureKey should carry the problem hash: %s", sk1)
	}

	// SolveKey should include options in the hash
	opts := SolveKeyOpts{MaxSolutions: 1, Bound: "additive"}
	k1 := k.SolveKey("abc123", opts)
	k2 := k.SolveKey("abc123", SolveKeyOpts{MaxSolutions: 10, Bound: "additive"})
	k3 := k.SolveKey("abc123", SolveKeyOpts{MaxSolutions: 1, Bound: "flow"})
	if k1 == k2 || k1 == k3 {
		t.Error("Different SolveKeyOpts should produce different keys")
	}

	// Same options, same key
	if k1 != k.SolveKey("abc123", opts) {
		t.Error("SolveKey should be deterministic")
	}

	// Different problems, different keys
	if k1 == k.SolveKey("def456", opts) {
		t.Error("Different problem hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:42:")

	// All keys should be prefixed
	httpKey := scoped.HTTPKey("io", "plant.json")
	if httpKey != "tenant:42:http:io:plant.json" {
		t.Errorf("ScopedKeyer HTTPKey unexpected: %s", httpKey)
	}

	solveKey := scoped.SolveKey("abc", SolveKeyOpts{})
	if !strings.HasPrefix(solveKey, "tenant:42:") {
		t.Errorf("ScopedKeyer SolveKey should be prefixed: %s", solveKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.HTTPKey("io", "key")
	if key != "prefix:http:io:key" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
