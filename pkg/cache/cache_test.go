package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var errFlaky = errors.New("flaky backend")

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

func TestHash(t *testing.T) {
	// Determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// DocumentKey should include the source format in the hash
	dk1 := k.DocumentKey("hash123", DocumentKeyOpts{Format: "toml"})
	dk2 := k.DocumentKey("hash123", DocumentKeyOpts{Format: "json"})
	if dk1 == dk2 {
		t.Error("Different DocumentKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(dk1, "doc:") {
		t.Errorf("DocumentKey should carry doc prefix: %s", dk1)
	}

	// LayoutKey varies with the offered box
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Legend: "default", Width: 800, Height: 600})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Legend: "default", Width: 400, Height: 600})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(lk1, "layout:") {
		t.Errorf("LayoutKey should carry layout prefix: %s", lk1)
	}

	// ArtifactKey varies with format
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Scale: 2})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey should carry artifact prefix: %s", ak1)
	}

	// Same inputs always produce the same key
	if k.LayoutKey("hash123", LayoutKeyOpts{Legend: "default", Width: 800, Height: 600}) != lk1 {
		t.Error("Keyer should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "chart:abc:")

	// All keys should be prefixed
	dk := scoped.DocumentKey("hash123", DocumentKeyOpts{Format: "toml"})
	if !strings.HasPrefix(dk, "chart:abc:doc:") {
		t.Errorf("ScopedKeyer DocumentKey should be prefixed: %s", dk)
	}

	lk := scoped.LayoutKey("hash123", LayoutKeyOpts{Width: 800})
	if !strings.HasPrefix(lk, "chart:abc:layout:") {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", lk)
	}

	ak := scoped.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(ak, "chart:abc:artifact:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", ak)
	}

	// Prefix aside, the inner keyer decides the key
	if strings.TrimPrefix(dk, "chart:abc:") != inner.DocumentKey("hash123", DocumentKeyOpts{Format: "toml"}) {
		t.Error("ScopedKeyer should delegate to the inner keyer")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.DocumentKey("hash123", DocumentKeyOpts{})
	if !strings.HasPrefix(key, "prefix:doc:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(errFlaky)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != errFlaky.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errFlaky) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errFlaky
	})
	if err != errFlaky {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errFlaky)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errFlaky)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Roundtrip
	payload := []byte("<svg></svg>")
	if err := c.Set(ctx, "artifact:abc", payload, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get should hit after Set")
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("Get returned %q, want %q", data, payload)
	}

	// Miss for unknown key
	if _, hit, _ := c.Get(ctx, "artifact:missing"); hit {
		t.Error("Get should miss for unknown key")
	}

	// Zero TTL never expires
	if err := c.Set(ctx, "layout:keep", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:keep"); !hit {
		t.Error("Zero TTL entry should not expire")
	}

	// Delete is idempotent
	if err := c.Delete(ctx, "artifact:abc"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:abc"); hit {
		t.Error("Get should miss after Delete")
	}
	if err := c.Delete(ctx, "artifact:abc"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	// Write an entry whose expiry is already in the past.
	fc := c.(*FileCache)
	path := fc.path("layout:stale")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	entry := make([]byte, entryHeaderLen+5)
	binary.BigEndian.PutUint64(entry[:entryHeaderLen], uint64(time.Now().Add(-time.Minute).Unix()))
	copy(entry[entryHeaderLen:], "stale")
	if err := os.WriteFile(path, entry, 0644); err != nil {
		t.Fatalf("write entry: %v", err)
	}

	if _, hit, err := c.Get(ctx, "layout:stale"); err != nil || hit {
		t.Errorf("expired entry should miss: hit=%v err=%v", hit, err)
	}

	// The expired file is removed on read
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired entry should be deleted lazily")
	}
}

func TestFileCacheSharding(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "artifact:abc", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Entries land in a two-character shard directory
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || !entries[0].IsDir() || len(entries[0].Name()) != 2 {
		t.Fatalf("expected one 2-char shard dir, got %v", entries)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	// Roundtrip
	payload := []byte("layout-bytes")
	if err := c.Set(ctx, "layout:abc", payload, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get should hit after Set")
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("Get returned %q, want %q", data, payload)
	}

	// Stored bytes are isolated from caller mutation
	data[0] = 'X'
	again, _, _ := c.Get(ctx, "layout:abc")
	if !bytes.Equal(again, payload) {
		t.Error("cached bytes should not alias the returned slice")
	}

	// Expired entries miss
	if err := c.Set(ctx, "layout:stale", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "layout:stale"); hit {
		t.Error("expired entry should miss")
	}

	// Delete removes
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("Get should miss after Delete")
	}
}
