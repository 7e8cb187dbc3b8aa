package cache

import (
	"bytes"
	"context"
	"errors"
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

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("report"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get should hit after Set")
	}
	if !bytes.Equal(data, []byte("report")) {
		t.Errorf("Get = %q, want %q", data, "report")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get should miss after Delete")
	}
}

func TestMemoryCacheIsolatesStoredData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	original := []byte("report")
	if err := c.Set(ctx, "key", original, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Mutating the slice handed to Set must not corrupt the entry.
	original[0] = 'X'

	data, _, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !bytes.Equal(data, []byte("report")) {
		t.Errorf("Get = %q after caller mutation, want %q", data, "report")
	}

	// Mutating the slice returned by Get must not corrupt the entry.
	data[0] = 'Y'
	again, _, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !bytes.Equal(again, []byte("report")) {
		t.Errorf("Get = %q after result mutation, want %q", again, "report")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewMemoryCacheWithClock(clock)
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Live before the deadline
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("entry expired early")
	}

	// Expired once the clock passes the TTL
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry should be expired")
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d after expiry eviction, want 0", got)
	}
}

func TestMemoryCacheNoTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCacheWithClock(func() time.Time { return now })
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	now = now.AddDate(10, 0, 0)
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("entry without TTL should never expire")
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("report"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || !bytes.Equal(data, []byte("report")) {
		t.Errorf("Get = %q/%v, want report/true", data, hit)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get should miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "nope"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Options are part of the key
	rk1 := k.ReportKey("hash123", ReportKeyOpts{TopK: 10})
	rk2 := k.ReportKey("hash123", ReportKeyOpts{TopK: 20})
	if rk1 == rk2 {
		t.Error("Different ReportKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(rk1, "report:") {
		t.Errorf("ReportKey should carry the report prefix: %s", rk1)
	}

	// Different graphs never collide
	if k.ReportKey("hash123", ReportKeyOpts{}) == k.ReportKey("hash456", ReportKeyOpts{}) {
		t.Error("Different graph hashes should produce different keys")
	}

	vk1 := k.RenderKey("hash123", RenderKeyOpts{Format: "svg"})
	vk2 := k.RenderKey("hash123", RenderKeyOpts{Format: "dot"})
	if vk1 == vk2 {
		t.Error("Different RenderKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "mathlib:")

	key := scoped.ReportKey("hash123", ReportKeyOpts{})
	if !strings.HasPrefix(key, "mathlib:report:") {
		t.Errorf("ScopedKeyer ReportKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.RenderKey("h", RenderKeyOpts{}); !strings.HasPrefix(key, "prefix:render:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	base := errors.New("connection refused")
	err := Retryable(base)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != base.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errors.New("corrupt entry")) {
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
	errCorrupt := errors.New("corrupt entry")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errCorrupt
	})
	if err != errCorrupt {
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
			return Retryable(errors.New("transient"))
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
		return Retryable(errors.New("transient"))
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
