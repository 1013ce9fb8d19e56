package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/thrackle/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, err := c.Get(ctx, "drawing:x"); hit || err != nil {
		t.Fatalf("Get on empty cache = %v, %v; want miss", hit, err)
	}
	if err := c.Set(ctx, "drawing:x", []byte(`{"vertices":[]}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "drawing:x")
	if err != nil || !hit || string(data) != `{"vertices":[]}` {
		t.Fatalf("Get = %q, %v, %v; want stored value", data, hit, err)
	}

	n, size, err := c.Stats()
	if err != nil || n != 1 || size == 0 {
		t.Errorf("Stats = %d, %d, %v; want 1 entry", n, size, err)
	}

	if err := c.Delete(ctx, "drawing:x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "drawing:x"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "drawing:x"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("expired entry not removed, %d left", n)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	if err := os.MkdirAll(filepath.Dir(c.path("k")), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = %v, %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil || n != 3 {
		t.Fatalf("Clear = %d, %v; want 3", n, err)
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("%d entries after Clear", n)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := DrawingKeyOpts{Shape: "cycle", N: 7, K: 9, Variant: "circle", Spacing: 40}
	dk := k.DrawingKey(base)
	if !strings.HasPrefix(dk, "drawing:") || len(dk) != len("drawing:")+64 {
		t.Errorf("DrawingKey = %s", dk)
	}
	if dk != k.DrawingKey(base) {
		t.Error("DrawingKey should be deterministic")
	}

	changed := base
	changed.K = 10
	if dk == k.DrawingKey(changed) {
		t.Error("different targets should produce different keys")
	}
	changed = base
	changed.Spacing = 20
	if dk == k.DrawingKey(changed) {
		t.Error("different spacing should produce different keys")
	}

	rk1 := k.RenderKey("hash123", RenderKeyOpts{Format: "svg"})
	rk2 := k.RenderKey("hash123", RenderKeyOpts{Format: "png"})
	if rk1 == rk2 || !strings.HasPrefix(rk1, "render:") {
		t.Errorf("RenderKey = %s, %s", rk1, rk2)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "server:")
	opts := DrawingKeyOpts{Shape: "path", N: 5}
	if got, want := scoped.DrawingKey(opts), "server:"+NewDefaultKeyer().DrawingKey(opts); got != want {
		t.Errorf("DrawingKey = %s, want %s", got, want)
	}
	if got := scoped.RenderKey("h", RenderKeyOpts{}); !strings.HasPrefix(got, "server:render:") {
		t.Errorf("RenderKey = %s", got)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.DrawingKey(opts); !strings.HasPrefix(got, "p:drawing:") {
		t.Errorf("nil inner DrawingKey = %s", got)
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets []string
}

func (h *countingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits = append(h.hits, keyType)
}

func (h *countingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.misses = append(h.misses, keyType)
}

func (h *countingHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.sets = append(h.sets, keyType)
}

func TestObserved(t *testing.T) {
	h := &countingHooks{}
	observability.SetCacheHooks(h)
	defer observability.Reset()

	ctx := context.Background()
	fc, _ := NewFileCache(t.TempDir())
	c := Observed(fc)
	key := NewScopedKeyer(nil, "server:").DrawingKey(DrawingKeyOpts{Shape: "path", N: 4})

	_, _, _ = c.Get(ctx, key)
	_ = c.Set(ctx, key, []byte("x"), 0)
	_, _, _ = c.Get(ctx, key)

	if len(h.misses) != 1 || len(h.sets) != 1 || len(h.hits) != 1 {
		t.Fatalf("hooks = %d misses, %d sets, %d hits; want 1 each", len(h.misses), len(h.sets), len(h.hits))
	}
	if h.hits[0] != "drawing" {
		t.Errorf("key type = %q, want drawing", h.hits[0])
	}
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{}); err == nil {
		t.Error("NewRedisCache without address should fail")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	old := connectBackoff
	connectBackoff.Delay = time.Millisecond
	defer func() { connectBackoff = old }()

	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache error = %v, want %v", err, ErrNetwork)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestBackoff(t *testing.T) {
	b := Backoff{Attempts: 3, Delay: time.Millisecond}
	ctx := context.Background()

	calls := 0
	if err := b.Do(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err = %v, calls = %d", err, calls)
	}

	calls = 0
	err := b.Do(ctx, func() error { calls++; return ErrNotFound })
	if err != ErrNotFound || calls != 1 {
		t.Errorf("non-retryable: err = %v, calls = %d", err, calls)
	}

	calls = 0
	err = b.Do(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err = %v, calls = %d", err, calls)
	}

	calls = 0
	err = b.Do(ctx, func() error { calls++; return Retryable(ErrNetwork) })
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("exhausted: err = %v, calls = %d", err, calls)
	}
}

func TestBackoffSingleAttempt(t *testing.T) {
	calls := 0
	err := Backoff{}.Do(context.Background(), func() error { calls++; return Retryable(ErrNetwork) })
	if !errors.Is(err, ErrNetwork) || calls != 1 {
		t.Errorf("Backoff{}.Do: err = %v, calls = %d, want %v after 1 call", err, calls, ErrNetwork)
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Backoff{Attempts: 3, Delay: time.Hour}.Do(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
