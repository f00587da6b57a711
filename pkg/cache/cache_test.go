package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

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
	c, err := NewFileCache(filepath.Join(t.TempDir(), "radial"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) hit = true, want false")
	}

	if err := c.Set(ctx, "k", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = %v, %v, want hit", hit, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Get(k) = %q, want %q", data, "<svg/>")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete hit = true, want false")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete = %v, want nil", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry hit = true, want false")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry file still present: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = %v, %v, want miss", hit, err)
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
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if _, hit, _ := c.Get(ctx, "a"); !hit { // a is now most recent
		t.Fatal("Get(a) missed")
	}
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("least recently used entry b was not evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("Get(%s) missed", k)
		}
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("Get before expiry missed")
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after expiry hit")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestMemoryCacheOverwriteAndClose(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(4)
	_ = c.Set(ctx, "k", []byte("old"), 0)
	_ = c.Set(ctx, "k", []byte("new"), 0)
	data, _, _ := c.Get(ctx, "k")
	if string(data) != "new" {
		t.Errorf("Get(k) = %q, want %q", data, "new")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	_ = c.Delete(ctx, "k")
	_ = c.Set(ctx, "x", nil, 0)
	_ = c.Close()
	if c.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", c.Len())
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
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	j1, err := HashJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	j2, _ := HashJSON(map[string]int{"a": 2})
	if j1 == j2 {
		t.Error("HashJSON should differ for different values")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON(func) error = nil, want error")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.SceneKey("abc"); got != "scene:abc" {
		t.Errorf("SceneKey = %q, want %q", got, "scene:abc")
	}

	svg := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	png := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "png", Scale: 2})
	png3 := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "png", Scale: 3})
	if svg == png || png == png3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if svg != k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "srv:1:")
	if got := scoped.SceneKey("abc"); got != "srv:1:scene:abc" {
		t.Errorf("SceneKey = %q, want %q", got, "srv:1:scene:abc")
	}
	ak := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	if want := "srv:1:" + NewDefaultKeyer().ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"}); ak != want {
		t.Errorf("ArtifactKey = %q, want %q", ak, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.SceneKey("h"); key != "prefix:scene:h" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache("not a url"); err == nil {
		t.Error("NewRedisCache(bad url) error = nil, want error")
	}
	c, err := NewRedisCache("redis://localhost:6379/0")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
}
