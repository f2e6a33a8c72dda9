package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}

	a, err := HashJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashJSON(map[string]int{"a": 2})
	if a == b {
		t.Error("HashJSON should differ for different values")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	sk := k.SceneKey("abc")
	if !strings.HasPrefix(sk, "scene:") {
		t.Errorf("SceneKey = %s", sk)
	}
	if sk == k.SceneKey("abd") {
		t.Error("different snapshots should produce different scene keys")
	}

	svg := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg", Scale: 200})
	json := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "json"})
	bigger := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg", Scale: 300})
	if !strings.HasPrefix(svg, "artifact:") {
		t.Errorf("ArtifactKey = %s", svg)
	}
	if svg == json || svg == bigger {
		t.Error("render options must change the artifact key")
	}
	if svg != k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg", Scale: 200}) {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewScopedKeyer(inner, "staging:")

	if got, want := k.SceneKey("h"), "staging:"+inner.SceneKey("h"); got != want {
		t.Errorf("SceneKey = %s, want %s", got, want)
	}
	opts := ArtifactKeyOpts{Format: "svg"}
	if got, want := k.ArtifactKey("h", opts), "staging:"+inner.ArtifactKey("h", opts); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}
	if NewScopedKeyer(nil, "x:").SceneKey("h") != "x:"+inner.SceneKey("h") {
		t.Error("nil inner should default to DefaultKeyer")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("empty cache should miss")
	}

	if err := c.Set(ctx, "k", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	c.Set(ctx, "short", []byte("x"), time.Nanosecond)
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}

	c.Set(ctx, "forever", []byte("x"), 0)
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl should never expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	p := c.path("bad")
	os.MkdirAll(filepath.Dir(p), 0o755)
	os.WriteFile(p, []byte("{not json"), 0o644)

	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, []byte(k), time.Hour)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("cleared cache should miss")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := backoff
	backoff = time.Millisecond
	defer func() { backoff = old }()

	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 3 {
			return Retryable(errors.New("flaky"))
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	permanent := errors.New("permanent")
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("permanent: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(errors.New("down"))
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}

	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	if !errors.Is(err, ErrBackend) {
		t.Errorf("NewRedisCache = %v, want ErrBackend", err)
	}
	if _, err := NewRedisCache(ctx, RedisConfig{}); err == nil {
		t.Error("empty address should fail")
	}
}
