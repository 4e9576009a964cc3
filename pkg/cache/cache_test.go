package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Errorf("Get(missing) = found=%v err=%v, want miss", found, err)
	}

	payload := []byte("png bytes")
	if err := c.Set(ctx, "frame", payload, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, found, err := c.Get(ctx, "frame")
	if err != nil || !found {
		t.Fatalf("Get = found=%v err=%v", found, err)
	}
	if string(data) != string(payload) {
		t.Errorf("Get = %q, want %q", data, payload)
	}

	if err := c.Delete(ctx, "frame"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "frame"); found {
		t.Error("Get after Delete should miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("expired entry should miss")
	}
}

func TestNullCacheAlwaysMisses(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("null cache should never hit")
	}
}

func TestFrameKeyComponents(t *testing.T) {
	k := NewDefaultKeyer()
	base := k.FrameKey("hash", "corner", 800, 600, []string{"vehicle"})

	same := k.FrameKey("hash", "corner", 800, 600, []string{"vehicle"})
	if base != same {
		t.Error("identical inputs should produce identical keys")
	}
	for name, other := range map[string]string{
		"plan":       k.FrameKey("hash2", "corner", 800, 600, []string{"vehicle"}),
		"view":       k.FrameKey("hash", "top", 800, 600, []string{"vehicle"}),
		"viewport":   k.FrameKey("hash", "corner", 640, 480, []string{"vehicle"}),
		"visibility": k.FrameKey("hash", "corner", 800, 600, nil),
	} {
		if other == base {
			t.Errorf("changing %s should change the key", name)
		}
	}
}

func TestScopedKeyerPrefixes(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:")
	if got, want := scoped.PlanKey("home"), "tenant:"+inner.PlanKey("home"); got != want {
		t.Errorf("PlanKey = %q, want %q", got, want)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success path: err=%v calls=%d", err, calls)
	}

	calls = 0
	permanent := errors.New("bad request")
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("permanent errors must not retry: err=%v calls=%d", err, calls)
	}

	if !IsRetryable(Retryable(errors.New("net"))) {
		t.Error("Retryable wrap not detected")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should stay nil")
	}
}
