package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(time.Minute)

	if _, ok := s.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	s.Set(ctx, "k1", 42)
	got, ok := s.Get(ctx, "k1")
	if !ok || got != 42 {
		t.Fatalf("expected 42, got %v (%t)", got, ok)
	}

	s.Delete(ctx, "k1")
	if _, ok := s.Get(ctx, "k1"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 8, 21, 19, 0, 0, 0, time.UTC)
	s := NewStore(30 * time.Second)
	s.now = func() time.Time { return now }

	s.Set(ctx, "k1", "v1")
	if _, ok := s.Get(ctx, "k1"); !ok {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(31 * time.Second)
	if _, ok := s.Get(ctx, "k1"); ok {
		t.Fatal("expected miss after TTL")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(time.Minute)
	s.Set(ctx, "views:md:1:standings", "a")
	s.Set(ctx, "views:md:1:players", "b")
	s.Set(ctx, "views:md:2:standings", "c")

	s.DeletePrefix(ctx, "views:md:1:")

	if _, ok := s.Get(ctx, "views:md:1:standings"); ok {
		t.Fatal("prefixed key survived")
	}
	if _, ok := s.Get(ctx, "views:md:1:players"); ok {
		t.Fatal("prefixed key survived")
	}
	if _, ok := s.Get(ctx, "views:md:2:standings"); !ok {
		t.Fatal("unrelated key was dropped")
	}
}

func TestStore_GetOrLoadCachesResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		got, err := s.GetOrLoad(ctx, "k1", loader)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "value" {
			t.Fatalf("expected value, got %v", got)
		}
	}
	if loads.Load() != 1 {
		t.Fatalf("expected 1 load, got %d", loads.Load())
	}
}

func TestStore_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(time.Minute)
	sentinel := errors.New("boom")
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return nil, sentinel
	}

	for i := 0; i < 2; i++ {
		if _, err := s.GetOrLoad(ctx, "k1", loader); !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel, got %v", err)
		}
	}
	if loads.Load() != 2 {
		t.Fatalf("errors must not be cached, got %d loads", loads.Load())
	}
}

func TestStore_GetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(time.Minute)
	var loads atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		<-release
		return "value", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.GetOrLoad(ctx, "k1", loader); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	// Give the goroutines a chance to pile onto the same key.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if loads.Load() != 1 {
		t.Fatalf("expected a single load under contention, got %d", loads.Load())
	}
}
