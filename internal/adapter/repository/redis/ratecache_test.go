package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/domain"
)

type stubRateSource struct {
	snapshot domain.RateSnapshot
	err      error
	calls    int
}

func (s *stubRateSource) Snapshot(ctx context.Context) (domain.RateSnapshot, error) {
	s.calls++
	if s.err != nil {
		return domain.RateSnapshot{}, s.err
	}
	return s.snapshot, nil
}

func TestRateCache_CachesSnapshot(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	source := &stubRateSource{snapshot: domain.RateSnapshot{
		Official:  decimal.NewFromInt(1000),
		Blue:      decimal.NewFromInt(1200),
		FetchedAt: time.Now().UTC(),
	}}
	cache := NewRateCache(client, source, time.Minute, zerolog.Nop())
	ctx := context.Background()

	first, err := cache.Snapshot(ctx)
	if err != nil {
		t.Fatalf("first snapshot failed: %v", err)
	}

	second, err := cache.Snapshot(ctx)
	if err != nil {
		t.Fatalf("second snapshot failed: %v", err)
	}

	if source.calls != 1 {
		t.Errorf("source called %d times, want 1", source.calls)
	}
	if !first.Official.Equal(second.Official) || !first.Blue.Equal(second.Blue) {
		t.Errorf("cached snapshot differs from source: %+v vs %+v", first, second)
	}
}

func TestRateCache_ExpiryRefetches(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	source := &stubRateSource{snapshot: domain.RateSnapshot{
		Official: decimal.NewFromInt(1000),
		Blue:     decimal.NewFromInt(1200),
	}}
	cache := NewRateCache(client, source, time.Second, zerolog.Nop())
	ctx := context.Background()

	if _, err := cache.Snapshot(ctx); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := cache.Snapshot(ctx); err != nil {
		t.Fatalf("snapshot after expiry failed: %v", err)
	}
	if source.calls != 2 {
		t.Errorf("source called %d times after expiry, want 2", source.calls)
	}
}

func TestRateCache_UnreadableEntryFallsThrough(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	if err := mr.Set(rateSnapshotKey, "not-json"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	source := &stubRateSource{snapshot: domain.RateSnapshot{
		Official: decimal.NewFromInt(990),
		Blue:     decimal.NewFromInt(1180),
	}}
	cache := NewRateCache(client, source, time.Minute, zerolog.Nop())

	snapshot, err := cache.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if source.calls != 1 {
		t.Errorf("source called %d times, want 1", source.calls)
	}
	if !snapshot.Official.Equal(decimal.NewFromInt(990)) {
		t.Errorf("official = %s, want 990", snapshot.Official)
	}
}

func TestRateCache_SourceFailurePropagates(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	source := &stubRateSource{err: errors.New("provider down")}
	cache := NewRateCache(client, source, time.Minute, zerolog.Nop())

	if _, err := cache.Snapshot(context.Background()); err == nil {
		t.Fatal("expected source error to propagate")
	}
}
