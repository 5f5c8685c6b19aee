package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type snapshotRow struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
}

func newRedisSlot(t *testing.T) (*RedisSlot[[]snapshotRow], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSlot[[]snapshotRow](client, "leads:snapshot"), mr
}

func TestRedisSlotCachesValue(t *testing.T) {
	slot, _ := newRedisSlot(t)
	ctx := context.Background()

	loads := 0
	load := func(_ context.Context) ([]snapshotRow, error) {
		loads++
		return []snapshotRow{{ID: "1", Owner: "Ravi"}}, nil
	}

	first, err := slot.GetOrRefresh(ctx, time.Hour, false, load)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := slot.GetOrRefresh(ctx, time.Hour, false, load)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Owner != "Ravi" {
		t.Errorf("cached value mangled: %v / %v", first, second)
	}
}

func TestRedisSlotExpiry(t *testing.T) {
	slot, mr := newRedisSlot(t)
	ctx := context.Background()

	loads := 0
	load := func(_ context.Context) ([]snapshotRow, error) {
		loads++
		return []snapshotRow{{ID: "1"}}, nil
	}

	if _, err := slot.GetOrRefresh(ctx, time.Hour, false, load); err != nil {
		t.Fatal(err)
	}
	if remaining, ok := slot.Remaining(ctx); !ok || remaining <= 0 {
		t.Errorf("remaining = %v, %v", remaining, ok)
	}

	mr.FastForward(time.Hour + time.Second)

	if _, err := slot.GetOrRefresh(ctx, time.Hour, false, load); err != nil {
		t.Fatal(err)
	}
	if loads != 2 {
		t.Errorf("loads = %d, want reload after expiry", loads)
	}
}

func TestRedisSlotForceAndInvalidate(t *testing.T) {
	slot, _ := newRedisSlot(t)
	ctx := context.Background()

	loads := 0
	load := func(_ context.Context) ([]snapshotRow, error) {
		loads++
		return nil, nil
	}

	_, _ = slot.GetOrRefresh(ctx, time.Hour, false, load)
	_, _ = slot.GetOrRefresh(ctx, time.Hour, true, load)
	if loads != 2 {
		t.Errorf("loads = %d, want force to reload", loads)
	}

	if err := slot.Invalidate(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := slot.Remaining(ctx); ok {
		t.Error("invalidated slot should be empty")
	}
}

func TestRedisSlotCorruptEntryBehavesLikeMiss(t *testing.T) {
	slot, mr := newRedisSlot(t)
	ctx := context.Background()

	if err := mr.Set("leads:snapshot", "{not json"); err != nil {
		t.Fatal(err)
	}

	loads := 0
	rows, err := slot.GetOrRefresh(ctx, time.Hour, false, func(_ context.Context) ([]snapshotRow, error) {
		loads++
		return []snapshotRow{{ID: "rebuilt"}}, nil
	})
	if err != nil {
		t.Fatalf("corrupt entry should not error: %v", err)
	}
	if loads != 1 || len(rows) != 1 || rows[0].ID != "rebuilt" {
		t.Errorf("rows = %v, loads = %d", rows, loads)
	}
}
