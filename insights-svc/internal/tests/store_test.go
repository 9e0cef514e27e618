package tests

import (
	"context"
	"testing"
	"time"

	"cafenine/insights-svc/internal/domain"
	"cafenine/insights-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*storage.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewStore(client), mr
}

func TestStoreKeys(t *testing.T) {
	day := time.Date(2025, 4, 2, 23, 30, 0, 0, time.FixedZone("GST", 4*3600))
	assert.Equal(t, "analytics:daily:2025-04-02:dubai-opus", storage.DailyKey(day, "dubai-opus"))
	assert.Equal(t, "analytics:alltime:dubai-opus", storage.AllTimeKey("dubai-opus"))
}

func TestStore_RecordOrder(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t)

	require.NoError(t, store.RecordOrder(ctx, "dubai-opus", orderTime, orderEvent().Items))
	require.NoError(t, store.RecordOrder(ctx, "london-mayfair", orderTime, []domain.EventItem{
		{ItemID: "wagyu-embers", Quantity: 1},
		{ItemID: "burrata-garden", Quantity: 0},
	}))

	tests := []struct {
		name   string
		key    string
		member string
		want   float64
	}{
		{name: "branch daily", key: storage.DailyKey(orderTime, "dubai-opus"), member: "wagyu-embers", want: 2},
		{name: "branch all time", key: storage.AllTimeKey("dubai-opus"), member: "rose-cardamom-latte", want: 1},
		{name: "other branch", key: storage.DailyKey(orderTime, "london-mayfair"), member: "wagyu-embers", want: 1},
		{name: "all branches daily", key: storage.DailyKey(orderTime, storage.AllBranches), member: "wagyu-embers", want: 3},
		{name: "all branches all time", key: storage.AllTimeKey(storage.AllBranches), member: "wagyu-embers", want: 3},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := mr.ZScore(testCase.key, testCase.member)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}

	members, err := mr.ZMembers(storage.AllTimeKey("london-mayfair"))
	require.NoError(t, err)
	assert.NotContains(t, members, "burrata-garden")

	assert.Equal(t, 7*24*time.Hour, mr.TTL(storage.DailyKey(orderTime, "dubai-opus")))
	assert.Zero(t, mr.TTL(storage.AllTimeKey("dubai-opus")))
}

func TestStore_TopItems(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	require.NoError(t, store.RecordOrder(ctx, "new-york-hudson", orderTime, []domain.EventItem{
		{ItemID: "miso-cod", Quantity: 1},
		{ItemID: "lantern-scallops", Quantity: 4},
		{ItemID: "midnight-sphere", Quantity: 2},
	}))

	top, err := store.TopItems(ctx, storage.AllTimeKey("new-york-hudson"), 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemScore{
		{ItemID: "lantern-scallops", Score: 4},
		{ItemID: "midnight-sphere", Score: 2},
	}, top)

	empty, err := store.TopItems(ctx, storage.AllTimeKey("unknown"), 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
