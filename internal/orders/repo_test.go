package orders

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/kv/kvtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDFormat(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^WM-240309-[A-Z0-9]{4}$`)
	for i := 0; i < 50; i++ {
		id, err := NewID("WM", now)
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
	}
	assert.Equal(t, "9-ABCD", shortRef("WM-240309-ABCD"))
	assert.Equal(t, "ABC", shortRef("ABC"))
}

func TestCreateSkipsTakenIDs(t *testing.T) {
	repo := NewRepository(kvtest.NewSQLite(t), 10)
	ctx := context.Background()

	fixed := func() (string, error) { return "WM-240101-AAAA", nil }
	first, err := repo.Create(ctx, Order{BuyerID: "u1", Status: enums.OrderStatusPending}, fixed, 3)
	require.NoError(t, err)
	assert.Equal(t, "WM-240101-AAAA", first.ID)

	_, err = repo.Create(ctx, Order{BuyerID: "u1"}, fixed, 3)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))

	seq := []string{"WM-240101-AAAA", "WM-240101-BBBB"}
	next := func() (string, error) {
		id := seq[0]
		seq = seq[1:]
		return id, nil
	}
	second, err := repo.Create(ctx, Order{BuyerID: "u2"}, next, 3)
	require.NoError(t, err)
	assert.Equal(t, "WM-240101-BBBB", second.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSyncRecipientNameOnlyTouchesPending(t *testing.T) {
	store, _ := kvtest.NewRedis(t)
	repo := NewRepository(store, 10)
	ctx := context.Background()

	ids := []string{"A", "B", "C"}
	for i, status := range []enums.OrderStatus{enums.OrderStatusPending, enums.OrderStatusShipped, enums.OrderStatusPending} {
		id := ids[i]
		buyer := "u1"
		if i == 2 {
			buyer = "u2"
		}
		_, err := repo.Create(ctx, Order{BuyerID: buyer, Status: status, Shipping: Shipping{RecipientName: "Old"}},
			func() (string, error) { return id, nil }, 1)
		require.NoError(t, err)
	}

	require.NoError(t, repo.SyncRecipientName(ctx, "u1", "New"))
	require.NoError(t, repo.SyncRecipientName(ctx, "u1", "New"))

	want := map[string]string{"A": "New", "B": "Old", "C": "Old"}
	for id, name := range want {
		o, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, name, o.Shipping.RecipientName, id)
	}

	_, _, err := repo.Update(ctx, "missing", func(*Order) error { return nil })
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
