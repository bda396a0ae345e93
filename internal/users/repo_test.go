package users

import (
	"context"
	"sync"
	"testing"

	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/kv/kvtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kvtest.NewSQLite(t), 5)

	require.NoError(t, repo.Create(ctx, User{ID: "a", Email: "A@x.com", Role: enums.UserRoleAdmin, Status: enums.AccountStatusActive}))
	require.NoError(t, repo.Create(ctx, User{ID: "b", Email: "b@x.com", Role: enums.UserRoleTraveler, Status: enums.AccountStatusActive}))

	err := repo.Create(ctx, User{ID: "c", Email: "a@X.com"})
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))

	u, err := repo.FindByEmail(ctx, "a@x.COM")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "a", u.ID)

	missing, err := repo.FindByID(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, missing)

	admins, err := repo.AdminIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, admins)

	account, ok, err := repo.Account(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, enums.AccountStatusActive, account.Status)

	_, ok, err = repo.Account(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepositoryConcurrentRegistrations(t *testing.T) {
	ctx := context.Background()
	store, _ := kvtest.NewRedis(t)
	repo := NewRepository(store, 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			assert.NoError(t, repo.Create(ctx, User{ID: id, Email: id + "@x.com"}))
		}(i)
	}
	wg.Wait()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestSeedIfEmptyOnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kvtest.NewSQLite(t), 5)

	wrote, err := repo.SeedIfEmpty(ctx, []User{{ID: "s", Email: "s@x.com"}})
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = repo.SeedIfEmpty(ctx, []User{{ID: "t", Email: "t@x.com"}})
	require.NoError(t, err)
	assert.False(t, wrote)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "s", all[0].ID)
}
