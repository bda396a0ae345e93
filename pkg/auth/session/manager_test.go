package session

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	"github.com/angelmondragon/wandermart-backend/pkg/kv/kvtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(kvtest.NewSQLite(t), config.JWTConfig{Secret: "s", Issuer: "wm", SessionTTLMinutes: 60}, 3)
	require.NoError(t, err)
	return m
}

func traveler() Principal {
	return Principal{UserID: "u1", Username: "Traveler User", Email: "user@test.com", Role: enums.UserRoleTraveler, Status: enums.AccountStatusActive}
}

func TestEstablishCurrentDestroy(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	sess, err := m.Establish(ctx, traveler())
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	none, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, none, "no token attached")

	authed := WithToken(ctx, "Bearer "+sess.Token)
	cur, err := m.Current(authed)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "u1", cur.User.UserID)
	assert.Equal(t, sess.AccessID, cur.AccessID)

	require.NoError(t, m.Destroy(authed))
	cur, err = m.Current(authed)
	require.NoError(t, err)
	assert.Nil(t, cur, "destroyed session must not resolve")
}

func TestSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	a, err := m.Establish(ctx, traveler())
	require.NoError(t, err)
	b, err := m.Establish(ctx, Principal{UserID: "admin1", Role: enums.UserRoleAdmin, Status: enums.AccountStatusActive})
	require.NoError(t, err)

	require.NoError(t, m.Destroy(WithToken(ctx, a.Token)))

	cur, err := m.Current(WithToken(ctx, b.Token))
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "admin1", cur.User.UserID)
}

func TestRefreshOnlyTouchesOwnSession(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	sess, err := m.Establish(ctx, traveler())
	require.NoError(t, err)
	authed := WithToken(ctx, sess.Token)

	updated := traveler()
	updated.Username = "Renamed"
	require.NoError(t, m.Refresh(authed, updated))

	other := Principal{UserID: "someone-else", Username: "Nope", Role: enums.UserRoleTraveler}
	require.NoError(t, m.Refresh(authed, other))

	cur, err := m.Current(authed)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", cur.User.Username)
	assert.Equal(t, "u1", cur.User.UserID)
}

func TestCurrentRejectsGarbageAndExpiredTokens(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	cur, err := m.Current(WithToken(ctx, "not-a-jwt"))
	require.NoError(t, err)
	assert.Nil(t, cur)

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	sess, err := m.Establish(ctx, traveler())
	require.NoError(t, err)
	m.now = time.Now

	cur, err = m.Current(WithToken(ctx, sess.Token))
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestExpiredSessionRecordIsRemoved(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	sess, err := m.Establish(ctx, traveler())
	require.NoError(t, err)
	m.now = time.Now

	exists, err := m.slot(sess.AccessID).Exists(ctx)
	require.NoError(t, err)
	require.True(t, exists)

	cur, err := m.Current(WithToken(ctx, sess.Token))
	require.NoError(t, err)
	assert.Nil(t, cur)

	exists, err = m.slot(sess.AccessID).Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists, "expired record is cleared")
}

func TestNewManagerValidates(t *testing.T) {
	_, err := NewManager(nil, config.JWTConfig{SessionTTLMinutes: 1}, 1)
	require.Error(t, err)
	_, err = NewManager(kvtest.NewSQLite(t), config.JWTConfig{}, 1)
	require.Error(t, err)
}
