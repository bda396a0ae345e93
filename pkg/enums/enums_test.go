package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrips(t *testing.T) {
	role, err := ParseUserRole("merchant")
	require.NoError(t, err)
	assert.Equal(t, UserRoleMerchant, role)
	assert.True(t, role.RequiresApproval())
	assert.False(t, UserRoleTraveler.RequiresApproval())

	_, err = ParseUserRole("superuser")
	require.Error(t, err)

	status, err := ParsePostStatus("reported")
	require.NoError(t, err)
	assert.Equal(t, PostStatusReported, status)

	assert.False(t, AccountStatus("frozen").IsValid())
	assert.True(t, ModerationActionDelete.IsValid())
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, NotificationSeveritySuccess, SeverityFor(true))
	assert.Equal(t, NotificationSeverityError, SeverityFor(false))
}
