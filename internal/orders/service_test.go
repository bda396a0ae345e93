package orders_test

import (
	"context"
	"testing"

	"github.com/angelmondragon/wandermart-backend/internal/cart"
	"github.com/angelmondragon/wandermart-backend/internal/notifications"
	"github.com/angelmondragon/wandermart-backend/internal/orders"
	"github.com/angelmondragon/wandermart-backend/internal/products"
	"github.com/angelmondragon/wandermart-backend/internal/testenv"
	"github.com/angelmondragon/wandermart-backend/internal/users"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shipping = &orders.Shipping{RecipientName: "Li Wei", Phone: "13800000000", Address: "1 Renmin Rd, Chengdu"}

func line(id string, qty int) cart.Item {
	return cart.Item{Product: products.Product{ID: id}, Quantity: qty}
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func titled(list []notifications.Notification, title string) []notifications.Notification {
	var out []notifications.Notification
	for _, n := range list {
		if n.Title == title {
			out = append(out, n)
		}
	}
	return out
}

func TestCreateRepricesAndNotifiesSeller(t *testing.T) {
	env := testenv.New(t)
	traveler := env.Traveler(t)

	// A forged price on the client snapshot is ignored.
	forged := line("p1", 1)
	forged.Product.Price = decimal.NewFromInt(1)

	o, err := env.App.Orders.Create(traveler, orders.CreateRequest{
		Items:    []cart.Item{forged, line("p2", 1)},
		Total:    money("37.50"),
		Shipping: shipping,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^WM-\d{6}-[A-Z0-9]{4}$`, o.ID)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("37.50")))
	assert.Equal(t, enums.OrderStatusPending, o.Status)
	assert.Equal(t, testenv.TravelerID, o.BuyerID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Plush Panda Toy", o.Items[0].Product.Name)
	assert.Equal(t, []string{testenv.MerchantID}, o.SellerIDs())

	inbox, err := env.App.Notifications.List(env.Merchant(t))
	require.NoError(t, err)
	received := titled(inbox, "New Order Received")
	require.Len(t, received, 1)
	assert.Equal(t, "You have a new order (ID: "+o.ID+") for $37.50.", received[0].Body)
	assert.Equal(t, enums.NotificationSeveritySuccess, received[0].Severity)

	product, err := env.App.Products.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 100, product.Stock, "checkout does not reserve stock")
}

func TestCreateMergesDuplicateLines(t *testing.T) {
	env := testenv.New(t)
	o, err := env.App.Orders.Create(env.Traveler(t), orders.CreateRequest{
		Items:    []cart.Item{line("p2", 1), line("p2", 2)},
		Shipping: shipping,
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 3, o.Items[0].Quantity)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("37.50")))
}

func TestCreateRejections(t *testing.T) {
	env := testenv.New(t)
	traveler := env.Traveler(t)

	cases := []struct {
		name string
		ctx  context.Context
		req  orders.CreateRequest
		code pkgerrors.Code
	}{
		{"anonymous", context.Background(), orders.CreateRequest{Items: []cart.Item{line("p1", 1)}, Shipping: shipping}, pkgerrors.CodeUnauthorized},
		{"empty", traveler, orders.CreateRequest{Shipping: shipping}, pkgerrors.CodeValidation},
		{"zero quantity", traveler, orders.CreateRequest{Items: []cart.Item{line("p1", 0)}, Shipping: shipping}, pkgerrors.CodeValidation},
		{"unknown product", traveler, orders.CreateRequest{Items: []cart.Item{line("nope", 1)}, Shipping: shipping}, pkgerrors.CodeNotFound},
		{"over stock", traveler, orders.CreateRequest{Items: []cart.Item{line("p3", 16)}, Shipping: shipping}, pkgerrors.CodeConflict},
		{"merged over stock", traveler, orders.CreateRequest{Items: []cart.Item{line("p3", 10), line("p3", 6)}, Shipping: shipping}, pkgerrors.CodeConflict},
		{"total mismatch", traveler, orders.CreateRequest{Items: []cart.Item{line("p1", 2)}, Total: money("25.00"), Shipping: shipping}, pkgerrors.CodeValidation},
		{"no shipping", traveler, orders.CreateRequest{Items: []cart.Item{line("p1", 1)}}, pkgerrors.CodeValidation},
		{"blank recipient", traveler, orders.CreateRequest{Items: []cart.Item{line("p1", 1)}, Shipping: &orders.Shipping{RecipientName: " ", Phone: "1", Address: "x"}}, pkgerrors.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.App.Orders.Create(tc.ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, pkgerrors.CodeOf(err))
		})
	}

	var typed *pkgerrors.Error
	_, err := env.App.Orders.Create(traveler, orders.CreateRequest{Items: []cart.Item{line("p1", 2)}, Total: money("25"), Shipping: shipping})
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, map[string]any{"expected": "50.00", "submitted": "25.00"}, typed.Details())
}

func TestCreateFallsBackToProfileShipping(t *testing.T) {
	env := testenv.New(t)
	traveler := env.Traveler(t)

	_, err := env.App.Users.UpdateProfile(traveler, testenv.TravelerID, users.UpdateProfileRequest{
		Shipping: &users.ShippingProfile{RecipientName: "Traveler", Phone: "555", Address: "2 Jinli St"},
	})
	require.NoError(t, err)

	o, err := env.App.Orders.Create(traveler, orders.CreateRequest{Items: []cart.Item{line("p1", 1)}})
	require.NoError(t, err)
	assert.Equal(t, orders.Shipping{RecipientName: "Traveler", Phone: "555", Address: "2 Jinli St"}, o.Shipping)
}

func TestVisibility(t *testing.T) {
	env := testenv.New(t)
	traveler := env.Traveler(t)
	merchant := env.Merchant(t)
	stranger, _ := env.Register(t, users.RegisterRequest{Email: "stranger@test.com"})

	first, err := env.App.Orders.Create(traveler, orders.CreateRequest{Items: []cart.Item{line("p1", 1)}, Shipping: shipping})
	require.NoError(t, err)
	second, err := env.App.Orders.Create(traveler, orders.CreateRequest{Items: []cart.Item{line("p2", 1)}, Shipping: shipping})
	require.NoError(t, err)

	mine, err := env.App.Orders.List(traveler, orders.Filter{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	assert.Equal(t, first.ID, mine[1].ID)

	sold, err := env.App.Orders.List(merchant, orders.Filter{SellerID: testenv.MerchantID})
	require.NoError(t, err)
	assert.Len(t, sold, 2)

	none, err := env.App.Orders.List(stranger, orders.Filter{})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = env.App.Orders.Get(stranger, first.ID)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))
	_, err = env.App.Orders.Get(traveler, "WM-000000-0000")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	got, err := env.App.Orders.Get(env.Admin(t), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestUpdateStatusTransitions(t *testing.T) {
	env := testenv.New(t)
	traveler := env.Traveler(t)
	merchant := env.Merchant(t)

	o, err := env.App.Orders.Create(traveler, orders.CreateRequest{Items: []cart.Item{line("p1", 1)}, Shipping: shipping})
	require.NoError(t, err)

	_, err = env.App.Orders.UpdateStatus(traveler, o.ID, enums.OrderStatusShipped, "")
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))

	_, err = env.App.Orders.UpdateStatus(merchant, o.ID, enums.OrderStatus("lost"), "")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = env.App.Orders.UpdateStatus(merchant, o.ID, enums.OrderStatusDelivered, "")
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.CodeOf(err))

	shipped, err := env.App.Orders.UpdateStatus(merchant, o.ID, enums.OrderStatusShipped, " SF123 ")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, shipped.Status)
	assert.Equal(t, "SF123", shipped.TrackingNumber)

	delivered, err := env.App.Orders.UpdateStatus(env.Admin(t), o.ID, enums.OrderStatusDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, "SF123", delivered.TrackingNumber)

	_, err = env.App.Orders.UpdateStatus(merchant, o.ID, enums.OrderStatusCancelled, "")
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.CodeOf(err))

	inbox, err := env.App.Notifications.List(traveler)
	require.NoError(t, err)
	updates := titled(inbox, "Order Status Update")
	require.Len(t, updates, 2)
	ref := o.ID[len(o.ID)-6:]
	bodies := []string{updates[0].Body, updates[1].Body}
	assert.ElementsMatch(t, []string{
		"Your order #" + ref + " is now shipped.",
		"Your order #" + ref + " is now delivered.",
	}, bodies)
}

func TestOtherMerchantCannotFulfil(t *testing.T) {
	env := testenv.New(t)
	admin := env.Admin(t)
	rival, rivalID := env.Register(t, users.RegisterRequest{Email: "rival@test.com", Role: enums.UserRoleMerchant})
	_, err := env.App.Users.UpdateStatus(admin, rivalID, enums.AccountStatusActive)
	require.NoError(t, err)

	o, err := env.App.Orders.Create(env.Traveler(t), orders.CreateRequest{Items: []cart.Item{line("p1", 1)}, Shipping: shipping})
	require.NoError(t, err)

	_, err = env.App.Orders.UpdateStatus(rival, o.ID, enums.OrderStatusShipped, "")
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))
}
