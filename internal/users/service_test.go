package users_test

import (
	"context"
	"testing"

	"github.com/angelmondragon/wandermart-backend/internal/cart"
	"github.com/angelmondragon/wandermart-backend/internal/orders"
	"github.com/angelmondragon/wandermart-backend/internal/posts"
	"github.com/angelmondragon/wandermart-backend/internal/products"
	"github.com/angelmondragon/wandermart-backend/internal/testenv"
	"github.com/angelmondragon/wandermart-backend/internal/users"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRegisterMerchantApprovalFlow(t *testing.T) {
	env := testenv.New(t)
	svc := env.App.Users

	merchantCtx, merchantID := env.Register(t, users.RegisterRequest{
		Email:    "Shop@Example.com",
		Username: "Shopkeeper",
		Role:     enums.UserRoleMerchant,
	})

	me, err := svc.Current(merchantCtx)
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, "shop@example.com", me.Email)
	assert.Equal(t, enums.AccountStatusPending, me.Status)
	assert.Equal(t, "https://avatar.test/?u="+merchantID, me.AvatarURL)

	adminCtx := env.Admin(t)
	inbox, err := env.App.Notifications.List(adminCtx)
	require.NoError(t, err)
	require.NotEmpty(t, inbox)
	assert.Equal(t, "New Merchant Application", inbox[0].Title)

	_, err = env.App.Products.Create(merchantCtx, products.CreateRequest{
		Name: "Tea", Price: ptr(decimal.NewFromInt(5)), Stock: ptr(3),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))

	pending, err := svc.ListPendingMerchants(adminCtx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, merchantID, pending[0].ID)

	approved, err := svc.UpdateStatus(adminCtx, merchantID, enums.AccountStatusActive)
	require.NoError(t, err)
	assert.Equal(t, enums.AccountStatusActive, approved.Status)

	mine, err := env.App.Notifications.List(merchantCtx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Account Status Update", mine[0].Title)
	assert.Equal(t, "Your account application has been active.", mine[0].Body)
	assert.Equal(t, enums.NotificationSeveritySuccess, mine[0].Severity)

	p, err := env.App.Products.Create(merchantCtx, products.CreateRequest{
		Name: "Tea", Price: ptr(decimal.NewFromInt(5)), Stock: ptr(3),
	})
	require.NoError(t, err, "approval takes effect without logging in again")
	assert.Equal(t, "Shopkeeper", p.SellerName)

	pending, err = svc.ListPendingMerchants(adminCtx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRejectionUsesErrorSeverity(t *testing.T) {
	env := testenv.New(t)
	merchantCtx, id := env.Register(t, users.RegisterRequest{Email: "no@shop.com", Role: enums.UserRoleMerchant})

	_, err := env.App.Users.UpdateStatus(env.Admin(t), id, enums.AccountStatusRejected)
	require.NoError(t, err)

	inbox, err := env.App.Notifications.List(merchantCtx)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, enums.NotificationSeverityError, inbox[0].Severity)
	assert.Equal(t, "Your account application has been rejected.", inbox[0].Body)
}

func TestUpdateStatusRules(t *testing.T) {
	env := testenv.New(t)
	adminCtx := env.Admin(t)

	_, err := env.App.Users.UpdateStatus(env.Traveler(t), testenv.MerchantID, enums.AccountStatusActive)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))

	_, err = env.App.Users.UpdateStatus(adminCtx, testenv.MerchantID, enums.AccountStatusPending)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = env.App.Users.UpdateStatus(adminCtx, testenv.TravelerID, enums.AccountStatusRejected)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = env.App.Users.UpdateStatus(adminCtx, "ghost", enums.AccountStatusActive)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestRegisterValidation(t *testing.T) {
	env := testenv.New(t)
	ctx := context.Background()
	svc := env.App.Users

	cases := []struct {
		name string
		req  users.RegisterRequest
		code pkgerrors.Code
	}{
		{"admin role", users.RegisterRequest{Email: "boss@test.com", Password: "secret1", Role: enums.UserRoleAdmin}, pkgerrors.CodeForbidden},
		{"guest role", users.RegisterRequest{Email: "g@test.com", Password: "secret1", Role: enums.UserRoleGuest}, pkgerrors.CodeValidation},
		{"short password", users.RegisterRequest{Email: "short@test.com", Password: "12345"}, pkgerrors.CodeValidation},
		{"bad email", users.RegisterRequest{Email: "nope", Password: "secret1"}, pkgerrors.CodeValidation},
		{"duplicate email", users.RegisterRequest{Email: "USER@test.com", Password: "secret1"}, pkgerrors.CodeConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, pkgerrors.CodeOf(err))
		})
	}
}

func TestRegisterDefaultsToTraveler(t *testing.T) {
	env := testenv.New(t)
	res, err := env.App.Users.Register(context.Background(), users.RegisterRequest{Email: "walker@trail.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleTraveler, res.User.Role)
	assert.Equal(t, enums.AccountStatusActive, res.User.Status)
	assert.Equal(t, "walker", res.User.Username)
	assert.NotEmpty(t, res.Token)
}

func TestLogin(t *testing.T) {
	env := testenv.New(t)
	ctx := context.Background()

	res, err := env.App.Users.Login(ctx, users.LoginRequest{Email: "ADMIN@test.com", Password: testenv.Password})
	require.NoError(t, err)
	assert.Equal(t, testenv.AdminID, res.User.ID)

	for _, req := range []users.LoginRequest{
		{Email: "admin@test.com", Password: "wrong-password"},
		{Email: "nobody@test.com", Password: testenv.Password},
	} {
		_, err := env.App.Users.Login(ctx, req)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
		assert.Contains(t, err.Error(), "invalid email or password")
	}
}

func TestLogoutEndsSession(t *testing.T) {
	env := testenv.New(t)
	ctx := env.Traveler(t)

	me, err := env.App.Users.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, me)

	require.NoError(t, env.App.Users.Logout(ctx))
	me, err = env.App.Users.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, me)

	require.NoError(t, env.App.Users.Logout(context.Background()), "logging out twice is harmless")
}

func TestGetIsSelfOrAdmin(t *testing.T) {
	env := testenv.New(t)

	_, err := env.App.Users.Get(env.Traveler(t), testenv.MerchantID)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))

	self, err := env.App.Users.Get(env.Traveler(t), testenv.TravelerID)
	require.NoError(t, err)
	assert.Equal(t, "Traveler User", self.Username)

	other, err := env.App.Users.Get(env.Admin(t), testenv.MerchantID)
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleMerchant, other.Role)

	_, err = env.App.Users.Get(context.Background(), testenv.TravelerID)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestUpdateProfileSyncsDenormalizedNames(t *testing.T) {
	env := testenv.New(t)
	merchantCtx := env.Merchant(t)
	travelerCtx := env.Traveler(t)

	_, err := env.App.Users.UpdateProfile(travelerCtx, testenv.TravelerID, users.UpdateProfileRequest{
		Shipping: &users.ShippingProfile{RecipientName: "T. User", Phone: "123", Address: "1 Road"},
	})
	require.NoError(t, err)

	order, err := env.App.Orders.Create(travelerCtx, orders.CreateRequest{
		Items: []cart.Item{{Product: products.Product{ID: "p2"}, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "T. User", order.Shipping.RecipientName)

	updated, err := env.App.Users.UpdateProfile(merchantCtx, testenv.MerchantID, users.UpdateProfileRequest{Username: ptr("  Panda Shop  ")})
	require.NoError(t, err)
	assert.Equal(t, "Panda Shop", updated.Username)

	list, err := env.App.Products.List(context.Background(), products.Filter{SellerID: testenv.MerchantID})
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for _, p := range list {
		assert.Equal(t, "Panda Shop", p.SellerName)
	}

	sess, err := env.App.Sessions.Current(merchantCtx)
	require.NoError(t, err)
	assert.Equal(t, "Panda Shop", sess.User.Username, "own session is refreshed")

	_, err = env.App.Users.UpdateProfile(travelerCtx, testenv.TravelerID, users.UpdateProfileRequest{
		Shipping: &users.ShippingProfile{RecipientName: "Renamed Recipient", Phone: "123", Address: "1 Road"},
	})
	require.NoError(t, err)

	got, err := env.App.Orders.Get(travelerCtx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Recipient", got.Shipping.RecipientName)
}

func TestAdminRenameReachesLaterListingsAndPosts(t *testing.T) {
	env := testenv.New(t)
	adminCtx := env.Admin(t)
	merchantCtx := env.Merchant(t)
	travelerCtx := env.Traveler(t)

	_, err := env.App.Users.UpdateProfile(adminCtx, testenv.MerchantID, users.UpdateProfileRequest{Username: ptr("Renamed Shop")})
	require.NoError(t, err)
	_, err = env.App.Users.UpdateProfile(adminCtx, testenv.TravelerID, users.UpdateProfileRequest{Username: ptr("Renamed Traveler")})
	require.NoError(t, err)

	p, err := env.App.Products.Create(merchantCtx, products.CreateRequest{
		AttractionID: "1",
		Name:         "Bamboo Fan",
		Price:        ptr(decimal.RequireFromString("9.90")),
		Stock:        ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Shop", p.SellerName)

	post, err := env.App.Posts.Create(travelerCtx, posts.CreateRequest{AttractionID: "1", Content: "Great pandas", Rating: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Traveler", post.AuthorName)
}

func TestUpdateProfileRules(t *testing.T) {
	env := testenv.New(t)
	travelerCtx := env.Traveler(t)

	_, err := env.App.Users.UpdateProfile(travelerCtx, testenv.MerchantID, users.UpdateProfileRequest{Username: ptr("x")})
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))

	_, err = env.App.Users.UpdateProfile(travelerCtx, testenv.TravelerID, users.UpdateProfileRequest{Username: ptr("   ")})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = env.App.Users.UpdateProfile(travelerCtx, testenv.TravelerID, users.UpdateProfileRequest{
		Shipping: &users.ShippingProfile{RecipientName: "only name"},
	})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	adminCtx := env.Admin(t)
	_, err = env.App.Users.UpdateProfile(adminCtx, testenv.TravelerID, users.UpdateProfileRequest{Username: ptr("Moderated")})
	require.NoError(t, err)

	sess, err := env.App.Sessions.Current(adminCtx)
	require.NoError(t, err)
	assert.Equal(t, "Admin User", sess.User.Username, "admin session untouched when editing others")
}
