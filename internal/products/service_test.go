package products_test

import (
	"context"
	"testing"

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

func ids(list []products.Product) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}

func TestListFilters(t *testing.T) {
	env := testenv.New(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter products.Filter
		want   []string
	}{
		{"all", products.Filter{}, []string{"p1", "p2", "p3"}},
		{"province", products.Filter{Province: "四川省"}, []string{"p1", "p2"}},
		{"county", products.Filter{Province: "北京市", County: "东城区"}, []string{"p3"}},
		{"attraction", products.Filter{AttractionID: "5"}, []string{"p2"}},
		{"seller", products.Filter{SellerID: testenv.MerchantID}, []string{"p1", "p2", "p3"}},
		{"query name", products.Filter{Query: "panda toy"}, []string{"p1"}},
		{"query attraction", products.Filter{Query: "forbidden"}, []string{"p3"}},
		{"no match", products.Filter{Query: "zebra"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := env.App.Products.List(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestCreateForMerchant(t *testing.T) {
	env := testenv.New(t)
	merchant := env.Merchant(t)

	p, err := env.App.Products.Create(merchant, products.CreateRequest{
		AttractionID: "3",
		Name:         "  Silk Scarf ",
		Price:        ptr(decimal.RequireFromString("8.75")),
		Stock:        ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Silk Scarf", p.Name)
	assert.Equal(t, testenv.MerchantID, p.SellerID)
	assert.Equal(t, "Merchant User", p.SellerName)
	assert.Equal(t, "West Lake Cultural Landscape", p.AttractionName)
	assert.Equal(t, []string{"https://img.test/product.jpg"}, p.ImageURLs)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("8.75")))

	got, err := env.App.Products.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestCreateRejections(t *testing.T) {
	env := testenv.New(t)
	merchant := env.Merchant(t)
	price := ptr(decimal.NewFromInt(5))

	cases := []struct {
		name string
		ctx  context.Context
		req  products.CreateRequest
		code pkgerrors.Code
	}{
		{"anonymous", context.Background(), products.CreateRequest{Name: "x", Price: price, Stock: ptr(1)}, pkgerrors.CodeUnauthorized},
		{"traveler", env.Traveler(t), products.CreateRequest{Name: "x", Price: price, Stock: ptr(1)}, pkgerrors.CodeForbidden},
		{"blank name", merchant, products.CreateRequest{Name: "  ", Price: price, Stock: ptr(1)}, pkgerrors.CodeValidation},
		{"missing price", merchant, products.CreateRequest{Name: "x", Stock: ptr(1)}, pkgerrors.CodeValidation},
		{"missing stock", merchant, products.CreateRequest{Name: "x", Price: price}, pkgerrors.CodeValidation},
		{"negative price", merchant, products.CreateRequest{Name: "x", Price: ptr(decimal.NewFromInt(-1)), Stock: ptr(1)}, pkgerrors.CodeValidation},
		{"negative stock", merchant, products.CreateRequest{Name: "x", Price: price, Stock: ptr(-1)}, pkgerrors.CodeValidation},
		{"unknown attraction", merchant, products.CreateRequest{Name: "x", AttractionID: "404", Price: price, Stock: ptr(1)}, pkgerrors.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.App.Products.Create(tc.ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, pkgerrors.CodeOf(err))
		})
	}
}

func TestPendingMerchantCannotList(t *testing.T) {
	env := testenv.New(t)
	pending, _ := env.Register(t, users.RegisterRequest{Email: "shop@test.com", Role: enums.UserRoleMerchant})

	_, err := env.App.Products.Create(pending, products.CreateRequest{Name: "x", Price: ptr(decimal.NewFromInt(1)), Stock: ptr(1)})
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))
}

func TestAdminCreatesOnBehalfOfMerchant(t *testing.T) {
	env := testenv.New(t)
	admin := env.Admin(t)

	p, err := env.App.Products.Create(admin, products.CreateRequest{
		SellerID: testenv.MerchantID,
		Name:     "Tea Tin",
		Price:    ptr(decimal.NewFromInt(3)),
		Stock:    ptr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, testenv.MerchantID, p.SellerID)
	assert.Empty(t, p.AttractionID)

	_, err = env.App.Products.Create(admin, products.CreateRequest{
		SellerID: testenv.TravelerID,
		Name:     "Tea Tin",
		Price:    ptr(decimal.NewFromInt(3)),
		Stock:    ptr(10),
	})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	env := testenv.New(t)
	merchant := env.Merchant(t)
	admin := env.Admin(t)
	other, otherID := env.Register(t, users.RegisterRequest{Email: "rival@test.com", Role: enums.UserRoleMerchant})
	_, err := env.App.Users.UpdateStatus(admin, otherID, enums.AccountStatusActive)
	require.NoError(t, err)

	_, err = env.App.Products.Update(other, "p1", products.UpdateRequest{Name: ptr("Stolen")})
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(env.App.Products.Delete(other, "p1")))

	updated, err := env.App.Products.Update(merchant, "p1", products.UpdateRequest{
		AttractionID: ptr("2"),
		Stock:        ptr(7),
		ImageURLs:    []string{},
	})
	require.NoError(t, err)
	assert.Equal(t, "2", updated.AttractionID)
	assert.Equal(t, "The Palace Museum (Forbidden City)", updated.AttractionName)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, []string{"https://img.test/product.jpg"}, updated.ImageURLs)

	unlinked, err := env.App.Products.Update(admin, "p1", products.UpdateRequest{AttractionID: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, unlinked.AttractionID)
	assert.Empty(t, unlinked.AttractionName)

	_, err = env.App.Products.Update(merchant, "p1", products.UpdateRequest{Name: ptr(" ")})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	_, err = env.App.Products.Update(merchant, "p1", products.UpdateRequest{Price: ptr(decimal.NewFromInt(-2))})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	_, err = env.App.Products.Update(merchant, "missing", products.UpdateRequest{Stock: ptr(1)})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	require.NoError(t, env.App.Products.Delete(merchant, "p1"))
	_, err = env.App.Products.Get(context.Background(), "p1")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
