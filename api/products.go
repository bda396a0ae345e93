package api

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/internal/products"
	"github.com/angelmondragon/wandermart-backend/pkg/types"
)

func (b *Backend) GetProducts(ctx context.Context, filter products.Filter) types.Envelope[[]products.Product] {
	return call(ctx, b, "products.list", func(ctx context.Context) ([]products.Product, error) {
		return b.app.Products.List(ctx, filter)
	})
}

func (b *Backend) GetProduct(ctx context.Context, id string) types.Envelope[*products.Product] {
	return call(ctx, b, "products.get", func(ctx context.Context) (*products.Product, error) {
		return b.app.Products.Get(ctx, id)
	})
}

func (b *Backend) CreateProduct(ctx context.Context, req products.CreateRequest) types.Envelope[*products.Product] {
	return call(ctx, b, "products.create", func(ctx context.Context) (*products.Product, error) {
		return b.app.Products.Create(ctx, req)
	})
}

func (b *Backend) UpdateProduct(ctx context.Context, id string, req products.UpdateRequest) types.Envelope[*products.Product] {
	return call(ctx, b, "products.update", func(ctx context.Context) (*products.Product, error) {
		return b.app.Products.Update(ctx, id, req)
	})
}

func (b *Backend) DeleteProduct(ctx context.Context, id string) types.Envelope[types.Empty] {
	return exec(ctx, b, "products.delete", func(ctx context.Context) error {
		return b.app.Products.Delete(ctx, id)
	})
}
