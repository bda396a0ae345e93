package api

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/internal/cart"
	"github.com/angelmondragon/wandermart-backend/internal/orders"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	"github.com/angelmondragon/wandermart-backend/pkg/types"
)

// AddToCart puts qty of the current catalogue record of productID into c.
func (b *Backend) AddToCart(ctx context.Context, c *cart.Cart, productID string, qty int) types.Envelope[[]cart.Item] {
	return call(ctx, b, "cart.add", func(ctx context.Context) ([]cart.Item, error) {
		p, err := b.app.Products.Get(ctx, productID)
		if err != nil {
			return nil, err
		}
		if err := c.Add(*p, qty); err != nil {
			return nil, err
		}
		return c.Items(), nil
	})
}

// Checkout places an order for the contents of c and empties it on
// success. A nil shipping falls back to the buyer's saved profile.
func (b *Backend) Checkout(ctx context.Context, c *cart.Cart, shipping *orders.Shipping) types.Envelope[*orders.Order] {
	return call(ctx, b, "orders.checkout", func(ctx context.Context) (*orders.Order, error) {
		items := c.Items()
		total := cart.Total(items)
		order, err := b.app.Orders.Create(ctx, orders.CreateRequest{Items: items, Total: &total, Shipping: shipping})
		if err != nil {
			return nil, err
		}
		c.Clear()
		return order, nil
	})
}

func (b *Backend) CreateOrder(ctx context.Context, req orders.CreateRequest) types.Envelope[*orders.Order] {
	return call(ctx, b, "orders.create", func(ctx context.Context) (*orders.Order, error) {
		return b.app.Orders.Create(ctx, req)
	})
}

func (b *Backend) GetOrders(ctx context.Context, filter orders.Filter) types.Envelope[[]orders.Order] {
	return call(ctx, b, "orders.list", func(ctx context.Context) ([]orders.Order, error) {
		return b.app.Orders.List(ctx, filter)
	})
}

func (b *Backend) GetOrder(ctx context.Context, id string) types.Envelope[*orders.Order] {
	return call(ctx, b, "orders.get", func(ctx context.Context) (*orders.Order, error) {
		return b.app.Orders.Get(ctx, id)
	})
}

func (b *Backend) UpdateOrderStatus(ctx context.Context, id string, status enums.OrderStatus, trackingNumber string) types.Envelope[*orders.Order] {
	return call(ctx, b, "orders.update_status", func(ctx context.Context) (*orders.Order, error) {
		return b.app.Orders.UpdateStatus(ctx, id, status, trackingNumber)
	})
}
