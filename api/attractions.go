package api

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/internal/attractions"
	"github.com/angelmondragon/wandermart-backend/pkg/types"
)

func (b *Backend) GetAttractions(ctx context.Context, filter attractions.Filter) types.Envelope[[]attractions.View] {
	return call(ctx, b, "attractions.list", func(ctx context.Context) ([]attractions.View, error) {
		return b.app.Attractions.List(ctx, filter)
	})
}

func (b *Backend) GetPendingAttractions(ctx context.Context) types.Envelope[[]attractions.View] {
	return call(ctx, b, "attractions.pending", b.app.Attractions.ListPending)
}

func (b *Backend) GetAttraction(ctx context.Context, id string) types.Envelope[*attractions.View] {
	return call(ctx, b, "attractions.get", func(ctx context.Context) (*attractions.View, error) {
		return b.app.Attractions.Get(ctx, id)
	})
}

func (b *Backend) CreateAttraction(ctx context.Context, req attractions.CreateRequest) types.Envelope[*attractions.View] {
	return call(ctx, b, "attractions.create", func(ctx context.Context) (*attractions.View, error) {
		return b.app.Attractions.Create(ctx, req)
	})
}

func (b *Backend) UpdateAttraction(ctx context.Context, id string, req attractions.UpdateRequest) types.Envelope[*attractions.View] {
	return call(ctx, b, "attractions.update", func(ctx context.Context) (*attractions.View, error) {
		return b.app.Attractions.Update(ctx, id, req)
	})
}

func (b *Backend) DeleteAttraction(ctx context.Context, id string) types.Envelope[types.Empty] {
	return exec(ctx, b, "attractions.delete", func(ctx context.Context) error {
		return b.app.Attractions.Delete(ctx, id)
	})
}
