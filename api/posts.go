package api

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/internal/posts"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	"github.com/angelmondragon/wandermart-backend/pkg/types"
)

func (b *Backend) GetPosts(ctx context.Context, filter posts.Filter) types.Envelope[[]posts.Post] {
	return call(ctx, b, "posts.list", func(ctx context.Context) ([]posts.Post, error) {
		return b.app.Posts.List(ctx, filter)
	})
}

func (b *Backend) CreatePost(ctx context.Context, req posts.CreateRequest) types.Envelope[*posts.Post] {
	return call(ctx, b, "posts.create", func(ctx context.Context) (*posts.Post, error) {
		return b.app.Posts.Create(ctx, req)
	})
}

func (b *Backend) UpdatePost(ctx context.Context, id string, req posts.UpdateRequest) types.Envelope[*posts.Post] {
	return call(ctx, b, "posts.update", func(ctx context.Context) (*posts.Post, error) {
		return b.app.Posts.Update(ctx, id, req)
	})
}

func (b *Backend) DeletePost(ctx context.Context, id string) types.Envelope[types.Empty] {
	return exec(ctx, b, "posts.delete", func(ctx context.Context) error {
		return b.app.Posts.Delete(ctx, id)
	})
}

func (b *Backend) LikePost(ctx context.Context, id string) types.Envelope[*posts.Post] {
	return call(ctx, b, "posts.like", func(ctx context.Context) (*posts.Post, error) {
		return b.app.Posts.Like(ctx, id)
	})
}

func (b *Backend) ReportPost(ctx context.Context, id string) types.Envelope[types.Empty] {
	return exec(ctx, b, "posts.report", func(ctx context.Context) error {
		return b.app.Posts.Report(ctx, id)
	})
}

func (b *Backend) GetReportedContent(ctx context.Context) types.Envelope[[]posts.Reported] {
	return call(ctx, b, "posts.reported", b.app.Posts.ListReported)
}

func (b *Backend) ModerateContent(ctx context.Context, id string, action enums.ModerationAction) types.Envelope[types.Empty] {
	return exec(ctx, b, "posts.moderate", func(ctx context.Context) error {
		return b.app.Posts.Moderate(ctx, id, action)
	})
}
