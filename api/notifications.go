package api

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/internal/notifications"
	"github.com/angelmondragon/wandermart-backend/pkg/types"
)

func (b *Backend) GetMessages(ctx context.Context) types.Envelope[[]notifications.Notification] {
	return call(ctx, b, "notifications.list", b.app.Notifications.List)
}

func (b *Backend) UnreadCount(ctx context.Context) types.Envelope[int] {
	return call(ctx, b, "notifications.unread_count", b.app.Notifications.UnreadCount)
}

func (b *Backend) MarkMessageRead(ctx context.Context, id string) types.Envelope[types.Empty] {
	return exec(ctx, b, "notifications.mark_read", func(ctx context.Context) error {
		return b.app.Notifications.MarkRead(ctx, id)
	})
}

func (b *Backend) MarkAllMessagesRead(ctx context.Context) types.Envelope[int] {
	return call(ctx, b, "notifications.mark_all_read", b.app.Notifications.MarkAllRead)
}
