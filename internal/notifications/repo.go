package notifications

import (
	"context"
	"sort"

	"github.com/angelmondragon/wandermart-backend/pkg/kv"
)

const collectionKey = "notifications"

// Repository persists every inbox in one collection.
type Repository struct {
	slot *kv.Slot[[]Notification]
}

func NewRepository(store kv.Store, attempts int) *Repository {
	return &Repository{slot: kv.NewSlot[[]Notification](store, collectionKey, attempts)}
}

func (r *Repository) Append(ctx context.Context, n Notification) error {
	_, err := r.slot.Mutate(ctx, func(all []Notification) ([]Notification, error) {
		return append(all, n), nil
	})
	return err
}

// ListFor returns the recipient's notifications, newest first.
func (r *Repository) ListFor(ctx context.Context, userID string) ([]Notification, error) {
	all, err := r.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0)
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// MarkRead flips the read flag of one of the recipient's notifications and
// reports whether it was found.
func (r *Repository) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	found := false
	_, err := r.slot.Mutate(ctx, func(all []Notification) ([]Notification, error) {
		found = false
		for i := range all {
			if all[i].ID != id || all[i].UserID != userID {
				continue
			}
			found = true
			if all[i].Read {
				return nil, kv.ErrNoChange
			}
			all[i].Read = true
			return all, nil
		}
		return nil, kv.ErrNoChange
	})
	return found, err
}

// MarkAllRead returns how many notifications changed.
func (r *Repository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	count := 0
	_, err := r.slot.Mutate(ctx, func(all []Notification) ([]Notification, error) {
		count = 0
		for i := range all {
			if all[i].UserID == userID && !all[i].Read {
				all[i].Read = true
				count++
			}
		}
		if count == 0 {
			return nil, kv.ErrNoChange
		}
		return all, nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
