package orders

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/kv"
)

const collectionKey = "orders"

type Repository struct {
	slot *kv.Slot[[]Order]
}

func NewRepository(store kv.Store, attempts int) *Repository {
	return &Repository{slot: kv.NewSlot[[]Order](store, collectionKey, attempts)}
}

func (r *Repository) List(ctx context.Context) ([]Order, error) {
	return r.slot.Load(ctx)
}

// FindByID returns nil when absent.
func (r *Repository) FindByID(ctx context.Context, id string) (*Order, error) {
	all, err := r.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Create stores o under the first id from nextID not already taken. It
// gives up with CONFLICT after idAttempts collisions.
func (r *Repository) Create(ctx context.Context, o Order, nextID func() (string, error), idAttempts int) (*Order, error) {
	if idAttempts <= 0 {
		idAttempts = 1
	}
	var created Order
	_, err := r.slot.Mutate(ctx, func(all []Order) ([]Order, error) {
		taken := make(map[string]bool, len(all))
		for _, existing := range all {
			taken[existing.ID] = true
		}
		for i := 0; i < idAttempts; i++ {
			id, err := nextID()
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order id")
			}
			if taken[id] {
				continue
			}
			created = o
			created.ID = id
			return append(all, created), nil
		}
		return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "could not allocate a unique order id after %d attempts", idAttempts)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies fn and returns the order before and after.
func (r *Repository) Update(ctx context.Context, id string, fn func(*Order) error) (before, after *Order, err error) {
	var old, updated Order
	_, err = r.slot.Mutate(ctx, func(all []Order) ([]Order, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			old = all[i]
			if err := fn(&all[i]); err != nil {
				return nil, err
			}
			updated = all[i]
			return all, nil
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	})
	if err != nil {
		return nil, nil, err
	}
	return &old, &updated, nil
}

// SyncRecipientName renames the recipient on the buyer's pending orders.
// Shipped and later orders keep the name they were dispatched with.
func (r *Repository) SyncRecipientName(ctx context.Context, buyerID, name string) error {
	_, err := r.slot.Mutate(ctx, func(all []Order) ([]Order, error) {
		changed := false
		for i := range all {
			o := &all[i]
			if o.BuyerID != buyerID || o.Status != enums.OrderStatusPending || o.Shipping.RecipientName == name {
				continue
			}
			o.Shipping.RecipientName = name
			changed = true
		}
		if !changed {
			return nil, kv.ErrNoChange
		}
		return all, nil
	})
	return err
}
