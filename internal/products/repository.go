package products

import (
	"context"

	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/kv"
)

const collectionKey = "products"

// Repository owns the products collection and the denormalized fields
// other entities push into it.
type Repository struct {
	slot *kv.Slot[[]Product]
}

func NewRepository(store kv.Store, attempts int) *Repository {
	return &Repository{slot: kv.NewSlot[[]Product](store, collectionKey, attempts)}
}

func (r *Repository) List(ctx context.Context) ([]Product, error) {
	return r.slot.Load(ctx)
}

// FindByID returns nil when absent.
func (r *Repository) FindByID(ctx context.Context, id string) (*Product, error) {
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

func (r *Repository) Create(ctx context.Context, p Product) error {
	_, err := r.slot.Mutate(ctx, func(all []Product) ([]Product, error) {
		for _, existing := range all {
			if existing.ID == p.ID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "product id already exists")
			}
		}
		return append(all, p), nil
	})
	return err
}

// Update applies fn to the product and returns the stored result.
func (r *Repository) Update(ctx context.Context, id string, fn func(*Product) error) (*Product, error) {
	var updated Product
	_, err := r.slot.Mutate(ctx, func(all []Product) ([]Product, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			if err := fn(&all[i]); err != nil {
				return nil, err
			}
			updated = all[i]
			return all, nil
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the product after check approves it.
func (r *Repository) Delete(ctx context.Context, id string, check func(*Product) error) error {
	_, err := r.slot.Mutate(ctx, func(all []Product) ([]Product, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			if check != nil {
				if err := check(&all[i]); err != nil {
					return nil, err
				}
			}
			return append(all[:i:i], all[i+1:]...), nil
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	})
	return err
}

// SyncAttractionTitle rewrites the cached attraction name on every product
// linked to attractionID.
func (r *Repository) SyncAttractionTitle(ctx context.Context, attractionID, title string) error {
	return r.rewrite(ctx, func(p *Product) bool {
		if p.AttractionID != attractionID || p.AttractionName == title {
			return false
		}
		p.AttractionName = title
		return true
	})
}

// UnlinkAttraction clears the link on products pointing at a deleted
// attraction.
func (r *Repository) UnlinkAttraction(ctx context.Context, attractionID string) error {
	return r.rewrite(ctx, func(p *Product) bool {
		if p.AttractionID != attractionID {
			return false
		}
		p.AttractionID = ""
		p.AttractionName = ""
		return true
	})
}

// SyncSellerName rewrites the cached seller name on a merchant's products.
func (r *Repository) SyncSellerName(ctx context.Context, sellerID, name string) error {
	return r.rewrite(ctx, func(p *Product) bool {
		if p.SellerID != sellerID || p.SellerName == name {
			return false
		}
		p.SellerName = name
		return true
	})
}

func (r *Repository) rewrite(ctx context.Context, fn func(*Product) bool) error {
	_, err := r.slot.Mutate(ctx, func(all []Product) ([]Product, error) {
		changed := false
		for i := range all {
			if fn(&all[i]) {
				changed = true
			}
		}
		if !changed {
			return nil, kv.ErrNoChange
		}
		return all, nil
	})
	return err
}

// SeedIfEmpty writes seed when the collection has never been written.
func (r *Repository) SeedIfEmpty(ctx context.Context, seed []Product) (bool, error) {
	exists, err := r.slot.Exists(ctx)
	if err != nil || exists {
		return false, err
	}
	wrote := false
	_, err = r.slot.Mutate(ctx, func(all []Product) ([]Product, error) {
		wrote = false
		if len(all) > 0 {
			return nil, kv.ErrNoChange
		}
		wrote = true
		return seed, nil
	})
	return wrote, err
}
