package attractions

import (
	"context"

	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/kv"
)

const collectionKey = "attractions"

type Repository struct {
	slot *kv.Slot[[]Attraction]
}

func NewRepository(store kv.Store, attempts int) *Repository {
	return &Repository{slot: kv.NewSlot[[]Attraction](store, collectionKey, attempts)}
}

func (r *Repository) List(ctx context.Context) ([]Attraction, error) {
	return r.slot.Load(ctx)
}

// FindByID returns nil when absent.
func (r *Repository) FindByID(ctx context.Context, id string) (*Attraction, error) {
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

func (r *Repository) Create(ctx context.Context, a Attraction) error {
	_, err := r.slot.Mutate(ctx, func(all []Attraction) ([]Attraction, error) {
		for _, existing := range all {
			if existing.ID == a.ID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "attraction id already exists")
			}
		}
		return append(all, a), nil
	})
	return err
}

// Update applies fn to the attraction and returns it before and after.
func (r *Repository) Update(ctx context.Context, id string, fn func(*Attraction) error) (before, after *Attraction, err error) {
	var old, updated Attraction
	_, err = r.slot.Mutate(ctx, func(all []Attraction) ([]Attraction, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			old = all[i]
			old.Tags = append([]string(nil), all[i].Tags...)
			old.ImageURLs = append([]string(nil), all[i].ImageURLs...)
			if err := fn(&all[i]); err != nil {
				return nil, err
			}
			updated = all[i]
			return all, nil
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attraction not found")
	})
	if err != nil {
		return nil, nil, err
	}
	return &old, &updated, nil
}

// Delete removes the attraction and returns what was removed.
func (r *Repository) Delete(ctx context.Context, id string) (*Attraction, error) {
	var removed Attraction
	_, err := r.slot.Mutate(ctx, func(all []Attraction) ([]Attraction, error) {
		for i := range all {
			if all[i].ID == id {
				removed = all[i]
				return append(all[:i:i], all[i+1:]...), nil
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attraction not found")
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// SeedIfEmpty writes seed when the collection has never been written.
func (r *Repository) SeedIfEmpty(ctx context.Context, seed []Attraction) (bool, error) {
	exists, err := r.slot.Exists(ctx)
	if err != nil || exists {
		return false, err
	}
	wrote := false
	_, err = r.slot.Mutate(ctx, func(all []Attraction) ([]Attraction, error) {
		wrote = false
		if len(all) > 0 {
			return nil, kv.ErrNoChange
		}
		wrote = true
		return seed, nil
	})
	return wrote, err
}
