package users

import (
	"context"
	"strings"

	"github.com/angelmondragon/wandermart-backend/internal/authz"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/kv"
)

const collectionKey = "users"

// Repository exposes user persistence over the users collection.
type Repository struct {
	slot *kv.Slot[[]User]
}

// NewRepository constructs a users repo bound to the provided store.
func NewRepository(store kv.Store, attempts int) *Repository {
	return &Repository{slot: kv.NewSlot[[]User](store, collectionKey, attempts)}
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	return r.slot.Load(ctx)
}

// FindByID returns nil when no user has the id.
func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
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

// FindByEmail matches case-insensitively and returns nil when absent.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	all, err := r.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Email, email) {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Create appends u, rejecting a duplicate email or id.
func (r *Repository) Create(ctx context.Context, u User) error {
	_, err := r.slot.Mutate(ctx, func(all []User) ([]User, error) {
		for _, existing := range all {
			if strings.EqualFold(existing.Email, u.Email) {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already exists")
			}
			if existing.ID == u.ID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "user id already exists")
			}
		}
		return append(all, u), nil
	})
	return err
}

// Update applies fn to the user with the given id and returns the stored
// result.
func (r *Repository) Update(ctx context.Context, id string, fn func(*User) error) (*User, error) {
	var updated User
	_, err := r.slot.Mutate(ctx, func(all []User) ([]User, error) {
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
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Account feeds the authorization guard.
func (r *Repository) Account(ctx context.Context, userID string) (authz.Account, bool, error) {
	u, err := r.FindByID(ctx, userID)
	if err != nil || u == nil {
		return authz.Account{}, false, err
	}
	return authz.Account{Name: u.Username, Email: u.Email, Status: u.Status}, true, nil
}

// AdminIDs lists every admin in insertion order.
func (r *Repository) AdminIDs(ctx context.Context) ([]string, error) {
	all, err := r.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0)
	for _, u := range all {
		if u.Role == enums.UserRoleAdmin {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

// SeedIfEmpty writes users only when the collection has never been
// written. It reports whether anything was stored.
func (r *Repository) SeedIfEmpty(ctx context.Context, seed []User) (bool, error) {
	exists, err := r.slot.Exists(ctx)
	if err != nil || exists {
		return false, err
	}
	wrote := false
	_, err = r.slot.Mutate(ctx, func(all []User) ([]User, error) {
		wrote = false
		if len(all) > 0 {
			return nil, kv.ErrNoChange
		}
		wrote = true
		return seed, nil
	})
	return wrote, err
}
