package posts

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/internal/attractions"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/kv"
)

const (
	collectionKey = "posts"
	reportsKey    = "post_reports"
)

// Repository stores posts plus the reporter index (post id to reporter ids).
type Repository struct {
	posts   *kv.Slot[[]Post]
	reports *kv.Slot[map[string][]string]
}

func NewRepository(store kv.Store, attempts int) *Repository {
	return &Repository{
		posts:   kv.NewSlot[[]Post](store, collectionKey, attempts),
		reports: kv.NewSlot[map[string][]string](store, reportsKey, attempts),
	}
}

func (r *Repository) List(ctx context.Context) ([]Post, error) {
	return r.posts.Load(ctx)
}

// FindByID returns nil when absent.
func (r *Repository) FindByID(ctx context.Context, id string) (*Post, error) {
	all, err := r.posts.Load(ctx)
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

func (r *Repository) Create(ctx context.Context, p Post) error {
	_, err := r.posts.Mutate(ctx, func(all []Post) ([]Post, error) {
		for _, existing := range all {
			if existing.ID == p.ID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "post id already exists")
			}
		}
		return append(all, p), nil
	})
	return err
}

// Update applies fn and returns the post before and after.
func (r *Repository) Update(ctx context.Context, id string, fn func(*Post) error) (before, after *Post, err error) {
	var old, updated Post
	_, err = r.posts.Mutate(ctx, func(all []Post) ([]Post, error) {
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
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	})
	if err != nil {
		return nil, nil, err
	}
	return &old, &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (*Post, error) {
	var removed Post
	_, err := r.posts.Mutate(ctx, func(all []Post) ([]Post, error) {
		for i := range all {
			if all[i].ID == id {
				removed = all[i]
				return append(all[:i:i], all[i+1:]...), nil
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// RemoveForAttraction deletes every post on attractionID along with its
// reports and returns how many posts went.
func (r *Repository) RemoveForAttraction(ctx context.Context, attractionID string) (int, error) {
	var removed []string
	_, err := r.posts.Mutate(ctx, func(all []Post) ([]Post, error) {
		removed = removed[:0]
		kept := make([]Post, 0, len(all))
		for _, p := range all {
			if p.AttractionID == attractionID {
				removed = append(removed, p.ID)
				continue
			}
			kept = append(kept, p)
		}
		if len(removed) == 0 {
			return nil, kv.ErrNoChange
		}
		return kept, nil
	})
	if err != nil || len(removed) == 0 {
		return 0, err
	}
	_, err = r.reports.Mutate(ctx, func(index map[string][]string) (map[string][]string, error) {
		changed := false
		for _, id := range removed {
			if _, ok := index[id]; ok {
				delete(index, id)
				changed = true
			}
		}
		if !changed {
			return nil, kv.ErrNoChange
		}
		return index, nil
	})
	return len(removed), err
}

// Reviews feeds the attraction rating aggregation.
func (r *Repository) Reviews(ctx context.Context) ([]attractions.Review, error) {
	all, err := r.posts.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]attractions.Review, 0, len(all))
	for _, p := range all {
		out = append(out, attractions.Review{
			AttractionID: p.AttractionID,
			Rating:       p.Rating,
			Active:       p.Status == enums.PostStatusActive,
		})
	}
	return out, nil
}

// AddReporter records reporterID against postID once. It reports whether
// the pair was new.
func (r *Repository) AddReporter(ctx context.Context, postID, reporterID string) (bool, error) {
	added := false
	_, err := r.reports.Mutate(ctx, func(index map[string][]string) (map[string][]string, error) {
		added = false
		for _, existing := range index[postID] {
			if existing == reporterID {
				return nil, kv.ErrNoChange
			}
		}
		if index == nil {
			index = make(map[string][]string)
		}
		index[postID] = append(index[postID], reporterID)
		added = true
		return index, nil
	})
	return added, err
}

func (r *Repository) Reporters(ctx context.Context, postID string) ([]string, error) {
	index, err := r.reports.Load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), index[postID]...), nil
}

// ReportIndex returns the whole reporter index.
func (r *Repository) ReportIndex(ctx context.Context) (map[string][]string, error) {
	return r.reports.Load(ctx)
}

func (r *Repository) ClearReports(ctx context.Context, postID string) error {
	_, err := r.reports.Mutate(ctx, func(index map[string][]string) (map[string][]string, error) {
		if _, ok := index[postID]; !ok {
			return nil, kv.ErrNoChange
		}
		delete(index, postID)
		return index, nil
	})
	return err
}

// SeedIfEmpty writes seed when the collection has never been written.
func (r *Repository) SeedIfEmpty(ctx context.Context, seed []Post) (bool, error) {
	exists, err := r.posts.Exists(ctx)
	if err != nil || exists {
		return false, err
	}
	wrote := false
	_, err = r.posts.Mutate(ctx, func(all []Post) ([]Post, error) {
		wrote = false
		if len(all) > 0 {
			return nil, kv.ErrNoChange
		}
		wrote = true
		return seed, nil
	})
	return wrote, err
}
