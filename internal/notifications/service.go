package notifications

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/internal/authz"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
)

// Service is the caller-facing inbox.
type Service struct {
	repo  *Repository
	guard *authz.Guard
}

func NewService(repo *Repository, guard *authz.Guard) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "guard required")
	}
	return &Service{repo: repo, guard: guard}, nil
}

// List returns the caller's notifications, newest first.
func (s *Service) List(ctx context.Context) ([]Notification, error) {
	actor, err := s.guard.RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListFor(ctx, actor.ID)
}

func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	actor, err := s.guard.RequireSession(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}
	found, err := s.repo.MarkRead(ctx, actor.ID, id)
	if err != nil {
		return err
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	actor, err := s.guard.RequireSession(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.MarkAllRead(ctx, actor.ID)
}
