package posts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/wandermart-backend/internal/attractions"
	"github.com/angelmondragon/wandermart-backend/internal/authz"
	"github.com/angelmondragon/wandermart-backend/internal/notifications"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/angelmondragon/wandermart-backend/pkg/validate"
	"github.com/google/uuid"
)

type attractionFinder interface {
	Get(ctx context.Context, id string) (*attractions.View, error)
}

type notifier interface {
	Deliver(ctx context.Context, userID string, msg notifications.Message)
	DeliverAdmins(ctx context.Context, msg notifications.Message)
}

type ServiceParams struct {
	Repo        *Repository
	Attractions attractionFinder
	Guard       *authz.Guard
	Notifier    notifier
	Logger      *logger.Logger
}

type Service struct {
	repo        *Repository
	attractions attractionFinder
	guard       *authz.Guard
	notifier    notifier
	logg        *logger.Logger
	now         func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	switch {
	case params.Repo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "posts repository required")
	case params.Attractions == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "attractions required")
	case params.Guard == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "guard required")
	case params.Notifier == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		repo:        params.Repo,
		attractions: params.Attractions,
		guard:       params.Guard,
		notifier:    params.Notifier,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// List returns active posts in insertion order.
func (s *Service) List(ctx context.Context, filter Filter) ([]Post, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Post, 0)
	for _, p := range all {
		if p.Status != enums.PostStatusActive {
			continue
		}
		if filter.AttractionID != "" && p.AttractionID != filter.AttractionID {
			continue
		}
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ListReported is the admin moderation queue.
func (s *Service) ListReported(ctx context.Context) ([]Reported, error) {
	if _, err := s.guard.Require(ctx, enums.UserRoleAdmin); err != nil {
		return nil, err
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	index, err := s.repo.ReportIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Reported, 0)
	for _, p := range all {
		if p.Status == enums.PostStatusReported {
			out = append(out, Reported{Post: p, Reporters: append([]string{}, index[p.ID]...)})
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Post, error) {
	actor, err := s.guard.Require(ctx)
	if err != nil {
		return nil, err
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.attractions.Get(ctx, req.AttractionID); err != nil {
		return nil, err
	}

	p := Post{
		ID:           uuid.NewString(),
		AttractionID: req.AttractionID,
		AuthorID:     actor.ID,
		AuthorName:   actor.Name,
		Content:      req.Content,
		Rating:       copyRating(req.Rating),
		ImageURLs:    append([]string{}, req.ImageURLs...),
		Status:       enums.PostStatusActive,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update lets the author or an admin edit content, rating and images.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Post, error) {
	actor, err := s.guard.Require(ctx)
	if err != nil {
		return nil, err
	}
	if req.Content != nil {
		trimmed := strings.TrimSpace(*req.Content)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "content cannot be empty")
		}
		req.Content = &trimmed
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	_, after, err := s.repo.Update(ctx, id, func(p *Post) error {
		if err := authz.Authorize(actor, authz.Resource{Kind: "post", OwnerIDs: []string{p.AuthorID}}, authz.ActionUpdate); err != nil {
			return err
		}
		if req.Content != nil {
			p.Content = *req.Content
		}
		switch {
		case req.ClearRating:
			p.Rating = nil
		case req.Rating != nil:
			p.Rating = copyRating(req.Rating)
		}
		if req.ImageURLs != nil {
			p.ImageURLs = append([]string{}, req.ImageURLs...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return after, nil
}

// Delete lets the author or an admin remove a post.
func (s *Service) Delete(ctx context.Context, id string) error {
	actor, err := s.guard.Require(ctx)
	if err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	if err := authz.Authorize(actor, authz.Resource{Kind: "post", OwnerIDs: []string{existing.AuthorID}}, authz.ActionDelete); err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.repo.ClearReports(ctx, id); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "post_id", id), "posts.clear_reports_failed", err)
	}
	return nil
}

// Like bumps the like counter of an active post.
func (s *Service) Like(ctx context.Context, id string) (*Post, error) {
	if _, err := s.guard.Require(ctx); err != nil {
		return nil, err
	}
	_, after, err := s.repo.Update(ctx, id, func(p *Post) error {
		if p.Status != enums.PostStatusActive {
			return pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		p.Likes++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return after, nil
}

// Report flags a post for moderation. Authors cannot report themselves and
// each reporter is recorded once per post. Only the first report of an
// active post notifies the admins.
func (s *Service) Report(ctx context.Context, id string) error {
	actor, err := s.guard.Require(ctx)
	if err != nil {
		return err
	}
	before, after, err := s.repo.Update(ctx, id, func(p *Post) error {
		if p.AuthorID == actor.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "you cannot report your own post")
		}
		switch p.Status {
		case enums.PostStatusActive:
			p.Status = enums.PostStatusReported
		case enums.PostStatusReported:
		default:
			return pkgerrors.Newf(pkgerrors.CodeStateConflict, "post is %s and cannot be reported", p.Status).
				WithDetails(map[string]any{"status": p.Status})
		}
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := s.repo.AddReporter(ctx, id, actor.ID); err != nil {
		return err
	}

	if before.Status == enums.PostStatusActive && after.Status == enums.PostStatusReported {
		s.notifier.DeliverAdmins(ctx, notifications.Message{
			Title:    "Content Reported",
			Body:     fmt.Sprintf("A review on attraction %s was reported by %s.", after.AttractionID, actor.Name),
			Severity: enums.NotificationSeverityWarning,
		})
	}
	return nil
}

// Moderate resolves a report. Delete removes the post; approve restores it.
// The author and every reporter are told, and the report index entry is
// cleared so a restored post can be reported again.
func (s *Service) Moderate(ctx context.Context, id string, action enums.ModerationAction) error {
	if _, err := s.guard.Require(ctx, enums.UserRoleAdmin); err != nil {
		return err
	}
	if !action.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid moderation action %q", action)
	}

	var post *Post
	var err error
	if action == enums.ModerationActionDelete {
		post, err = s.repo.Delete(ctx, id)
	} else {
		_, post, err = s.repo.Update(ctx, id, func(p *Post) error {
			p.Status = enums.PostStatusActive
			return nil
		})
	}
	if err != nil {
		return err
	}

	ctx = s.logg.WithField(ctx, "post_id", id)
	reporters, err := s.repo.Reporters(ctx, id)
	if err != nil {
		s.logg.Error(ctx, "posts.load_reporters_failed", err)
	}

	deleted := action == enums.ModerationActionDelete
	outcome, reporterOutcome := "approved and restored", "reviewed and kept"
	if deleted {
		outcome, reporterOutcome = "removed due to violations", "removed"
	}
	s.notifier.Deliver(ctx, post.AuthorID, notifications.Message{
		Title:    "Content Moderation",
		Body:     fmt.Sprintf("Your review on attraction %s has been %s.", post.AttractionID, outcome),
		Severity: enums.SeverityFor(!deleted),
	})
	for _, reporterID := range reporters {
		s.notifier.Deliver(ctx, reporterID, notifications.Message{
			Title:    "Report Update",
			Body:     "A review you reported has been " + reporterOutcome + ".",
			Severity: enums.NotificationSeverityInfo,
		})
	}

	if err := s.repo.ClearReports(ctx, id); err != nil {
		s.logg.Error(ctx, "posts.clear_reports_failed", err)
	}
	return nil
}

func copyRating(r *int) *int {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
