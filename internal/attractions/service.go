package attractions

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/angelmondragon/wandermart-backend/internal/authz"
	"github.com/angelmondragon/wandermart-backend/internal/notifications"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/angelmondragon/wandermart-backend/pkg/validate"
	"github.com/google/uuid"
)

// ProductLinks keeps the attraction name cached on products in step.
type ProductLinks interface {
	SyncAttractionTitle(ctx context.Context, attractionID, title string) error
	UnlinkAttraction(ctx context.Context, attractionID string) error
}

type notifier interface {
	Deliver(ctx context.Context, userID string, msg notifications.Message)
	DeliverAdmins(ctx context.Context, msg notifications.Message)
}

type ServiceParams struct {
	Repo     *Repository
	Reviews  ReviewSource
	Products ProductLinks
	Guard    *authz.Guard
	Notifier notifier
	Catalog  config.CatalogConfig
	Logger   *logger.Logger
}

type Service struct {
	repo     *Repository
	reviews  ReviewSource
	products ProductLinks
	guard    *authz.Guard
	notifier notifier
	catalog  config.CatalogConfig
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	switch {
	case params.Repo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "attractions repository required")
	case params.Reviews == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "review source required")
	case params.Products == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product links required")
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
		repo:     params.Repo,
		reviews:  params.Reviews,
		products: params.Products,
		guard:    params.Guard,
		notifier: params.Notifier,
		catalog:  params.Catalog,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// List returns matching attractions ranked by average rating, then review
// count, then insertion order.
func (s *Service) List(ctx context.Context, filter Filter) ([]View, error) {
	actor, err := s.guard.Optional(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]View, 0, len(all))
	for _, a := range all {
		if actor.IsAdmin() {
			if filter.Status != "" && a.Status != filter.Status {
				continue
			}
		} else if a.Status != enums.AttractionStatusActive {
			continue
		}
		if !a.InRegion(filter.Province, filter.City, filter.County) {
			continue
		}
		if filter.Tag != "" && !a.HasTag(filter.Tag) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(a.Title), query) &&
			!strings.Contains(strings.ToLower(a.Description), query) {
			continue
		}
		out = append(out, s.view(a, ratings))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		return out[i].ReviewCount > out[j].ReviewCount
	})
	return out, nil
}

// ListPending is the admin review queue, in submission order.
func (s *Service) ListPending(ctx context.Context) ([]View, error) {
	if _, err := s.guard.Require(ctx, enums.UserRoleAdmin); err != nil {
		return nil, err
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0)
	for _, a := range all {
		if a.Status == enums.AttractionStatusPending {
			out = append(out, s.view(a, ratings))
		}
	}
	return out, nil
}

// Get returns an attraction the caller may see. Hidden ones are reported
// as missing.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	actor, err := s.guard.Optional(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || !visibleTo(actor, a) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attraction not found")
	}
	ratings, err := s.ratings(ctx)
	if err != nil {
		return nil, err
	}
	v := s.view(*a, ratings)
	return &v, nil
}

// Create records a submission. Only admins can publish directly; everybody
// else submits for review and the admins are told.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	actor, err := s.guard.Require(ctx)
	if err != nil {
		return nil, err
	}
	trimCreate(&req)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	status := enums.AttractionStatusPending
	if actor.IsAdmin() {
		status = enums.AttractionStatusActive
		if req.Status != "" {
			if req.Status != enums.AttractionStatusActive && req.Status != enums.AttractionStatusPending {
				return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "status must be active or pending, got %q", req.Status)
			}
			status = req.Status
		}
	}

	images := append([]string(nil), req.ImageURLs...)
	if len(images) == 0 {
		images = []string{s.catalog.DefaultAttractionImage}
	}

	a := Attraction{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		Province:      req.Province,
		City:          req.City,
		County:        req.County,
		Region:        DeriveRegion(req.Province, req.City, req.County),
		Tags:          nonNil(req.Tags),
		ImageURLs:     images,
		OpenHours:     req.OpenHours,
		DrivingTips:   req.DrivingTips,
		TravelerTips:  req.TravelerTips,
		Status:        status,
		SubmittedBy:   actor.Name,
		SubmittedByID: actor.ID,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		s.notifier.DeliverAdmins(ctx, notifications.Message{
			Title:    "New Attraction Submission",
			Body:     fmt.Sprintf("%s submitted %q for review.", actor.Name, a.Title),
			Severity: enums.NotificationSeverityInfo,
		})
	}

	v := s.view(a, nil)
	return &v, nil
}

// Update is admin-only. A status change notifies the submitter; a title
// change is pushed to linked products.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*View, error) {
	if _, err := s.guard.Require(ctx, enums.UserRoleAdmin); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid attraction status %q", *req.Status)
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}

	before, after, err := s.repo.Update(ctx, id, func(a *Attraction) error {
		applyUpdate(a, req)
		if a.Province == "" || a.City == "" || a.County == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "province, city and county are required")
		}
		if len(a.ImageURLs) == 0 {
			a.ImageURLs = []string{s.catalog.DefaultAttractionImage}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithField(ctx, "attraction_id", id)
	if before.Status != after.Status && after.SubmittedByID != "" {
		s.notifier.Deliver(ctx, after.SubmittedByID, notifications.Message{
			Title:    "Attraction Status Update",
			Body:     fmt.Sprintf("Your attraction %q has been %s.", after.Title, after.Status),
			Severity: enums.SeverityFor(after.Status == enums.AttractionStatusActive),
		})
	}
	if before.Title != after.Title {
		if err := s.products.SyncAttractionTitle(ctx, id, after.Title); err != nil {
			s.logg.Error(ctx, "attractions.sync_title_failed", err)
		}
	}

	ratings, err := s.ratings(ctx)
	if err != nil {
		return nil, err
	}
	v := s.view(*after, ratings)
	return &v, nil
}

// Delete is admin-only. The submitter is told, linked products lose their
// link and reviews of the attraction go with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.guard.Require(ctx, enums.UserRoleAdmin); err != nil {
		return err
	}
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	ctx = s.logg.WithField(ctx, "attraction_id", id)
	if removed.SubmittedByID != "" {
		s.notifier.Deliver(ctx, removed.SubmittedByID, notifications.Message{
			Title:    "Attraction Rejected",
			Body:     fmt.Sprintf("Your attraction %q was rejected and removed.", removed.Title),
			Severity: enums.NotificationSeverityError,
		})
	}
	if err := s.products.UnlinkAttraction(ctx, id); err != nil {
		s.logg.Error(ctx, "attractions.unlink_products_failed", err)
	}
	if n, err := s.reviews.RemoveForAttraction(ctx, id); err != nil {
		s.logg.Error(ctx, "attractions.remove_reviews_failed", err)
	} else if n > 0 {
		s.logg.Info(s.logg.WithField(ctx, "removed_reviews", n), "attractions.reviews_removed")
	}
	return nil
}

func (s *Service) ratings(ctx context.Context) (map[string]Rating, error) {
	reviews, err := s.reviews.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(reviews), nil
}

func (s *Service) view(a Attraction, ratings map[string]Rating) View {
	r := ratings[a.ID]
	return View{
		Attraction:    a,
		CoverImageURL: a.CoverImage(),
		ReviewCount:   r.Count,
		AverageRating: r.Average,
		Ratable:       r.IsRatable(s.catalog.MinReviewsForRating),
	}
}

func visibleTo(actor *authz.Actor, a *Attraction) bool {
	if a.Status == enums.AttractionStatusActive || actor.IsAdmin() {
		return true
	}
	return actor != nil && a.Status == enums.AttractionStatusPending && a.SubmittedByID == actor.ID
}

func applyUpdate(a *Attraction, req UpdateRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&a.Title, req.Title)
	set(&a.Description, req.Description)
	set(&a.Address, req.Address)
	set(&a.Province, req.Province)
	set(&a.City, req.City)
	set(&a.County, req.County)
	set(&a.OpenHours, req.OpenHours)
	set(&a.DrivingTips, req.DrivingTips)
	set(&a.TravelerTips, req.TravelerTips)
	if req.Tags != nil {
		a.Tags = append([]string(nil), req.Tags...)
	}
	if req.ImageURLs != nil {
		a.ImageURLs = append([]string(nil), req.ImageURLs...)
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
	if req.Province != nil || req.City != nil || req.County != nil {
		a.Region = DeriveRegion(a.Province, a.City, a.County)
	}
}

func trimCreate(req *CreateRequest) {
	for _, f := range []*string{&req.Title, &req.Description, &req.Address, &req.Province, &req.City, &req.County} {
		*f = strings.TrimSpace(*f)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}
