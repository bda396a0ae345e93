package products

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/wandermart-backend/internal/attractions"
	"github.com/angelmondragon/wandermart-backend/internal/authz"
	"github.com/angelmondragon/wandermart-backend/internal/users"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/validate"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type attractionLookup interface {
	FindByID(ctx context.Context, id string) (*attractions.Attraction, error)
	List(ctx context.Context) ([]attractions.Attraction, error)
}

type sellerLookup interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
}

type ServiceParams struct {
	Repo        *Repository
	Attractions attractionLookup
	Sellers     sellerLookup
	Guard       *authz.Guard
	Catalog     config.CatalogConfig
}

type Service struct {
	repo        *Repository
	attractions attractionLookup
	sellers     sellerLookup
	guard       *authz.Guard
	catalog     config.CatalogConfig
	now         func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	switch {
	case params.Repo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	case params.Attractions == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "attraction lookup required")
	case params.Sellers == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "seller lookup required")
	case params.Guard == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "guard required")
	}
	return &Service{
		repo:        params.Repo,
		attractions: params.Attractions,
		sellers:     params.Sellers,
		guard:       params.Guard,
		catalog:     params.Catalog,
		now:         time.Now,
	}, nil
}

// List returns products matching every non-empty filter field, in
// insertion order.
func (s *Service) List(ctx context.Context, filter Filter) ([]Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var inRegion map[string]bool
	if filter.hasRegion() {
		catalogue, err := s.attractions.List(ctx)
		if err != nil {
			return nil, err
		}
		inRegion = make(map[string]bool)
		for _, a := range catalogue {
			if a.InRegion(filter.Province, filter.City, filter.County) {
				inRegion[a.ID] = true
			}
		}
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]Product, 0)
	for _, p := range all {
		if filter.SellerID != "" && p.SellerID != filter.SellerID {
			continue
		}
		if filter.AttractionID != "" && p.AttractionID != filter.AttractionID {
			continue
		}
		if inRegion != nil && (p.AttractionID == "" || !inRegion[p.AttractionID]) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) &&
			!strings.Contains(strings.ToLower(p.AttractionName), query) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return p, nil
}

// Create lists a product for the calling merchant. Admins may list on
// behalf of an existing merchant.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	actor, err := s.guard.Require(ctx, enums.UserRoleMerchant, enums.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price is required")
	}
	if req.Stock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock is required")
	}
	if err := checkAmounts(req.Price, req.Stock); err != nil {
		return nil, err
	}

	sellerID, sellerName := actor.ID, actor.Name
	if actor.IsAdmin() && req.SellerID != "" && req.SellerID != actor.ID {
		seller, err := s.sellers.FindByID(ctx, req.SellerID)
		if err != nil {
			return nil, err
		}
		if seller == nil || seller.Role != enums.UserRoleMerchant {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
		}
		sellerID, sellerName = seller.ID, seller.Username
	}
	if sellerName == "" {
		sellerName = s.catalog.DefaultStoreName
	}

	attractionName, err := s.attractionName(ctx, req.AttractionID)
	if err != nil {
		return nil, err
	}

	images := append([]string{}, req.ImageURLs...)
	if len(images) == 0 {
		images = []string{s.catalog.DefaultProductImage}
	}

	p := Product{
		ID:             uuid.NewString(),
		SellerID:       sellerID,
		SellerName:     sellerName,
		AttractionID:   req.AttractionID,
		AttractionName: attractionName,
		Name:           req.Name,
		Description:    req.Description,
		Price:          *req.Price,
		Stock:          *req.Stock,
		ImageURLs:      images,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update edits a product owned by the caller, or any product for admins.
// Changing the attraction link recomputes the cached attraction name.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Product, error) {
	actor, err := s.guard.Require(ctx, enums.UserRoleMerchant, enums.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		req.Name = &trimmed
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := checkAmounts(req.Price, req.Stock); err != nil {
		return nil, err
	}

	var attractionID, attractionName string
	if req.AttractionID != nil {
		attractionID = strings.TrimSpace(*req.AttractionID)
		if attractionName, err = s.attractionName(ctx, attractionID); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, func(p *Product) error {
		if err := authz.Authorize(actor, authz.Resource{Kind: "product", OwnerIDs: []string{p.SellerID}}, authz.ActionUpdate); err != nil {
			return err
		}
		if req.AttractionID != nil {
			p.AttractionID = attractionID
			p.AttractionName = attractionName
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = strings.TrimSpace(*req.Description)
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
		}
		if req.ImageURLs != nil {
			p.ImageURLs = append([]string{}, req.ImageURLs...)
			if len(p.ImageURLs) == 0 {
				p.ImageURLs = []string{s.catalog.DefaultProductImage}
			}
		}
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	actor, err := s.guard.Require(ctx, enums.UserRoleMerchant, enums.UserRoleAdmin)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, func(p *Product) error {
		return authz.Authorize(actor, authz.Resource{Kind: "product", OwnerIDs: []string{p.SellerID}}, authz.ActionDelete)
	})
}

func (s *Service) attractionName(ctx context.Context, attractionID string) (string, error) {
	if attractionID == "" {
		return "", nil
	}
	a, err := s.attractions.FindByID(ctx, attractionID)
	if err != nil {
		return "", err
	}
	if a == nil {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "attraction not found")
	}
	return a.Title, nil
}

func checkAmounts(price *decimal.Decimal, stock *int) error {
	if price != nil && price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if stock != nil && *stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	return nil
}
