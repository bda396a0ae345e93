package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/wandermart-backend/internal/authz"
	"github.com/angelmondragon/wandermart-backend/internal/cart"
	"github.com/angelmondragon/wandermart-backend/internal/notifications"
	"github.com/angelmondragon/wandermart-backend/internal/products"
	"github.com/angelmondragon/wandermart-backend/internal/users"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/angelmondragon/wandermart-backend/pkg/validate"
)

type productLookup interface {
	FindByID(ctx context.Context, id string) (*products.Product, error)
}

type buyerLookup interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
}

type notifier interface {
	Deliver(ctx context.Context, userID string, msg notifications.Message)
}

type ServiceParams struct {
	Repo     *Repository
	Products productLookup
	Buyers   buyerLookup
	Guard    *authz.Guard
	Notifier notifier
	Config   config.OrdersConfig
	Logger   *logger.Logger
}

type Service struct {
	repo     *Repository
	products productLookup
	buyers   buyerLookup
	guard    *authz.Guard
	notifier notifier
	cfg      config.OrdersConfig
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	switch {
	case params.Repo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	case params.Products == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product lookup required")
	case params.Buyers == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "buyer lookup required")
	case params.Guard == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "guard required")
	case params.Notifier == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	cfg := params.Config
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "WM"
	}
	if cfg.IDMaxAttempts <= 0 {
		cfg.IDMaxAttempts = 10
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		repo:     params.Repo,
		products: params.Products,
		buyers:   params.Buyers,
		guard:    params.Guard,
		notifier: params.Notifier,
		cfg:      cfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Create places an order for the caller. Lines are re-read from the
// catalogue so prices and seller data cannot be forged by the client.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	actor, err := s.guard.Require(ctx, enums.UserRoleTraveler, enums.UserRoleMerchant, enums.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	lines, err := s.snapshot(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	total := cart.Total(lines)
	if req.Total != nil && !req.Total.Equal(total) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total does not match current prices").
			WithDetails(map[string]any{"expected": total.StringFixed(2), "submitted": req.Total.StringFixed(2)})
	}

	shipping, err := s.resolveShipping(ctx, actor.ID, req.Shipping)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order, err := s.repo.Create(ctx, Order{
		BuyerID:   actor.ID,
		Items:     lines,
		Total:     total,
		Status:    enums.OrderStatusPending,
		Shipping:  shipping,
		CreatedAt: now,
		UpdatedAt: now,
	}, func() (string, error) { return NewID(s.cfg.IDPrefix, now) }, s.cfg.IDMaxAttempts)
	if err != nil {
		return nil, err
	}

	for _, sellerID := range order.SellerIDs() {
		s.notifier.Deliver(ctx, sellerID, notifications.Message{
			Title:    "New Order Received",
			Body:     fmt.Sprintf("You have a new order (ID: %s) for $%s.", order.ID, order.Total.StringFixed(2)),
			Severity: enums.NotificationSeveritySuccess,
		})
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"order_id": order.ID, "buyer_id": actor.ID}), "orders.created")
	return order, nil
}

// snapshot merges duplicate lines and replaces every product with its
// current catalogue record.
func (s *Service) snapshot(ctx context.Context, items []cart.Item) ([]cart.Item, error) {
	lines := make([]cart.Item, 0, len(items))
	index := make(map[string]int)
	for _, item := range items {
		id := item.Product.ID
		if id == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order line is missing a product")
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "quantity for %s must be at least 1", id)
		}
		if i, ok := index[id]; ok {
			lines[i].Quantity += item.Quantity
			continue
		}
		p, err := s.products.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %s not found", id)
		}
		index[id] = len(lines)
		lines = append(lines, cart.Item{Product: *p, Quantity: item.Quantity})
	}
	for _, line := range lines {
		if line.Quantity > line.Product.Stock {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "only %d of %s left in stock", line.Product.Stock, line.Product.Name)
		}
	}
	return lines, nil
}

func (s *Service) resolveShipping(ctx context.Context, buyerID string, given *Shipping) (Shipping, error) {
	var shipping Shipping
	if given != nil {
		shipping = *given
	} else {
		buyer, err := s.buyers.FindByID(ctx, buyerID)
		if err != nil {
			return Shipping{}, err
		}
		if buyer != nil && buyer.Shipping != nil {
			shipping = Shipping{
				RecipientName: buyer.Shipping.RecipientName,
				Phone:         buyer.Shipping.Phone,
				Address:       buyer.Shipping.Address,
			}
		}
	}
	shipping.RecipientName = strings.TrimSpace(shipping.RecipientName)
	shipping.Phone = strings.TrimSpace(shipping.Phone)
	shipping.Address = strings.TrimSpace(shipping.Address)
	if err := validate.Struct(shipping); err != nil {
		return Shipping{}, err
	}
	return shipping, nil
}

// List returns the orders visible to the caller, newest first. Buyers see
// their purchases, merchants additionally see orders containing their
// products and admins see everything.
func (s *Service) List(ctx context.Context, filter Filter) ([]Order, error) {
	actor, err := s.guard.Require(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0)
	for i := len(all) - 1; i >= 0; i-- {
		o := all[i]
		if !visibleTo(actor, o) {
			continue
		}
		if filter.BuyerID != "" && o.BuyerID != filter.BuyerID {
			continue
		}
		if filter.SellerID != "" && !o.HasSeller(filter.SellerID) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	actor, err := s.guard.Require(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if !visibleTo(actor, *o) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to read this order")
	}
	return o, nil
}

// UpdateStatus moves an order along pending to shipped to delivered, or
// cancels it before delivery. Only sellers in the order and admins may do so.
func (s *Service) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus, trackingNumber string) (*Order, error) {
	actor, err := s.guard.Require(ctx, enums.UserRoleMerchant, enums.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", status)
	}
	trackingNumber = strings.TrimSpace(trackingNumber)

	_, updated, err := s.repo.Update(ctx, id, func(o *Order) error {
		if err := authz.Authorize(actor, authz.Resource{Kind: "order", OwnerIDs: o.SellerIDs()}, authz.ActionUpdate); err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(status) {
			return pkgerrors.Newf(pkgerrors.CodeStateConflict, "cannot move order from %s to %s", o.Status, status)
		}
		o.Status = status
		if trackingNumber != "" {
			o.TrackingNumber = trackingNumber
		}
		o.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Deliver(ctx, updated.BuyerID, notifications.Message{
		Title:    "Order Status Update",
		Body:     fmt.Sprintf("Your order #%s is now %s.", shortRef(updated.ID), updated.Status),
		Severity: enums.NotificationSeverityInfo,
	})
	return updated, nil
}

func visibleTo(actor *authz.Actor, o Order) bool {
	return actor.IsAdmin() || o.BuyerID == actor.ID || o.HasSeller(actor.ID)
}
