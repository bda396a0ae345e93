package orders

import (
	"time"

	"github.com/angelmondragon/wandermart-backend/internal/cart"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Shipping is the delivery contact captured at checkout.
type Shipping struct {
	RecipientName string `json:"recipientName" validate:"required,max=120"`
	Phone         string `json:"phone" validate:"required,max=40"`
	Address       string `json:"address" validate:"required,max=500"`
}

// Order is a completed checkout. Items are snapshots taken at purchase
// time and Total is their sum at that moment.
type Order struct {
	ID             string            `json:"id"`
	BuyerID        string            `json:"userId"`
	Items          []cart.Item       `json:"items"`
	Total          decimal.Decimal   `json:"total"`
	Status         enums.OrderStatus `json:"status"`
	TrackingNumber string            `json:"trackingNumber,omitempty"`
	Shipping       Shipping          `json:"shipping"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// SellerIDs lists each seller in the order once, in line order.
func (o Order) SellerIDs() []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		id := item.Product.SellerID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// HasSeller reports whether sellerID has an item in the order.
func (o Order) HasSeller(sellerID string) bool {
	for _, item := range o.Items {
		if item.Product.SellerID == sellerID {
			return true
		}
	}
	return false
}

// CreateRequest is a checkout. Only product ids and quantities of Items are
// trusted; Total, when given, must match the recomputed sum. Shipping
// defaults to the buyer's saved profile.
type CreateRequest struct {
	Items    []cart.Item      `json:"items" validate:"required,min=1,max=100"`
	Total    *decimal.Decimal `json:"total,omitempty"`
	Shipping *Shipping        `json:"shipping,omitempty"`
}

// Filter narrows List within what the caller may see.
type Filter struct {
	BuyerID  string
	SellerID string
}
