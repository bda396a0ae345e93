package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a merchant listing, optionally linked to an attraction.
type Product struct {
	ID             string          `json:"id"`
	SellerID       string          `json:"merchantId"`
	SellerName     string          `json:"merchantName"`
	AttractionID   string          `json:"attractionId,omitempty"`
	AttractionName string          `json:"attractionName,omitempty"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	ImageURLs      []string        `json:"imageUrls"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CoverImage is the first image.
func (p Product) CoverImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}

// Filter narrows List. Region fields select products linked to attractions
// in that region; Query matches name, description or attraction name.
type Filter struct {
	SellerID     string
	AttractionID string
	Query        string
	Province     string
	City         string
	County       string
}

func (f Filter) hasRegion() bool {
	return f.Province != "" || f.City != "" || f.County != ""
}

// CreateRequest creates a listing. SellerID is honoured for admins only.
type CreateRequest struct {
	SellerID     string           `json:"merchantId,omitempty"`
	AttractionID string           `json:"attractionId,omitempty"`
	Name         string           `json:"name" validate:"required,max=200"`
	Description  string           `json:"description" validate:"max=5000"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int             `json:"stock"`
	ImageURLs    []string         `json:"imageUrls,omitempty" validate:"max=10,dive,required"`
}

// UpdateRequest is partial. An empty AttractionID removes the link.
type UpdateRequest struct {
	AttractionID *string          `json:"attractionId,omitempty"`
	Name         *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Stock        *int             `json:"stock,omitempty"`
	ImageURLs    []string         `json:"imageUrls,omitempty" validate:"omitempty,max=10,dive,required"`
}
