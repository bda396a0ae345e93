package attractions

import (
	"strings"
	"time"

	"github.com/angelmondragon/wandermart-backend/pkg/enums"
)

// Attraction is the stored catalogue entry.
type Attraction struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Address       string                 `json:"address"`
	Province      string                 `json:"province"`
	City          string                 `json:"city"`
	County        string                 `json:"county"`
	Region        string                 `json:"region"`
	Tags          []string               `json:"tags"`
	ImageURLs     []string               `json:"imageUrls"`
	OpenHours     string                 `json:"openHours,omitempty"`
	DrivingTips   string                 `json:"drivingTips,omitempty"`
	TravelerTips  string                 `json:"travelerTips,omitempty"`
	Status        enums.AttractionStatus `json:"status"`
	SubmittedBy   string                 `json:"submittedBy,omitempty"`
	SubmittedByID string                 `json:"submittedById,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// CoverImage is the first image, or empty when there are none.
func (a Attraction) CoverImage() string {
	if len(a.ImageURLs) == 0 {
		return ""
	}
	return a.ImageURLs[0]
}

// HasTag matches tags exactly.
func (a Attraction) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// InRegion reports whether every non-empty location part matches.
func (a Attraction) InRegion(province, city, county string) bool {
	if province != "" && a.Province != province {
		return false
	}
	if city != "" && a.City != city {
		return false
	}
	if county != "" && a.County != county {
		return false
	}
	return true
}

// View is an attraction with its rating aggregate computed at read time.
type View struct {
	Attraction
	CoverImageURL string  `json:"imageUrl"`
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
	Ratable       bool    `json:"ratable"`
}

// Filter selects attractions. All non-empty fields must match. Status is
// honoured for admins only; everyone else sees active attractions.
type Filter struct {
	Province string
	City     string
	County   string
	Tag      string
	Query    string
	Status   enums.AttractionStatus
}

type CreateRequest struct {
	Title        string                 `json:"title" validate:"required,max=200"`
	Description  string                 `json:"description" validate:"max=5000"`
	Address      string                 `json:"address" validate:"max=500"`
	Province     string                 `json:"province" validate:"required,max=100"`
	City         string                 `json:"city" validate:"required,max=100"`
	County       string                 `json:"county" validate:"required,max=100"`
	Tags         []string               `json:"tags" validate:"max=20,dive,required,max=40"`
	ImageURLs    []string               `json:"imageUrls" validate:"max=20,dive,required"`
	OpenHours    string                 `json:"openHours,omitempty" validate:"max=200"`
	DrivingTips  string                 `json:"drivingTips,omitempty" validate:"max=2000"`
	TravelerTips string                 `json:"travelerTips,omitempty" validate:"max=2000"`
	Status       enums.AttractionStatus `json:"status,omitempty"`
}

// UpdateRequest is a partial update; nil fields are left alone.
type UpdateRequest struct {
	Title        *string                 `json:"title,omitempty" validate:"omitempty,max=200"`
	Description  *string                 `json:"description,omitempty" validate:"omitempty,max=5000"`
	Address      *string                 `json:"address,omitempty" validate:"omitempty,max=500"`
	Province     *string                 `json:"province,omitempty" validate:"omitempty,max=100"`
	City         *string                 `json:"city,omitempty" validate:"omitempty,max=100"`
	County       *string                 `json:"county,omitempty" validate:"omitempty,max=100"`
	Tags         []string                `json:"tags,omitempty" validate:"omitempty,max=20,dive,required,max=40"`
	ImageURLs    []string                `json:"imageUrls,omitempty" validate:"omitempty,max=20,dive,required"`
	OpenHours    *string                 `json:"openHours,omitempty" validate:"omitempty,max=200"`
	DrivingTips  *string                 `json:"drivingTips,omitempty" validate:"omitempty,max=2000"`
	TravelerTips *string                 `json:"travelerTips,omitempty" validate:"omitempty,max=2000"`
	Status       *enums.AttractionStatus `json:"status,omitempty"`
}

// DeriveRegion joins the non-empty location parts with spaces.
func DeriveRegion(province, city, county string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{province, city, county} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
