package posts

import (
	"time"

	"github.com/angelmondragon/wandermart-backend/pkg/enums"
)

// Post is a traveler review of an attraction.
type Post struct {
	ID           string           `json:"id"`
	AttractionID string           `json:"attractionId"`
	AuthorID     string           `json:"userId"`
	AuthorName   string           `json:"username"`
	Content      string           `json:"content"`
	Rating       *int             `json:"rating,omitempty"`
	ImageURLs    []string         `json:"imageUrls"`
	Likes        int              `json:"likes"`
	Status       enums.PostStatus `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// Reported is a post waiting for moderation and who reported it.
type Reported struct {
	Post
	Reporters []string `json:"reporters"`
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	AttractionID string
	AuthorID     string
}

type CreateRequest struct {
	AttractionID string   `json:"attractionId" validate:"required"`
	Content      string   `json:"content" validate:"required,max=5000"`
	Rating       *int     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	ImageURLs    []string `json:"imageUrls,omitempty" validate:"max=9,dive,required"`
}

// UpdateRequest edits a post. ClearRating removes the star rating.
type UpdateRequest struct {
	Content     *string  `json:"content,omitempty" validate:"omitempty,max=5000"`
	Rating      *int     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	ClearRating bool     `json:"clearRating,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty" validate:"omitempty,max=9,dive,required"`
}
