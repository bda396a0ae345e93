package attractions

import "context"

// Review is the slice of a post the aggregation needs.
type Review struct {
	AttractionID string
	Rating       *int
	Active       bool
}

// ReviewSource supplies every review on each read; aggregates are never
// cached. RemoveForAttraction drops the reviews of a deleted attraction.
type ReviewSource interface {
	Reviews(ctx context.Context) ([]Review, error)
	RemoveForAttraction(ctx context.Context, attractionID string) (int, error)
}

// Rating is the aggregate for one attraction.
type Rating struct {
	Count   int
	Average float64
}

// IsRatable reports whether enough reviews exist to show the average.
func (r Rating) IsRatable(min int) bool {
	return r.Count >= min
}

// Aggregate counts active reviews that carry a rating and averages them per
// attraction. Attractions without any are absent from the map; their zero
// Rating has Average 0.
func Aggregate(reviews []Review) map[string]Rating {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range reviews {
		if !r.Active || r.Rating == nil {
			continue
		}
		sums[r.AttractionID] += *r.Rating
		counts[r.AttractionID]++
	}
	out := make(map[string]Rating, len(counts))
	for id, n := range counts {
		out[id] = Rating{Count: n, Average: float64(sums[id]) / float64(n)}
	}
	return out
}
