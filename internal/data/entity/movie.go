package entity

import (
	"time"
)

type Movie struct {
	Base
	Title       string    `db:"title"`
	Director    string    `db:"director"`
	ReleaseYear time.Time `db:"release_year"`
	Description string    `db:"description"`

	// Derived from reviews at query time
	AverageRating float64 `db:"average_rating"`
	TotalReviews  int64   `db:"total_reviews"`
}

// AverageRating returns the arithmetic mean of ratings, and 0 for none.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// ApplyReviewStats sets the derived fields from loaded reviews.
func (m *Movie) ApplyReviewStats(reviews []*Review) {
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	m.AverageRating = AverageRating(ratings)
	m.TotalReviews = int64(len(reviews))
}
