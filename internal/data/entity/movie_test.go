package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no reviews", nil, 0},
		{"empty slice", []int{}, 0},
		{"single", []int{5}, 5},
		{"mean", []int{5, 3}, 4},
		{"fractional", []int{1, 2, 2}, 5.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AverageRating(tt.ratings), 1e-9)
		})
	}
}

func TestMovie_ApplyReviewStats(t *testing.T) {
	m := &Movie{Title: "Inception"}
	m.ApplyReviewStats(nil)
	assert.Equal(t, 0.0, m.AverageRating)
	assert.Equal(t, int64(0), m.TotalReviews)

	m.ApplyReviewStats([]*Review{{Rating: 5}, {Rating: 2}})
	assert.Equal(t, 3.5, m.AverageRating)
	assert.Equal(t, int64(2), m.TotalReviews)
}

func TestReview_OwnedBy(t *testing.T) {
	r := &Review{UserID: 7}
	assert.True(t, r.OwnedBy(7))
	assert.False(t, r.OwnedBy(8))

	var missing *Review
	assert.False(t, missing.OwnedBy(7))
}
