package response

import (
	"time"

	"muse/internal/data/entity"
)

// ReviewResponse is the public review shape.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewUpdateResponse struct {
	ID        int64     `json:"id"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminReviewResponse carries the owner and movie for moderation.
type AdminReviewResponse struct {
	ID         int64     `json:"id"`
	MovieID    int64     `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	Review     string    `json:"review"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Helper converters
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		Username:  review.Username,
		Review:    review.Text,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = ReviewToResponse(r)
	}
	return out
}

func ReviewToUpdateResponse(review *entity.Review) ReviewUpdateResponse {
	return ReviewUpdateResponse{
		ID:        review.ID,
		Review:    review.Text,
		Rating:    review.Rating,
		UpdatedAt: review.UpdatedAt,
	}
}

func ReviewToAdminResponse(review *entity.Review) AdminReviewResponse {
	return AdminReviewResponse{
		ID:         review.ID,
		MovieID:    review.MovieID,
		MovieTitle: review.MovieTitle,
		UserID:     review.UserID,
		Username:   review.Username,
		Review:     review.Text,
		Rating:     review.Rating,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}
