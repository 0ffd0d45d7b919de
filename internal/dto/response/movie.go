package response

import (
	"time"

	"muse/internal/data/entity"
)

const DateLayout = "2006-01-02"

type MovieResponse struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Director      string          `json:"director"`
	ReleaseYear   string          `json:"release_year"`
	Description   string          `json:"description"`
	Genres        []GenreResponse `json:"genres"`
	AverageRating float64         `json:"average_rating"`
	TotalReviews  int64           `json:"total_reviews"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovieDetailResponse backs the detail page: the movie, its reviews
// and, for a signed-in viewer, their own review.
type MovieDetailResponse struct {
	MovieResponse
	Reviews    []ReviewResponse `json:"reviews"`
	UserReview *ReviewResponse  `json:"user_review,omitempty"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie, genres []*entity.Genre) MovieResponse {
	return MovieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		Director:      movie.Director,
		ReleaseYear:   movie.ReleaseYear.Format(DateLayout),
		Description:   movie.Description,
		Genres:        GenresToResponse(genres),
		AverageRating: movie.AverageRating,
		TotalReviews:  movie.TotalReviews,
		CreatedAt:     movie.CreatedAt,
	}
}
