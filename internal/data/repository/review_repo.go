package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"muse/internal/data/entity"
	"muse/pkg/apperror"
	"muse/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DuplicateReviewMessage is reported when a user reviews the same movie twice.
const DuplicateReviewMessage = "You have already reviewed this movie"

// ReviewFilter narrows the moderation listing.
type ReviewFilter struct {
	Rating *int
	Search string // matches review text, username or movie title
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id int64) (*entity.Review, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Review, error)
	FindByUserAndMovie(ctx context.Context, userID, movieID int64) (*entity.Review, error)
	FindAll(ctx context.Context, filter ReviewFilter) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id int64) error
}

type reviewRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReviewRepository(db database.Querier, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewSelect = `
	SELECT r.id, r.movie_id, r.user_id, r.review, r.rating,
	       r.created_at, r.updated_at, u.username, m.title
	FROM reviews r
	INNER JOIN users u ON u.id = r.user_id
	INNER JOIN movies m ON m.id = r.movie_id
`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.MovieID,
		&review.UserID,
		&review.Text,
		&review.Rating,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.Username,
		&review.MovieTitle,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Create inserts the review. The (movie_id, user_id) unique constraint is
// the final word on duplicates, so a lost race still reads as a conflict.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (movie_id, user_id, review, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		review.MovieID,
		review.UserID,
		review.Text,
		review.Rating,
		review.CreatedAt,
		review.UpdatedAt,
	).Scan(&review.ID)

	if database.IsUniqueViolation(err) {
		return apperror.Conflict(DuplicateReviewMessage)
	}
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", review.UserID),
			zap.Int64("movie_id", review.MovieID),
		)
		return fmt.Errorf("create review for movie %d by user %d: %w",
			review.MovieID, review.UserID, err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	review, err := scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return nil, fmt.Errorf("find review by id %d: %w", id, err)
	}

	return review, nil
}

func (r *reviewRepository) FindByUserAndMovie(ctx context.Context, userID, movieID int64) (*entity.Review, error) {
	query := reviewSelect + ` WHERE r.user_id = $1 AND r.movie_id = $2`

	review, err := scanReview(r.db.QueryRow(ctx, query, userID, movieID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and movie",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find review for user %d movie %d: %w", userID, movieID, err)
	}

	return review, nil
}

// FindByMovieID returns a movie's reviews, newest first.
func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Review, error) {
	query := reviewSelect + ` WHERE r.movie_id = $1 ORDER BY r.created_at DESC, r.id DESC`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find reviews for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *reviewRepository) FindAll(ctx context.Context, filter ReviewFilter) ([]*entity.Review, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(reviewSelect)
	queryBuilder.WriteString(` WHERE TRUE`)

	args := []any{}
	argCount := 1

	if filter.Rating != nil {
		fmt.Fprintf(&queryBuilder, " AND r.rating = $%d", argCount)
		args = append(args, *filter.Rating)
		argCount++
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		fmt.Fprintf(&queryBuilder,
			" AND (r.review ILIKE $%[1]d OR u.username ILIKE $%[1]d OR m.title ILIKE $%[1]d)",
			argCount)
		args = append(args, "%"+escapeLike(search)+"%")
	}

	queryBuilder.WriteString(` ORDER BY r.created_at DESC, r.id DESC`)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find reviews", zap.Error(err))
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Update writes text and rating and refreshes updated_at.
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET review = $1, rating = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query,
		review.Text,
		review.Rating,
		review.UpdatedAt,
		review.ID,
	)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
		)
		return fmt.Errorf("update review %d: %w", review.ID, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("review", review.ID)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("review", id)
	}

	return nil
}

func (r *reviewRepository) collect(rows pgx.Rows) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
