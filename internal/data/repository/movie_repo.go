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

// MovieFilter narrows the movie listing. Empty fields are ignored.
type MovieFilter struct {
	Search string // case-insensitive substring of title, director or description
	Genre  string // exact genre name
}

type MovieRepository interface {
	// CRUD Movie
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error)
}

type movieRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieRepository(db database.Querier, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

// Aggregates are computed from reviews on every read, never stored.
const movieSelect = `
	SELECT m.id, m.title, m.director, m.release_year, m.description,
	       m.created_at, m.updated_at,
	       COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
	       COUNT(r.id) AS total_reviews
	FROM movies m
	LEFT JOIN reviews r ON r.movie_id = m.id
`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Director,
		&movie.ReleaseYear,
		&movie.Description,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.AverageRating,
		&movie.TotalReviews,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// escapeLike quotes the LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, director, release_year, description,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Director,
		movie.ReleaseYear,
		movie.Description,
		movie.CreatedAt,
		movie.UpdatedAt,
	).Scan(&movie.ID)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := movieSelect + ` WHERE m.id = $1 GROUP BY m.id`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error) {
	// Build query dengan optional filter
	var queryBuilder strings.Builder
	queryBuilder.WriteString(movieSelect)
	queryBuilder.WriteString(` WHERE TRUE`)

	args := []any{}
	argCount := 1

	if search := strings.TrimSpace(filter.Search); search != "" {
		fmt.Fprintf(&queryBuilder,
			" AND (m.title ILIKE $%[1]d OR m.director ILIKE $%[1]d OR m.description ILIKE $%[1]d)",
			argCount)
		args = append(args, "%"+escapeLike(search)+"%")
		argCount++
	}

	if filter.Genre != "" {
		fmt.Fprintf(&queryBuilder, ` AND EXISTS (
			SELECT 1 FROM movie_genres mg
			INNER JOIN genres g ON g.id = mg.genre_id
			WHERE mg.movie_id = m.id AND g.name = $%d)`, argCount)
		args = append(args, filter.Genre)
	}

	queryBuilder.WriteString(` GROUP BY m.id ORDER BY m.release_year DESC, m.title ASC`)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.String("search", filter.Search),
			zap.String("genre", filter.Genre),
		)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, director = $2, release_year = $3, description = $4,
		    updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(ctx, query,
		movie.Title,
		movie.Director,
		movie.ReleaseYear,
		movie.Description,
		movie.UpdatedAt,
		movie.ID,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("movie", movie.ID)
	}

	return nil
}

// Delete removes the movie. Reviews and genre links cascade.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("movie", id)
	}

	return nil
}
