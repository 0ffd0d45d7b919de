package repository

import (
	"context"
	"errors"
	"fmt"

	"muse/internal/data/entity"
	"muse/pkg/apperror"
	"muse/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindByID(ctx context.Context, id int64) (*entity.Genre, error)
	FindAll(ctx context.Context) ([]*entity.Genre, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Genre, error)
	Delete(ctx context.Context, id int64) error
}

type genreRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewGenreRepository(db database.Querier, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `INSERT INTO genres (name, created_at) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRow(ctx, query, genre.Name, genre.CreatedAt).Scan(&genre.ID)
	if database.IsUniqueViolation(err) {
		return apperror.Conflict(fmt.Sprintf("Genre %q already exists", genre.Name))
	}
	if err != nil {
		r.log.Error("Failed to create genre",
			zap.Error(err),
			zap.String("name", genre.Name),
		)
		return fmt.Errorf("create genre %s: %w", genre.Name, err)
	}

	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	query := `SELECT id, name, created_at FROM genres WHERE id = $1`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, id).Scan(
		&genre.ID,
		&genre.Name,
		&genre.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre by ID",
			zap.Error(err),
			zap.Int64("genre_id", id),
		)
		return nil, fmt.Errorf("find genre by id: %w", err)
	}

	return &genre, nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM genres ORDER BY name`)
	if err != nil {
		r.log.Error("Failed to find genres", zap.Error(err))
		return nil, fmt.Errorf("find genres: %w", err)
	}
	defer rows.Close()

	return r.scanGenres(rows)
}

func (r *genreRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.created_at
		FROM genres g
		INNER JOIN movie_genres mg ON g.id = mg.genre_id
		WHERE mg.movie_id = $1
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find genres by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find genres by movie id: %w", err)
	}
	defer rows.Close()

	return r.scanGenres(rows)
}

// Delete removes the genre and, by cascade, its movie links.
func (r *genreRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete genre",
			zap.Error(err),
			zap.Int64("genre_id", id),
		)
		return fmt.Errorf("delete genre %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("genre", id)
	}

	return nil
}

func (r *genreRepository) scanGenres(rows pgx.Rows) ([]*entity.Genre, error) {
	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}
