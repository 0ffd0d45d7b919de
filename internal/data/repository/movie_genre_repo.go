package repository

import (
	"context"
	"fmt"
	"strings"

	"muse/internal/data/entity"
	"muse/pkg/database"

	"go.uber.org/zap"
)

type MovieGenreRepository interface {
	// Bridge table operations
	DeleteByMovieID(ctx context.Context, movieID int64) error
	CreateBatch(ctx context.Context, movieGenres []*entity.MovieGenre) error
}

type movieGenreRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieGenreRepository(db database.Querier, log *zap.Logger) MovieGenreRepository {
	return &movieGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_genre")),
	}
}

func (r *movieGenreRepository) DeleteByMovieID(ctx context.Context, movieID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID)
	if err != nil {
		r.log.Error("Failed to delete movie_genres by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return fmt.Errorf("failed to delete movie_genres: %w", err)
	}

	return nil
}

func (r *movieGenreRepository) CreateBatch(ctx context.Context, movieGenres []*entity.MovieGenre) error {
	if len(movieGenres) == 0 {
		return nil
	}

	var query strings.Builder
	query.WriteString(`INSERT INTO movie_genres (movie_id, genre_id) VALUES `)
	args := make([]any, 0, len(movieGenres)*2)

	for i, mg := range movieGenres {
		if i > 0 {
			query.WriteString(", ")
		}
		fmt.Fprintf(&query, "($%d, $%d)", i*2+1, i*2+2)
		args = append(args, mg.MovieID, mg.GenreID)
	}
	query.WriteString(` ON CONFLICT DO NOTHING`)

	_, err := r.db.Exec(ctx, query.String(), args...)
	if err != nil {
		r.log.Error("Failed to create batch movie_genres",
			zap.Error(err),
			zap.Int("count", len(movieGenres)),
		)
		return fmt.Errorf("failed to create batch movie_genres: %w", err)
	}

	return nil
}
