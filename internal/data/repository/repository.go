package repository

import (
	"context"
	"fmt"

	"muse/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Movie      MovieRepository
	Genre      GenreRepository
	MovieGenre MovieGenreRepository
	Review     ReviewRepository

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositorySet(db, log)
	repo.db = db
	repo.log = log
	return repo
}

func newRepositorySet(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(q, log),
		Session:    NewSessionRepository(q, log),
		Movie:      NewMovieRepository(q, log),
		Genre:      NewGenreRepository(q, log),
		MovieGenre: NewMovieGenreRepository(q, log),
		Review:     NewReviewRepository(q, log),
	}
}

// WithTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
// A Repository built without a database (tests) runs fn on itself.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newRepositorySet(tx, r.log)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Warn("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
