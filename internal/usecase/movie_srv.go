package usecase

import (
	"context"
	"fmt"
	"time"

	"muse/internal/data/entity"
	"muse/internal/data/repository"
	"muse/internal/dto/request"
	"muse/internal/dto/response"
	"muse/pkg/apperror"
	"muse/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	ListMovies(ctx context.Context, filter request.MovieFilter) ([]response.MovieResponse, error)
	GetMovieDetail(ctx context.Context, movieID int64, viewer *utils.Principal) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID int64) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListMovies(ctx context.Context, filter request.MovieFilter) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx, repository.MovieFilter{
		Search: filter.Search,
		Genre:  filter.Genre,
	})
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.String("search", filter.Search),
			zap.String("genre", filter.Genre),
		)
		return nil, apperror.Internal(err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		// Get associated genres
		genres, err := s.repo.Genre.FindByMovieID(ctx, movie.ID)
		if err != nil {
			s.log.Warn("Failed to get genres for movie",
				zap.Error(err),
				zap.Int64("movie_id", movie.ID),
			)
		}
		movieResponses[i] = response.MovieToResponse(movie, genres)
	}

	s.log.Debug("Movies retrieved", zap.Int("count", len(movies)))
	return movieResponses, nil
}

func (s *movieService) GetMovieDetail(ctx context.Context, movieID int64, viewer *utils.Principal) (*response.MovieDetailResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie by ID", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, apperror.Internal(err)
	}
	if movie == nil {
		return nil, apperror.NotFound("movie", movieID)
	}

	genres, err := s.repo.Genre.FindByMovieID(ctx, movie.ID)
	if err != nil {
		s.log.Warn("Failed to get genres for movie", zap.Error(err), zap.Int64("movie_id", movieID))
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, movie.ID)
	if err != nil {
		s.log.Error("Failed to get reviews for movie", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, apperror.Internal(err)
	}

	// Reviews are already loaded, so the rating reflects exactly what is shown
	movie.ApplyReviewStats(reviews)

	detail := &response.MovieDetailResponse{
		MovieResponse: response.MovieToResponse(movie, genres),
		Reviews:       response.ReviewsToResponse(reviews),
	}

	if viewer != nil {
		for _, review := range reviews {
			if review.OwnedBy(viewer.UserID) {
				own := response.ReviewToResponse(review)
				detail.UserReview = &own
				break
			}
		}
	}

	return detail, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Validation failed", errs)
	}

	releaseYear, err := time.Parse(response.DateLayout, req.ReleaseYear)
	if err != nil {
		return nil, apperror.Validation("Validation failed", map[string]string{
			"release_year": "Enter a valid date",
		})
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Director:    req.Director,
		ReleaseYear: releaseYear,
		Description: req.Description,
	}

	// Movie dan genre links dalam satu transaksi
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := checkGenresExist(ctx, tx, req.GenreIDs); err != nil {
			return err
		}
		if err := tx.Movie.Create(ctx, movie); err != nil {
			return err
		}
		return tx.MovieGenre.CreateBatch(ctx, movieGenres(movie.ID, req.GenreIDs))
	})
	if err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		return nil, err
	}

	s.log.Info("Movie created", zap.Int64("movie_id", movie.ID), zap.String("title", movie.Title))
	return s.loadMovie(ctx, movie.ID)
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Validation failed", errs)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if movie == nil {
		return nil, apperror.NotFound("movie", movieID)
	}

	// Update fields jika ada
	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.ReleaseYear != nil {
		releaseYear, err := time.Parse(response.DateLayout, *req.ReleaseYear)
		if err != nil {
			return nil, apperror.Validation("Validation failed", map[string]string{
				"release_year": "Enter a valid date",
			})
		}
		movie.ReleaseYear = releaseYear
	}
	movie.UpdatedAt = time.Now()

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Movie.Update(ctx, movie); err != nil {
			return err
		}
		if req.GenreIDs == nil {
			return nil
		}
		if err := checkGenresExist(ctx, tx, *req.GenreIDs); err != nil {
			return err
		}
		if err := tx.MovieGenre.DeleteByMovieID(ctx, movieID); err != nil {
			return err
		}
		return tx.MovieGenre.CreateBatch(ctx, movieGenres(movieID, *req.GenreIDs))
	})
	if err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, err
	}

	s.log.Info("Movie updated", zap.Int64("movie_id", movieID))
	return s.loadMovie(ctx, movieID)
}

// DeleteMovie removes the movie together with its reviews.
func (s *movieService) DeleteMovie(ctx context.Context, movieID int64) error {
	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		s.log.Warn("Failed to delete movie", zap.Error(err), zap.Int64("movie_id", movieID))
		return err
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", movieID))
	return nil
}

func (s *movieService) loadMovie(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if movie == nil {
		return nil, apperror.NotFound("movie", movieID)
	}

	genres, err := s.repo.Genre.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func checkGenresExist(ctx context.Context, repo *repository.Repository, ids []int64) error {
	for _, id := range ids {
		genre, err := repo.Genre.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("check genre %d: %w", id, err)
		}
		if genre == nil {
			return apperror.NotFound("genre", id)
		}
	}
	return nil
}

func movieGenres(movieID int64, genreIDs []int64) []*entity.MovieGenre {
	links := make([]*entity.MovieGenre, len(genreIDs))
	for i, id := range genreIDs {
		links[i] = &entity.MovieGenre{MovieID: movieID, GenreID: id}
	}
	return links
}
