package usecase

import (
	"context"
	"strings"
	"time"

	"muse/internal/data/entity"
	"muse/internal/data/repository"
	"muse/internal/dto/request"
	"muse/internal/dto/response"
	"muse/pkg/apperror"
	"muse/pkg/utils"

	"go.uber.org/zap"
)

type GenreService interface {
	ListGenres(ctx context.Context) ([]response.GenreResponse, error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, genreID int64) error
}

type genreService struct {
	genreRepo repository.GenreRepository
	log       *zap.Logger
}

func NewGenreService(genreRepo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		genreRepo: genreRepo,
		log:       log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) ListGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.genreRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list genres", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *genreService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("Validation failed", errs)
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{CreatedAt: time.Now()},
		Name:       req.Name,
	}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		return nil, err
	}

	s.log.Info("Genre created", zap.Int64("genre_id", genre.ID), zap.String("name", genre.Name))
	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, genreID int64) error {
	if err := s.genreRepo.Delete(ctx, genreID); err != nil {
		return err
	}
	s.log.Info("Genre deleted", zap.Int64("genre_id", genreID))
	return nil
}
