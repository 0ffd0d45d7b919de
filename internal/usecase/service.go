package usecase

import (
	"muse/internal/data/repository"
	"muse/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Movie  MovieService
	Genre  GenreService
	Review ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		User:   NewUserService(repo.User, log),
		Movie:  NewMovieService(repo, log),
		Genre:  NewGenreService(repo.Genre, log),
		Review: NewReviewService(repo, log),
	}
}

// ClientInfo describes where a session was opened from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}
