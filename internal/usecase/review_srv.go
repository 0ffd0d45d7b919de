package usecase

import (
	"context"
	"time"

	"muse/internal/data/entity"
	"muse/internal/data/repository"
	"muse/internal/dto/request"
	"muse/internal/dto/response"
	"muse/pkg/apperror"
	"muse/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	DefaultRating           = 5
	PermissionDeniedMessage = "Permission denied"
)

var reviewWrites = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "muse_review_writes_total",
		Help: "Review state transitions by action and outcome.",
	},
	[]string{"action", "outcome"},
)

type ReviewService interface {
	// Public endpoints
	ListMovieReviews(ctx context.Context, movieID int64) ([]response.ReviewResponse, error)
	CreateReview(ctx context.Context, principal *utils.Principal, movieID int64, req *request.ReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, principal *utils.Principal, reviewID int64, req *request.ReviewRequest) (*response.ReviewUpdateResponse, error)
	DeleteReview(ctx context.Context, principal *utils.Principal, reviewID int64) error

	// SaveOwnReview creates or updates the principal's review of a movie (page form).
	SaveOwnReview(ctx context.Context, principal *utils.Principal, movieID int64, req *request.ReviewRequest) (*response.ReviewResponse, error)

	// Moderation
	ListReviews(ctx context.Context, filter request.ReviewFilter) ([]response.AdminReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListMovieReviews(ctx context.Context, movieID int64) ([]response.ReviewResponse, error) {
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie reviews", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, apperror.Internal(err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) CreateReview(ctx context.Context, principal *utils.Principal, movieID int64, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if principal == nil {
		return nil, apperror.AuthRequired()
	}

	// 1. Validasi input sebelum lookup apapun
	if err := validateReview(req); err != nil {
		return nil, err
	}
	text, rating := "", DefaultRating
	if req.Review != nil {
		text = *req.Review
	}
	if req.Rating != nil {
		rating = *req.Rating
	}

	// 2. Movie harus ada
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, err
	}

	// 3. Satu review per (movie, user)
	existing, err := s.repo.Review.FindByUserAndMovie(ctx, principal.UserID, movieID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		reviewWrites.WithLabelValues("create", "conflict").Inc()
		return nil, apperror.Conflict(repository.DuplicateReviewMessage)
	}

	// 4. Simpan; the unique constraint settles concurrent creates
	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:  movieID,
		UserID:   principal.UserID,
		Text:     text,
		Rating:   rating,
		Username: principal.Username,
	}
	if err := s.repo.Review.Create(ctx, review); err != nil {
		reviewWrites.WithLabelValues("create", outcome(err)).Inc()
		return nil, err
	}

	reviewWrites.WithLabelValues("create", "ok").Inc()
	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("movie_id", movieID),
		zap.Int64("user_id", principal.UserID),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, principal *utils.Principal, reviewID int64, req *request.ReviewRequest) (*response.ReviewUpdateResponse, error) {
	if principal == nil {
		return nil, apperror.AuthRequired()
	}
	if err := validateReview(req); err != nil {
		return nil, err
	}

	review, err := s.ownedReview(ctx, principal, reviewID)
	if err != nil {
		reviewWrites.WithLabelValues("update", outcome(err)).Inc()
		return nil, err
	}

	applyReview(review, req)
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		reviewWrites.WithLabelValues("update", outcome(err)).Inc()
		return nil, err
	}

	reviewWrites.WithLabelValues("update", "ok").Inc()
	s.log.Info("Review updated", zap.Int64("review_id", reviewID), zap.Int64("user_id", principal.UserID))

	resp := response.ReviewToUpdateResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, principal *utils.Principal, reviewID int64) error {
	if principal == nil {
		return apperror.AuthRequired()
	}

	if _, err := s.ownedReview(ctx, principal, reviewID); err != nil {
		reviewWrites.WithLabelValues("delete", outcome(err)).Inc()
		return err
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		reviewWrites.WithLabelValues("delete", outcome(err)).Inc()
		return err
	}

	reviewWrites.WithLabelValues("delete", "ok").Inc()
	s.log.Info("Review deleted", zap.Int64("review_id", reviewID), zap.Int64("user_id", principal.UserID))
	return nil
}

func (s *reviewService) SaveOwnReview(ctx context.Context, principal *utils.Principal, movieID int64, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if principal == nil {
		return nil, apperror.AuthRequired()
	}
	if req.Rating == nil {
		return nil, apperror.Validation("Validation failed", map[string]string{
			"rating": "This field is required",
		})
	}
	if err := validateReview(req); err != nil {
		return nil, err
	}
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByUserAndMovie(ctx, principal.UserID, movieID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing == nil {
		return s.CreateReview(ctx, principal, movieID, req)
	}

	applyReview(existing, req)
	existing.UpdatedAt = time.Now()
	if err := s.repo.Review.Update(ctx, existing); err != nil {
		reviewWrites.WithLabelValues("update", outcome(err)).Inc()
		return nil, err
	}

	reviewWrites.WithLabelValues("update", "ok").Inc()
	resp := response.ReviewToResponse(existing)
	return &resp, nil
}

func (s *reviewService) ListReviews(ctx context.Context, filter request.ReviewFilter) ([]response.AdminReviewResponse, error) {
	if errs := utils.ValidateStruct(&filter); len(errs) > 0 {
		return nil, apperror.Validation("Validation failed", errs)
	}

	reviews, err := s.repo.Review.FindAll(ctx, repository.ReviewFilter{
		Rating: filter.Rating,
		Search: filter.Search,
	})
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	out := make([]response.AdminReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = response.ReviewToAdminResponse(review)
	}
	return out, nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) ensureMovie(ctx context.Context, movieID int64) error {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.Int64("movie_id", movieID))
		return apperror.Internal(err)
	}
	if movie == nil {
		return apperror.NotFound("movie", movieID)
	}
	return nil
}

func (s *reviewService) ownedReview(ctx context.Context, principal *utils.Principal, reviewID int64) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if review == nil {
		return nil, apperror.NotFound("review", reviewID)
	}
	if !review.OwnedBy(principal.UserID) {
		s.log.Warn("Review ownership check failed",
			zap.Int64("review_id", reviewID),
			zap.Int64("user_id", principal.UserID),
		)
		return nil, apperror.Permission(PermissionDeniedMessage)
	}
	return review, nil
}

// validateReview checks text length and the 1..5 rating range.
func validateReview(req *request.ReviewRequest) error {
	fields := utils.ValidateStruct(req)
	if fields == nil {
		fields = map[string]string{}
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		if _, ok := fields["rating"]; !ok {
			fields["rating"] = "Rating must be between 1 and 5"
		}
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields)
	}
	return nil
}

func applyReview(review *entity.Review, req *request.ReviewRequest) {
	if req.Review != nil {
		review.Text = *req.Review
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
}

func outcome(err error) string {
	switch apperror.HTTPStatus(err) {
	case 400:
		return "rejected"
	case 403:
		return "forbidden"
	case 404:
		return "not_found"
	default:
		return "error"
	}
}
