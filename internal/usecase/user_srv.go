package usecase

import (
	"context"

	"muse/internal/data/repository"
	"muse/internal/dto/response"
	"muse/pkg/apperror"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]response.UserResponse, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.Int64("user_id", userID))
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user", userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := us.userRepo.FindAll(ctx)
	if err != nil {
		us.log.Error("Failed to get users", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}
	return userResponses, nil
}

// DeleteUser removes the account; its reviews and sessions cascade.
func (us *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := us.userRepo.Delete(ctx, userID); err != nil {
		us.log.Warn("Failed to delete user", zap.Error(err), zap.Int64("user_id", userID))
		return err
	}
	return nil
}
