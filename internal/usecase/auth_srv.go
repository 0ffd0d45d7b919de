package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"muse/internal/data/entity"
	"muse/internal/data/repository"
	"muse/internal/dto/request"
	"muse/internal/dto/response"
	"muse/pkg/apperror"
	"muse/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginFailedMessage is deliberately the same for an unknown user and a
// wrong password.
const LoginFailedMessage = "Invalid username or password. Please try again."

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest, client ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*utils.Principal, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest, client ClientInfo) (*response.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	// 1. Validasi input
	fields := utils.ValidateStruct(req)
	if fields == nil {
		fields = map[string]string{}
	}
	if _, bad := fields["password"]; !bad && req.Password != "" {
		problems := utils.PasswordPolicyErrors(req.Password,
			req.Username, req.FirstName, req.LastName, req.Email)
		if len(problems) > 0 {
			fields["password"] = strings.Join(problems, " ")
		}
	}

	// 2. Cek username sudah dipakai
	if _, bad := fields["username"]; !bad {
		existing, err := s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
			return nil, apperror.Internal(err)
		}
		if existing != nil {
			fields["username"] = "A user with that username already exists"
		}
	}

	if len(fields) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", fields))
		return nil, apperror.Validation("Please correct the errors below.", fields)
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	// 4. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashedPassword,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	// 5. Save user; a concurrent signup for the same name still lands as a field error
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	// 6. Auto login setelah signup
	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Error("Failed to create session after signup",
			zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, apperror.Internal(err)
	}

	s.log.Info("User signed up",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperror.Authentication(LoginFailedMessage)
	}

	// 2. Find user by username
	user, err := s.repo.User.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		s.log.Error("Failed to find user by username", zap.Error(err), zap.String("username", req.Username))
		return nil, apperror.Internal(err)
	}

	// 3. Unknown user, wrong password and inactive accounts look the same to the caller
	if user == nil || !user.IsActive || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login rejected", zap.String("username", req.Username))
		return nil, apperror.Authentication(LoginFailedMessage)
	}

	// 4. Create session
	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, apperror.Internal(err)
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// Logout revokes the session behind token. Unknown or malformed tokens
// are ignored so logging out twice is harmless.
func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, ok := utils.ParseSessionToken(token)
	if !ok {
		return nil
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return apperror.Internal(err)
	}

	s.log.Info("User logged out")
	return nil
}

// Authenticate resolves a session token to the principal it belongs to.
// A nil principal with a nil error means anonymous.
func (s *authService) Authenticate(ctx context.Context, token string) (*utils.Principal, error) {
	tokenUUID, ok := utils.ParseSessionToken(token)
	if !ok {
		return nil, nil
	}

	session, err := s.repo.Session.FindValidSession(ctx, tokenUUID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if session == nil {
		return nil, nil
	}

	return &utils.Principal{
		UserID:   session.UserID,
		Username: session.Username,
		Role:     string(session.Role),
	}, nil
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("Expired sessions purged", zap.Int64("count", n))
	return n, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID int64, client ClientInfo) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(s.sessionTTL()),
		CreatedAt: now,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

func (s *authService) sessionTTL() time.Duration {
	if s.config == nil || s.config.Session.TTLHours <= 0 {
		return 14 * 24 * time.Hour
	}
	return time.Duration(s.config.Session.TTLHours) * time.Hour
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
