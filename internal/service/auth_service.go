package service

import (
	"context"
	"fmt"
	"time"

	"chronoseal-server/internal/domain"
	"chronoseal-server/internal/repository"
	"chronoseal-server/pkg/hash"
	"chronoseal-server/pkg/jwt"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo          repository.UserRepository
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExp, refreshExp time.Duration) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExp,
		refreshExpiration: refreshExp,
	}
}

func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) error {
	emailExists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check email existence: %w", err)
	}
	if emailExists {
		return fmt.Errorf("%w: email already registered", ErrInvalidInput)
	}

	usernameExists, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("failed to check username existence: %w", err)
	}
	if usernameExists {
		return fmt.Errorf("%w: username already taken", ErrInvalidInput)
	}

	hashedPassword, err := hash.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.New().String(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := hash.Compare(user.Password, req.Password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	accessToken, err := jwt.GenerateToken(user.ID, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(user.ID, s.refreshExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	user.Password = ""

	return &domain.LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtExpiration.Seconds()),
	}, nil
}

func (s *AuthService) RefreshToken(req *domain.RefreshTokenRequest) (*domain.TokenResponse, error) {
	claims, err := jwt.ValidateToken(req.RefreshToken, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	accessToken, err := jwt.GenerateToken(claims.UserID, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtExpiration.Seconds()),
	}, nil
}
