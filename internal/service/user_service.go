package service

import (
	"context"
	"fmt"
	"time"

	"chronoseal-server/internal/domain"
	"chronoseal-server/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	user.Password = ""
	return user, nil
}

func (s *UserService) UpdateUsername(ctx context.Context, userID, newUsername string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	usernameExists, err := s.userRepo.UsernameExists(ctx, newUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameExists && user.Username != newUsername {
		return nil, fmt.Errorf("%w: username already taken", ErrInvalidInput)
	}

	user.Username = newUsername
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.Password = ""
	return user, nil
}
