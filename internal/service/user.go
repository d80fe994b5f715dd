package service

import (
	"context"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	query    QueryService
}

func NewUserService(userRepo repository.UserRepository, query QueryService) UserService {
	return &userService{userRepo: userRepo, query: query}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, domain.ProfileStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ProfileStats{}, err
	}
	user.PasswordHash = ""
	return user, s.query.UserProfileStats(ctx, userID), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID, name, image string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if name != "" {
		user.Name = name
	}
	if image != "" {
		user.Image = image
	}
	return s.userRepo.Update(ctx, user)
}
