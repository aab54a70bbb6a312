package service

import (
	"context"
	"fmt"

	"github.com/YOHANNES7766/AmenApp/user/repo"
	"github.com/YOHANNES7766/AmenApp/user/repo/model"
)

type UserService struct {
	repo repo.UserRepo
}

func NewUserService(r repo.UserRepo) *UserService {
	return &UserService{repo: r}
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fail to get profile: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, name, profilePicture string) (*model.User, error) {
	if err := s.repo.UpdateProfile(ctx, userID, name, profilePicture); err != nil {
		return nil, fmt.Errorf("fail to update profile: %w", err)
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) ListPending(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("fail to list pending users: %w", err)
	}
	return users, nil
}

func (s *UserService) Approve(ctx context.Context, userID int64) error {
	if err := s.repo.SetApproved(ctx, userID, true); err != nil {
		return fmt.Errorf("fail to approve user %d: %w", userID, err)
	}
	return nil
}

func (s *UserService) Decline(ctx context.Context, userID int64) error {
	if err := s.repo.SetApproved(ctx, userID, false); err != nil {
		return fmt.Errorf("fail to decline user %d: %w", userID, err)
	}
	return nil
}
