package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	FindBoys(ctx context.Context) ([]domain.User, error)
	CountBoys(ctx context.Context) (int64, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListBoys(ctx context.Context, principal domain.Principal) ([]domain.User, error) {
	if !principal.IsStaff() {
		return nil, ErrNotStaff
	}

	boys, err := s.repo.FindBoys(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBoys -> %w", err)
	}

	return boys, nil
}

func (s *UserService) GetBoy(ctx context.Context, principal domain.Principal, id uint) (domain.User, error) {
	if !principal.IsStaff() {
		return domain.User{}, ErrNotStaff
	}

	boy, err := s.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if boy.Role != domain.RoleBoy {
		return domain.User{}, ErrUserNotFound
	}

	return boy, nil
}

// UpdateBoyProfile lets a boy edit his own contact details, or staff edit any
// boy's. Role, identifiers and credentials are never touched here.
func (s *UserService) UpdateBoyProfile(ctx context.Context, principal domain.Principal, boyUserID uint, name, phone, upiID string) (domain.User, error) {
	if !principal.IsStaff() && principal.UserID != boyUserID {
		return domain.User{}, ErrNotBoy
	}

	user, err := s.GetUser(ctx, boyUserID)
	if err != nil {
		return domain.User{}, err
	}
	if user.Role != domain.RoleBoy {
		return domain.User{}, ErrUserNotFound
	}

	if name != "" {
		user.Name = name
	}
	user.Phone = phone
	user.UPIID = upiID

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
