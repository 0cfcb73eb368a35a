package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository"
)

var (
	ErrUserEmailExists    = repository.ErrUserEmailExists
	ErrBoyIDExists        = repository.ErrBoyIDExists
	ErrUserNotFound       = repository.ErrUserNotFound
	ErrWrongPassword      = errors.New("wrong password")
	ErrPasswordNotSet     = errors.New("password not set, first-time setup required")
	ErrPasswordAlreadySet = errors.New("password already set")
	ErrNotStaff           = errors.New("staff permission required")
	ErrNotBoy             = errors.New("caterer permission required")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	FindByStaffID(ctx context.Context, staffID string) (domain.User, error)
	FindByBoyID(ctx context.Context, boyID string) (domain.User, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) StaffLogin(ctx context.Context, staffID, password string) (domain.User, error) {
	user, err := s.repo.FindByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByStaffID -> %w", err)
	}

	if user.Role != domain.RoleStaff {
		return domain.User{}, ErrUserNotFound
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// BoyLogin authenticates a catering boy. A boy added by staff has no password
// until first-time setup, which callers detect via ErrPasswordNotSet.
func (s *AuthService) BoyLogin(ctx context.Context, boyID, password string) (domain.User, error) {
	user, err := s.repo.FindByBoyID(ctx, boyID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByBoyID -> %w", err)
	}

	if user.Role != domain.RoleBoy {
		return domain.User{}, ErrUserNotFound
	}

	if user.FirstTimeLogin || user.Password == "" {
		return domain.User{}, ErrPasswordNotSet
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// SetBoyPassword completes first-time setup. It is refused once a password
// exists, so the unauthenticated endpoint cannot overwrite credentials.
func (s *AuthService) SetBoyPassword(ctx context.Context, boyID, password string) (domain.User, error) {
	user, err := s.repo.FindByBoyID(ctx, boyID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByBoyID -> %w", err)
	}

	if !user.FirstTimeLogin {
		return domain.User{}, ErrPasswordAlreadySet
	}

	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = hash
	user.FirstTimeLogin = false

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// AddBoy creates a boy account without a password; the boy sets one on first
// login. Staff only.
func (s *AuthService) AddBoy(ctx context.Context, principal domain.Principal, boy domain.User) (domain.User, error) {
	if !principal.IsStaff() {
		return domain.User{}, ErrNotStaff
	}

	boy.Role = domain.RoleBoy
	boy.Password = ""
	boy.FirstTimeLogin = true

	created, err := s.repo.Create(ctx, boy)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) || errors.Is(err, repository.ErrBoyIDExists) {
			return domain.User{}, err
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
