package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository"
)

var (
	ErrNoSeatsAvailable  = repository.ErrNoSeatsAvailable
	ErrAlreadyRegistered = repository.ErrAlreadyRegistered
)

type RegistrationRepository interface {
	Register(ctx context.Context, eventID, boyID uint) (domain.Registration, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	FindByBoy(ctx context.Context, boyID uint) ([]domain.Registration, error)
}

// RegistrationService allocates seats. All capacity and uniqueness checks run
// inside the repository's per-event serialized transaction, so concurrent
// registrations for the same event cannot overbook or double-assign a seat.
type RegistrationService struct {
	repo RegistrationRepository
}

func NewRegistrationService(repo RegistrationRepository) *RegistrationService {
	return &RegistrationService{
		repo: repo,
	}
}

func (s *RegistrationService) Register(ctx context.Context, principal domain.Principal, eventID uint) (domain.Registration, error) {
	if !principal.IsBoy() {
		return domain.Registration{}, ErrNotBoy
	}

	registration, err := s.repo.Register(ctx, eventID, principal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) ||
			errors.Is(err, repository.ErrNoSeatsAvailable) ||
			errors.Is(err, repository.ErrAlreadyRegistered) {
			return domain.Registration{}, err
		}

		return domain.Registration{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	return registration, nil
}

func (s *RegistrationService) ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) ListByBoy(ctx context.Context, principal domain.Principal) ([]domain.Registration, error) {
	if !principal.IsBoy() {
		return nil, ErrNotBoy
	}

	registrations, err := s.repo.FindByBoy(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByBoy -> %w", err)
	}

	return registrations, nil
}
