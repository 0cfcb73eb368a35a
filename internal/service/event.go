package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository"
)

var ErrEventNotFound = repository.ErrEventNotFound

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context, query domain.EventQuery) ([]domain.Event, int64, error)
	MarkCompleted(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountUpcoming(ctx context.Context) (int64, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error) {
	if !principal.IsStaff() {
		return domain.Event{}, ErrNotStaff
	}

	if event.TotalSeats < 0 {
		return domain.Event{}, errors.New("total seats must not be negative")
	}

	event.Status = domain.EventStatusUpcoming
	event.CreatedByID = principal.UserID

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, query domain.EventQuery) ([]domain.Event, int64, error) {
	events, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, total, nil
}

// UpdateEvent edits event details. Payment amounts already snapshotted onto
// existing payments are unaffected by a payment_per_boy change.
func (s *EventService) UpdateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error) {
	if !principal.IsStaff() {
		return domain.Event{}, ErrNotStaff
	}

	existing, err := s.GetEvent(ctx, event.ID)
	if err != nil {
		return domain.Event{}, err
	}

	if event.TotalSeats < existing.TotalSeats-existing.AvailableSeats {
		return domain.Event{}, errors.New("total seats cannot drop below registered count")
	}

	event.Status = existing.Status
	event.CreatedByID = existing.CreatedByID
	event.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteEvent removes an event; registrations and their payments go with it
// through the cascade configured on the schema.
func (s *EventService) DeleteEvent(ctx context.Context, principal domain.Principal, id uint) error {
	if !principal.IsStaff() {
		return ErrNotStaff
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventService) MarkCompleted(ctx context.Context, principal domain.Principal, id uint) error {
	if !principal.IsStaff() {
		return ErrNotStaff
	}

	if err := s.repo.MarkCompleted(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.MarkCompleted -> %w", err)
	}

	return nil
}
