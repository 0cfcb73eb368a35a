package repository

import (
	"context"
	"fmt"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	List(ctx context.Context, query dao.EventQuery) ([]dao.Event, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountRegistrations(ctx context.Context, eventID uint) (int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	var createdBy *uint
	if e.CreatedByID != 0 {
		createdBy = &e.CreatedByID
	}

	return dao.Event{
		ID:            e.ID,
		Title:         e.Title,
		Date:          e.Date,
		Location:      e.Location,
		Description:   e.Description,
		TotalSeats:    e.TotalSeats,
		PaymentPerBoy: e.PaymentPerBoy,
		Status:        e.Status,
		CreatedByID:   createdBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:            e.ID,
		Title:         e.Title,
		Date:          e.Date,
		Location:      e.Location,
		Description:   e.Description,
		TotalSeats:    e.TotalSeats,
		PaymentPerBoy: e.PaymentPerBoy,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.CreatedByID != nil {
		event.CreatedByID = *e.CreatedByID
	}

	return event
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	result := r.daoToDomain(created)
	result.AvailableSeats = result.TotalSeats

	return result, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.withAvailableSeats(ctx, r.daoToDomain(updated))
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.dao.Delete(ctx, id)
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	return r.withAvailableSeats(ctx, r.daoToDomain(event))
}

func (r *EventRepository) List(ctx context.Context, query domain.EventQuery) ([]domain.Event, int64, error) {
	events, total, err := r.dao.List(ctx, dao.EventQuery{
		Search:  query.Search,
		Status:  query.Status,
		Sort:    query.Sort,
		Page:    query.Page,
		PerPage: query.PerPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	result := make([]domain.Event, len(events))
	for i, e := range events {
		result[i], err = r.withAvailableSeats(ctx, r.daoToDomain(e))
		if err != nil {
			return nil, 0, err
		}
	}

	return result, total, nil
}

func (r *EventRepository) MarkCompleted(ctx context.Context, id uint) error {
	return r.dao.UpdateStatus(ctx, id, domain.EventStatusCompleted)
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	return r.dao.Count(ctx)
}

func (r *EventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	return r.dao.CountByStatus(ctx, domain.EventStatusUpcoming)
}

// withAvailableSeats derives available_seats from the registration count,
// keeping total_seats - count(registrations) the single source of truth.
func (r *EventRepository) withAvailableSeats(ctx context.Context, event domain.Event) (domain.Event, error) {
	taken, err := r.dao.CountRegistrations(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.CountRegistrations -> %w", err)
	}

	event.AvailableSeats = event.TotalSeats - int(taken)

	return event, nil
}
