package repository

import (
	"context"
	"fmt"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository/dao"
)

var (
	ErrNoSeatsAvailable  = dao.ErrNoSeatsAvailable
	ErrAlreadyRegistered = dao.ErrAlreadyRegistered
)

type RegistrationDAO interface {
	InsertWithPayment(ctx context.Context, eventID, boyID uint) (dao.Registration, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.Registration, error)
	FindByBoy(ctx context.Context, boyID uint) ([]dao.Registration, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	registration := domain.Registration{
		ID:         reg.ID,
		EventID:    reg.EventID,
		BoyID:      reg.BoyID,
		SeatNumber: reg.SeatNumber,
		CreatedAt:  reg.CreatedAt,
	}

	if reg.Boy.ID != 0 {
		boy := domain.User{
			ID:    reg.Boy.ID,
			Email: reg.Boy.Email,
			Name:  reg.Boy.Name,
			Role:  reg.Boy.Role,
			Phone: reg.Boy.Phone,
			UPIID: reg.Boy.UPIID,
		}
		if reg.Boy.BoyID != nil {
			boy.BoyID = *reg.Boy.BoyID
		}
		registration.Boy = &boy
	}

	if reg.Event.ID != 0 {
		registration.Event = &domain.Event{
			ID:            reg.Event.ID,
			Title:         reg.Event.Title,
			Date:          reg.Event.Date,
			Location:      reg.Event.Location,
			TotalSeats:    reg.Event.TotalSeats,
			PaymentPerBoy: reg.Event.PaymentPerBoy,
			Status:        reg.Event.Status,
		}
	}

	return registration
}

// Register atomically allocates the next seat and creates the pending
// payment. Capacity and duplicate checks happen inside the DAO transaction
// while the event row is locked.
func (r *RegistrationRepository) Register(ctx context.Context, eventID, boyID uint) (domain.Registration, error) {
	created, err := r.dao.InsertWithPayment(ctx, eventID, boyID)
	if err != nil {
		return domain.Registration{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	registrations, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	result := make([]domain.Registration, len(registrations))
	for i, reg := range registrations {
		result[i] = r.daoToDomain(reg)
	}

	return result, nil
}

func (r *RegistrationRepository) FindByBoy(ctx context.Context, boyID uint) ([]domain.Registration, error) {
	registrations, err := r.dao.FindByBoy(ctx, boyID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByBoy -> %w", err)
	}

	result := make([]domain.Registration, len(registrations))
	for i, reg := range registrations {
		result[i] = r.daoToDomain(reg)
	}

	return result, nil
}
