package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository/dao"
)

var (
	ErrPaymentNotFound    = dao.ErrPaymentNotFound
	ErrPaymentAlreadyPaid = dao.ErrPaymentAlreadyPaid
)

type PaymentDAO interface {
	MarkPaid(ctx context.Context, id uint, ref string, paidAt time.Time) (dao.Payment, error)
	SetGatewayRef(ctx context.Context, id uint, ref string) error
	FindByID(ctx context.Context, id uint) (dao.Payment, error)
	FindByGatewayRef(ctx context.Context, ref string) (dao.Payment, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.Payment, error)
	ListAll(ctx context.Context) ([]dao.Payment, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	SumPaidForBoy(ctx context.Context, boyID uint) (int64, error)
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) daoToDomain(p dao.Payment) domain.Payment {
	payment := domain.Payment{
		ID:             p.ID,
		RegistrationID: p.RegistrationID,
		Amount:         p.Amount,
		Status:         p.Status,
		PaidAt:         p.PaidAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.GatewayRef != nil {
		payment.GatewayRef = *p.GatewayRef
	}

	if p.Registration != nil && p.Registration.ID != 0 {
		registration := domain.Registration{
			ID:         p.Registration.ID,
			EventID:    p.Registration.EventID,
			BoyID:      p.Registration.BoyID,
			SeatNumber: p.Registration.SeatNumber,
			CreatedAt:  p.Registration.CreatedAt,
		}
		if p.Registration.Boy.ID != 0 {
			registration.Boy = &domain.User{
				ID:    p.Registration.Boy.ID,
				Email: p.Registration.Boy.Email,
				Name:  p.Registration.Boy.Name,
				Role:  p.Registration.Boy.Role,
			}
		}
		if p.Registration.Event.ID != 0 {
			registration.Event = &domain.Event{
				ID:            p.Registration.Event.ID,
				Title:         p.Registration.Event.Title,
				Date:          p.Registration.Event.Date,
				Location:      p.Registration.Event.Location,
				Status:        p.Registration.Event.Status,
				PaymentPerBoy: p.Registration.Event.PaymentPerBoy,
			}
		}
		payment.Registration = &registration
	}

	return payment
}

func (r *PaymentRepository) MarkPaid(ctx context.Context, id uint, ref string, paidAt time.Time) (domain.Payment, error) {
	paid, err := r.dao.MarkPaid(ctx, id, ref, paidAt)
	if err != nil {
		return domain.Payment{}, err
	}

	return r.daoToDomain(paid), nil
}

func (r *PaymentRepository) SetGatewayRef(ctx context.Context, id uint, ref string) error {
	return r.dao.SetGatewayRef(ctx, id, ref)
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (domain.Payment, error) {
	payment, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Payment{}, err
	}

	return r.daoToDomain(payment), nil
}

func (r *PaymentRepository) FindByGatewayRef(ctx context.Context, ref string) (domain.Payment, error) {
	payment, err := r.dao.FindByGatewayRef(ctx, ref)
	if err != nil {
		return domain.Payment{}, err
	}

	return r.daoToDomain(payment), nil
}

func (r *PaymentRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Payment, error) {
	payments, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	return r.daosToDomain(payments), nil
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]domain.Payment, error) {
	payments, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	return r.daosToDomain(payments), nil
}

func (r *PaymentRepository) CountPending(ctx context.Context) (int64, error) {
	return r.dao.CountByStatus(ctx, domain.PaymentStatusPending)
}

func (r *PaymentRepository) SumPaidForBoy(ctx context.Context, boyID uint) (int64, error) {
	return r.dao.SumPaidForBoy(ctx, boyID)
}

func (r *PaymentRepository) daosToDomain(payments []dao.Payment) []domain.Payment {
	result := make([]domain.Payment, len(payments))
	for i, p := range payments {
		result[i] = r.daoToDomain(p)
	}

	return result
}
