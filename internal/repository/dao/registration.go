package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoSeatsAvailable  = errors.New("no seats available")
	ErrAlreadyRegistered = errors.New("already registered for this event")
)

type Registration struct {
	ID         uint `gorm:"primaryKey"`
	EventID    uint `gorm:"not null;uniqueIndex:idx_registrations_event_boy;uniqueIndex:idx_registrations_event_seat"`
	BoyID      uint `gorm:"not null;uniqueIndex:idx_registrations_event_boy"`
	SeatNumber int  `gorm:"not null;uniqueIndex:idx_registrations_event_seat"`

	Boy     User    `gorm:"foreignKey:BoyID"`
	Event   Event   `gorm:"foreignKey:EventID"`
	Payment Payment `gorm:"foreignKey:RegistrationID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// InsertWithPayment registers a boy for an event and creates the companion
// pending payment in a single serialized transaction.
//
// The event row is locked with SELECT ... FOR UPDATE before the capacity
// check and seat computation, so two concurrent registrations for the same
// event cannot both read the same seat counter. Without the lock, both would
// see the same max seat and either collide on the unique index or overbook
// the final seat.
func (d *RegistrationDAO) InsertWithPayment(ctx context.Context, eventID, boyID uint) (Registration, error) {
	var registration Registration

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var taken int64
		if err := tx.Model(&Registration{}).Where("event_id = ?", eventID).Count(&taken).Error; err != nil {
			return err
		}
		if taken >= int64(event.TotalSeats) {
			return ErrNoSeatsAvailable
		}

		var existing int64
		if err := tx.Model(&Registration{}).
			Where("event_id = ? AND boy_id = ?", eventID, boyID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyRegistered
		}

		var maxSeat int
		if err := tx.Model(&Registration{}).
			Where("event_id = ?", eventID).
			Select("COALESCE(MAX(seat_number), 0)").
			Scan(&maxSeat).Error; err != nil {
			return err
		}

		registration = Registration{
			EventID:    eventID,
			BoyID:      boyID,
			SeatNumber: maxSeat + 1,
		}
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		payment := Payment{
			RegistrationID: registration.ID,
			Amount:         event.PaymentPerBoy,
			Status:         "Pending",
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		registration.Payment = payment

		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Registration{}, ErrAlreadyRegistered
		}
		return Registration{}, err
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByEvent(ctx context.Context, eventID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Preload("Boy").
		Where("event_id = ?", eventID).
		Order("seat_number").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByBoy(ctx context.Context, boyID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Preload("Event").
		Where("boy_id = ?", boyID).
		Order("created_at DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByEventAndBoy(ctx context.Context, eventID, boyID uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND boy_id = ?", eventID, boyID).
		First(&registration)
	if result.Error != nil {
		return Registration{}, result.Error
	}

	return registration, nil
}
