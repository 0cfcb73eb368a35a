package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentAlreadyPaid = errors.New("payment already paid")
)

type Payment struct {
	ID             uint   `gorm:"primaryKey"`
	RegistrationID uint   `gorm:"not null;uniqueIndex"`
	Amount         int    `gorm:"not null"`
	Status         string `gorm:"not null;default:Pending"`
	GatewayRef     *string
	PaidAt         *time.Time

	// Pointer back-reference: Registration already embeds a Payment value,
	// so a value here would make the two structs mutually recursive.
	Registration *Registration `gorm:"foreignKey:RegistrationID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

// MarkPaid flips a payment from Pending to Paid exactly once. The update is
// guarded on the current status, so a second call (or a concurrent one)
// matches zero rows and reports ErrPaymentAlreadyPaid instead of overwriting
// the recorded reference and timestamp.
func (d *PaymentDAO) MarkPaid(ctx context.Context, id uint, ref string, paidAt time.Time) (Payment, error) {
	result := d.db.WithContext(ctx).
		Model(&Payment{}).
		Where("id = ? AND status = ?", id, "Pending").
		Updates(map[string]interface{}{
			"status":      "Paid",
			"gateway_ref": ref,
			"paid_at":     paidAt,
		})
	if result.Error != nil {
		return Payment{}, result.Error
	}

	if result.RowsAffected == 0 {
		existing, err := d.FindByID(ctx, id)
		if err != nil {
			return Payment{}, err
		}
		if existing.Status == "Paid" {
			return Payment{}, ErrPaymentAlreadyPaid
		}
		return Payment{}, ErrPaymentNotFound
	}

	return d.FindByID(ctx, id)
}

// SetGatewayRef stores the gateway order id on a still-pending payment.
func (d *PaymentDAO) SetGatewayRef(ctx context.Context, id uint, ref string) error {
	result := d.db.WithContext(ctx).
		Model(&Payment{}).
		Where("id = ? AND status = ?", id, "Pending").
		Update("gateway_ref", ref)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		existing, err := d.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.Status == "Paid" {
			return ErrPaymentAlreadyPaid
		}
		return ErrPaymentNotFound
	}

	return nil
}

func (d *PaymentDAO) FindByID(ctx context.Context, id uint) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).
		Preload("Registration").
		Preload("Registration.Boy").
		Preload("Registration.Event").
		First(&payment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByGatewayRef(ctx context.Context, ref string) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).
		Preload("Registration").
		Preload("Registration.Boy").
		Preload("Registration.Event").
		First(&payment, "gateway_ref = ?", ref)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByEvent(ctx context.Context, eventID uint) ([]Payment, error) {
	var payments []Payment

	result := d.db.WithContext(ctx).
		Joins("JOIN registrations ON registrations.id = payments.registration_id").
		Where("registrations.event_id = ?", eventID).
		Preload("Registration").
		Preload("Registration.Boy").
		Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}

func (d *PaymentDAO) ListAll(ctx context.Context) ([]Payment, error) {
	var payments []Payment

	result := d.db.WithContext(ctx).
		Preload("Registration").
		Preload("Registration.Boy").
		Preload("Registration.Event").
		Order("id DESC").
		Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}

func (d *PaymentDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Payment{}).Where("status = ?", status).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// SumPaidForBoy totals the paid-out amounts across a boy's registrations.
func (d *PaymentDAO) SumPaidForBoy(ctx context.Context, boyID uint) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).
		Model(&Payment{}).
		Joins("JOIN registrations ON registrations.id = payments.registration_id").
		Where("registrations.boy_id = ? AND payments.status = ?", boyID, "Paid").
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}
