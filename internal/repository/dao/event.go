package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID            uint      `gorm:"primaryKey"`
	Title         string    `gorm:"not null"`
	Date          time.Time `gorm:"not null"`
	Location      string    `gorm:"not null"`
	Description   string
	TotalSeats    int    `gorm:"not null"`
	PaymentPerBoy int    `gorm:"not null"`
	Status        string `gorm:"not null;default:upcoming"`
	CreatedByID   *uint

	Registrations []Registration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventQuery mirrors the list filters accepted by the events endpoint.
type EventQuery struct {
	Search  string
	Status  string
	Sort    string
	Page    int
	PerPage int
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Save(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// List applies search, status filter, sorting and pagination in one query.
func (d *EventDAO) List(ctx context.Context, query EventQuery) ([]Event, int64, error) {
	tx := d.db.WithContext(ctx).Model(&Event{})

	if query.Search != "" {
		tx = tx.Where("title ILIKE ?", "%"+query.Search+"%")
	}
	if query.Status != "" && query.Status != "all" {
		tx = tx.Where("status = ?", query.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch query.Sort {
	case "date_desc":
		tx = tx.Order("date DESC")
	case "title_asc":
		tx = tx.Order("title ASC")
	case "title_desc":
		tx = tx.Order("title DESC")
	default:
		tx = tx.Order("date ASC")
	}

	if query.PerPage > 0 {
		offset := 0
		if query.Page > 1 {
			offset = (query.Page - 1) * query.PerPage
		}
		tx = tx.Limit(query.PerPage).Offset(offset)
	}

	var events []Event
	if err := tx.Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (d *EventDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).Where("status = ?", status).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) CountRegistrations(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Registration{}).Where("event_id = ?", eventID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
