package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository/dao"
)

func TestPaymentRepository_DaoToDomain(t *testing.T) {
	repo := NewPaymentRepository(nil)

	t.Run("without a preloaded registration", func(t *testing.T) {
		paidAt := time.Now()
		ref := "pay_abc"

		payment := repo.daoToDomain(dao.Payment{
			ID:             1,
			RegistrationID: 10,
			Amount:         500,
			Status:         "Paid",
			GatewayRef:     &ref,
			PaidAt:         &paidAt,
		})

		assert.Equal(t, uint(1), payment.ID)
		assert.Equal(t, uint(10), payment.RegistrationID)
		assert.Equal(t, "pay_abc", payment.GatewayRef)
		assert.Nil(t, payment.Registration)
	})

	t.Run("with a preloaded registration", func(t *testing.T) {
		payment := repo.daoToDomain(dao.Payment{
			ID:             2,
			RegistrationID: 11,
			Amount:         750,
			Status:         "Pending",
			Registration: &dao.Registration{
				ID:         11,
				EventID:    3,
				BoyID:      7,
				SeatNumber: 4,
				Boy:        dao.User{ID: 7, Email: "ravi@example.com", Name: "Ravi", Role: "boy"},
				Event:      dao.Event{ID: 3, Title: "Wedding", Status: domain.EventStatusCompleted},
			},
		})

		require.NotNil(t, payment.Registration)
		assert.Equal(t, 4, payment.Registration.SeatNumber)
		require.NotNil(t, payment.Registration.Boy)
		assert.Equal(t, "ravi@example.com", payment.Registration.Boy.Email)
		require.NotNil(t, payment.Registration.Event)
		assert.Equal(t, domain.EventStatusCompleted, payment.Registration.Event.Status)
		assert.Empty(t, payment.GatewayRef)
	})
}
