package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcrew/catering-api/internal/domain"
)

func TestEventService_CreateEvent(t *testing.T) {
	t.Run("forces upcoming status and creator", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{events: map[uint]domain.Event{}})

		event, err := svc.CreateEvent(context.Background(), staffPrincipal(9), domain.Event{
			Title:         "Wedding",
			Date:          time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
			Location:      "Grand Hall",
			TotalSeats:    20,
			PaymentPerBoy: 500,
			Status:        domain.EventStatusCompleted,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusUpcoming, event.Status)
		assert.Equal(t, uint(9), event.CreatedByID)
	})

	t.Run("rejects boys", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{events: map[uint]domain.Event{}})

		_, err := svc.CreateEvent(context.Background(), boyPrincipal(2), domain.Event{Title: "Wedding"})

		assert.ErrorIs(t, err, ErrNotStaff)
	})

	t.Run("rejects negative seats", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{events: map[uint]domain.Event{}})

		_, err := svc.CreateEvent(context.Background(), staffPrincipal(9), domain.Event{TotalSeats: -1})

		assert.Error(t, err)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	existing := domain.Event{
		ID:             1,
		Title:          "Wedding",
		TotalSeats:     20,
		AvailableSeats: 15,
		Status:         domain.EventStatusUpcoming,
		CreatedByID:    9,
	}

	t.Run("preserves status and creator", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{events: map[uint]domain.Event{1: existing}})

		updated, err := svc.UpdateEvent(context.Background(), staffPrincipal(9), domain.Event{
			ID:         1,
			Title:      "Wedding Reception",
			TotalSeats: 25,
			Status:     domain.EventStatusCompleted,
		})

		require.NoError(t, err)
		assert.Equal(t, "Wedding Reception", updated.Title)
		assert.Equal(t, domain.EventStatusUpcoming, updated.Status)
		assert.Equal(t, uint(9), updated.CreatedByID)
	})

	t.Run("seats cannot drop below registered count", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{events: map[uint]domain.Event{1: existing}})

		// 5 of 20 seats are taken.
		_, err := svc.UpdateEvent(context.Background(), staffPrincipal(9), domain.Event{
			ID:         1,
			TotalSeats: 4,
		})

		assert.Error(t, err)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{events: map[uint]domain.Event{}})

		_, err := svc.UpdateEvent(context.Background(), staffPrincipal(9), domain.Event{ID: 42})

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_MarkCompleted(t *testing.T) {
	t.Run("flips the status", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[uint]domain.Event{
			1: {ID: 1, Status: domain.EventStatusUpcoming},
		}}
		svc := NewEventService(repo)

		err := svc.MarkCompleted(context.Background(), staffPrincipal(9), 1)

		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusCompleted, repo.events[1].Status)
	})

	t.Run("rejects boys", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{events: map[uint]domain.Event{}})

		err := svc.MarkCompleted(context.Background(), boyPrincipal(2), 1)

		assert.ErrorIs(t, err, ErrNotStaff)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{events: map[uint]domain.Event{}})

		err := svc.MarkCompleted(context.Background(), staffPrincipal(9), 42)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	t.Run("rejects boys", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{events: map[uint]domain.Event{}})

		err := svc.DeleteEvent(context.Background(), boyPrincipal(2), 1)

		assert.ErrorIs(t, err, ErrNotStaff)
	})
}
