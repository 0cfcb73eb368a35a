package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository"
)

// fakeRegistrationRepo mimics the serialized per-event transaction of the
// real DAO: a single mutex guards capacity, uniqueness and seat assignment.
type fakeRegistrationRepo struct {
	mu         sync.Mutex
	totalSeats int
	nextID     uint
	byBoy      map[uint]domain.Registration
}

func newFakeRegistrationRepo(totalSeats int) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		totalSeats: totalSeats,
		byBoy:      make(map[uint]domain.Registration),
	}
}

func (f *fakeRegistrationRepo) Register(_ context.Context, eventID, boyID uint) (domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byBoy[boyID]; ok {
		return domain.Registration{}, repository.ErrAlreadyRegistered
	}
	if len(f.byBoy) >= f.totalSeats {
		return domain.Registration{}, repository.ErrNoSeatsAvailable
	}

	f.nextID++
	reg := domain.Registration{
		ID:         f.nextID,
		EventID:    eventID,
		BoyID:      boyID,
		SeatNumber: len(f.byBoy) + 1,
	}
	f.byBoy[boyID] = reg

	return reg, nil
}

func (f *fakeRegistrationRepo) FindByEvent(_ context.Context, eventID uint) ([]domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Registration
	for _, reg := range f.byBoy {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}

	return out, nil
}

func (f *fakeRegistrationRepo) FindByBoy(_ context.Context, boyID uint) ([]domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if reg, ok := f.byBoy[boyID]; ok {
		return []domain.Registration{reg}, nil
	}

	return nil, nil
}

func boyPrincipal(id uint) domain.Principal {
	return domain.Principal{UserID: id, Role: domain.RoleBoy}
}

func staffPrincipal(id uint) domain.Principal {
	return domain.Principal{UserID: id, Role: domain.RoleStaff}
}

func TestRegistrationService_Register(t *testing.T) {
	t.Run("assigns the first seat", func(t *testing.T) {
		svc := NewRegistrationService(newFakeRegistrationRepo(5))

		reg, err := svc.Register(context.Background(), boyPrincipal(7), 1)

		require.NoError(t, err)
		assert.Equal(t, 1, reg.SeatNumber)
		assert.Equal(t, uint(7), reg.BoyID)
	})

	t.Run("rejects staff", func(t *testing.T) {
		svc := NewRegistrationService(newFakeRegistrationRepo(5))

		_, err := svc.Register(context.Background(), staffPrincipal(1), 1)

		assert.ErrorIs(t, err, ErrNotBoy)
	})

	t.Run("rejects a second registration by the same boy", func(t *testing.T) {
		svc := NewRegistrationService(newFakeRegistrationRepo(5))

		_, err := svc.Register(context.Background(), boyPrincipal(7), 1)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), boyPrincipal(7), 1)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("rejects registrations past capacity", func(t *testing.T) {
		svc := NewRegistrationService(newFakeRegistrationRepo(1))

		_, err := svc.Register(context.Background(), boyPrincipal(1), 1)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), boyPrincipal(2), 1)
		assert.ErrorIs(t, err, ErrNoSeatsAvailable)
	})
}

func TestRegistrationService_Register_Concurrent(t *testing.T) {
	const (
		capacity = 10
		boys     = 50
	)

	svc := NewRegistrationService(newFakeRegistrationRepo(capacity))

	var wg sync.WaitGroup
	results := make(chan error, boys)
	seats := make(chan int, boys)

	for i := 1; i <= boys; i++ {
		wg.Add(1)
		go func(boyID uint) {
			defer wg.Done()

			reg, err := svc.Register(context.Background(), boyPrincipal(boyID), 1)
			results <- err
			if err == nil {
				seats <- reg.SeatNumber
			}
		}(uint(i))
	}

	wg.Wait()
	close(results)
	close(seats)

	succeeded, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrNoSeatsAvailable):
			full++
		}
	}

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, boys-capacity, full)

	seen := make(map[int]bool)
	for seat := range seats {
		assert.False(t, seen[seat], "seat %d assigned twice", seat)
		assert.GreaterOrEqual(t, seat, 1)
		assert.LessOrEqual(t, seat, capacity)
		seen[seat] = true
	}
	assert.Len(t, seen, capacity)
}

func TestRegistrationService_ListByBoy(t *testing.T) {
	repo := newFakeRegistrationRepo(5)
	svc := NewRegistrationService(repo)

	_, err := svc.Register(context.Background(), boyPrincipal(3), 1)
	require.NoError(t, err)

	t.Run("returns own registrations", func(t *testing.T) {
		regs, err := svc.ListByBoy(context.Background(), boyPrincipal(3))

		require.NoError(t, err)
		require.Len(t, regs, 1)
		assert.Equal(t, uint(3), regs[0].BoyID)
	})

	t.Run("rejects staff", func(t *testing.T) {
		_, err := svc.ListByBoy(context.Background(), staffPrincipal(1))

		assert.ErrorIs(t, err, ErrNotBoy)
	})
}
