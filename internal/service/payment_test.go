package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository"
)

// fakePaymentRepo mirrors the guarded UPDATE of the real DAO: the
// Pending->Paid transition happens exactly once per payment.
type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[uint]*domain.Payment
}

func newFakePaymentRepo(payments ...*domain.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{payments: make(map[uint]*domain.Payment)}
	for _, p := range payments {
		repo.payments[p.ID] = p
	}
	return repo
}

func (f *fakePaymentRepo) MarkPaid(_ context.Context, id uint, ref string, paidAt time.Time) (domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	payment, ok := f.payments[id]
	if !ok {
		return domain.Payment{}, repository.ErrPaymentNotFound
	}
	if payment.Status == domain.PaymentStatusPaid {
		return domain.Payment{}, repository.ErrPaymentAlreadyPaid
	}

	payment.Status = domain.PaymentStatusPaid
	payment.GatewayRef = ref
	payment.PaidAt = &paidAt

	return *payment, nil
}

func (f *fakePaymentRepo) SetGatewayRef(_ context.Context, id uint, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	payment, ok := f.payments[id]
	if !ok {
		return repository.ErrPaymentNotFound
	}
	payment.GatewayRef = ref

	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uint) (domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	payment, ok := f.payments[id]
	if !ok {
		return domain.Payment{}, repository.ErrPaymentNotFound
	}

	return *payment, nil
}

func (f *fakePaymentRepo) FindByGatewayRef(_ context.Context, ref string) (domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, payment := range f.payments {
		if payment.GatewayRef == ref {
			return *payment, nil
		}
	}

	return domain.Payment{}, repository.ErrPaymentNotFound
}

func (f *fakePaymentRepo) FindByEvent(_ context.Context, eventID uint) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Payment
	for _, payment := range f.payments {
		if payment.Registration != nil && payment.Registration.EventID == eventID {
			out = append(out, *payment)
		}
	}

	return out, nil
}

func (f *fakePaymentRepo) ListAll(_ context.Context) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Payment
	for _, payment := range f.payments {
		out = append(out, *payment)
	}

	return out, nil
}

func (f *fakePaymentRepo) CountPending(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, payment := range f.payments {
		if payment.Status == domain.PaymentStatusPending {
			count++
		}
	}

	return count, nil
}

func (f *fakePaymentRepo) SumPaidForBoy(_ context.Context, boyID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var sum int64
	for _, payment := range f.payments {
		if payment.Status == domain.PaymentStatusPaid &&
			payment.Registration != nil && payment.Registration.BoyID == boyID {
			sum += int64(payment.Amount)
		}
	}

	return sum, nil
}

type fakeUserRepo struct {
	FindByIDFunc func(ctx context.Context, id uint) (domain.User, error)
	boys         int64
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user domain.User) (domain.User, error) {
	return user, nil
}

func (f *fakeUserRepo) FindBoys(_ context.Context) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountBoys(_ context.Context) (int64, error) {
	return f.boys, nil
}

type fakeEventRepo struct {
	events map[uint]domain.Event
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	return event, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	return event, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, _ uint) error { return nil }

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) List(_ context.Context, _ domain.EventQuery) ([]domain.Event, int64, error) {
	return nil, 0, nil
}

func (f *fakeEventRepo) MarkCompleted(_ context.Context, id uint) error {
	event, ok := f.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}
	event.Status = domain.EventStatusCompleted
	f.events[id] = event
	return nil
}

func (f *fakeEventRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.events)), nil
}

func (f *fakeEventRepo) CountUpcoming(_ context.Context) (int64, error) {
	var count int64
	for _, event := range f.events {
		if event.Status == domain.EventStatusUpcoming {
			count++
		}
	}
	return count, nil
}

type fakeGateway struct {
	CreateOrderFunc func(ctx context.Context, amountMinor int64, receipt string) (domain.OrderHandle, error)
	validSignature  string
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, receipt string) (domain.OrderHandle, error) {
	if f.CreateOrderFunc != nil {
		return f.CreateOrderFunc(ctx, amountMinor, receipt)
	}
	return domain.OrderHandle{OrderID: "order_test", Amount: amountMinor, Currency: "inr"}, nil
}

func (f *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == f.validSignature
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeNotifier) PaymentCompleted(_ context.Context, _, _, _ string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func pendingPayment(id uint, amount int) *domain.Payment {
	return &domain.Payment{
		ID:     id,
		Amount: amount,
		Status: domain.PaymentStatusPending,
		Registration: &domain.Registration{
			ID:      id,
			EventID: 1,
			BoyID:   7,
			Boy:     &domain.User{ID: 7, Name: "Ravi", Email: "ravi@example.com"},
			Event:   &domain.Event{ID: 1, Title: "Wedding", Status: domain.EventStatusCompleted},
		},
	}
}

func newPaymentService(repo *fakePaymentRepo, events *fakeEventRepo, gw *fakeGateway, n *fakeNotifier) *PaymentService {
	if events == nil {
		events = &fakeEventRepo{events: map[uint]domain.Event{}}
	}
	if gw == nil {
		gw = &fakeGateway{}
	}
	if n == nil {
		n = &fakeNotifier{}
	}
	return NewPaymentService(repo, &fakeUserRepo{}, events, gw, n)
}

func TestPaymentService_Simulate(t *testing.T) {
	t.Run("marks a pending payment paid", func(t *testing.T) {
		repo := newFakePaymentRepo(pendingPayment(1, 500))
		notifier := &fakeNotifier{}
		svc := newPaymentService(repo, nil, nil, notifier)

		paid, err := svc.Simulate(context.Background(), staffPrincipal(1), 1)

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, paid.Status)
		assert.True(t, strings.HasPrefix(paid.GatewayRef, "SIM_1_"))
		assert.NotNil(t, paid.PaidAt)
		assert.Equal(t, 500, paid.Amount)
		assert.Equal(t, 1, notifier.calls)
	})

	t.Run("rejects a boy", func(t *testing.T) {
		repo := newFakePaymentRepo(pendingPayment(1, 500))
		svc := newPaymentService(repo, nil, nil, nil)

		_, err := svc.Simulate(context.Background(), boyPrincipal(7), 1)

		assert.ErrorIs(t, err, ErrNotStaff)
	})

	t.Run("second simulate reports already paid", func(t *testing.T) {
		repo := newFakePaymentRepo(pendingPayment(1, 500))
		svc := newPaymentService(repo, nil, nil, nil)

		_, err := svc.Simulate(context.Background(), staffPrincipal(1), 1)
		require.NoError(t, err)

		_, err = svc.Simulate(context.Background(), staffPrincipal(1), 1)
		assert.ErrorIs(t, err, ErrPaymentAlreadyPaid)
	})

	t.Run("notifier failure does not unwind the paid state", func(t *testing.T) {
		repo := newFakePaymentRepo(pendingPayment(1, 500))
		notifier := &fakeNotifier{err: errors.New("smtp down")}
		svc := newPaymentService(repo, nil, nil, notifier)

		paid, err := svc.Simulate(context.Background(), staffPrincipal(1), 1)

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, paid.Status)

		stored, err := repo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, stored.Status)
	})
}

func TestPaymentService_SimulateAllForEvent(t *testing.T) {
	already := pendingPayment(2, 500)
	already.Status = domain.PaymentStatusPaid

	repo := newFakePaymentRepo(pendingPayment(1, 500), already, pendingPayment(3, 500))
	events := &fakeEventRepo{events: map[uint]domain.Event{
		1: {ID: 1, Title: "Wedding", Status: domain.EventStatusCompleted},
	}}
	svc := newPaymentService(repo, events, nil, nil)

	count, err := svc.SimulateAllForEvent(context.Background(), staffPrincipal(1), 1)

	require.NoError(t, err)
	assert.Equal(t, 2, count)

	pending, err := repo.CountPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestPaymentService_CreateGatewayOrder(t *testing.T) {
	t.Run("creates an order for a completed event", func(t *testing.T) {
		repo := newFakePaymentRepo(pendingPayment(1, 500))
		gw := &fakeGateway{
			CreateOrderFunc: func(_ context.Context, amountMinor int64, receipt string) (domain.OrderHandle, error) {
				assert.Equal(t, int64(50000), amountMinor)
				assert.Equal(t, "order_rcptid_1", receipt)
				return domain.OrderHandle{OrderID: "order_abc", Amount: amountMinor, Currency: "inr"}, nil
			},
		}
		svc := newPaymentService(repo, nil, gw, nil)

		order, err := svc.CreateGatewayOrder(context.Background(), staffPrincipal(1), 1)

		require.NoError(t, err)
		assert.Equal(t, "order_abc", order.OrderID)

		stored, err := repo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "order_abc", stored.GatewayRef)
		assert.Equal(t, domain.PaymentStatusPending, stored.Status)
	})

	t.Run("refuses while the event is upcoming", func(t *testing.T) {
		payment := pendingPayment(1, 500)
		payment.Registration.Event.Status = domain.EventStatusUpcoming
		repo := newFakePaymentRepo(payment)
		svc := newPaymentService(repo, nil, nil, nil)

		_, err := svc.CreateGatewayOrder(context.Background(), staffPrincipal(1), 1)

		assert.ErrorIs(t, err, ErrEventNotCompleted)
	})

	t.Run("refuses a paid payment", func(t *testing.T) {
		payment := pendingPayment(1, 500)
		payment.Status = domain.PaymentStatusPaid
		repo := newFakePaymentRepo(payment)
		svc := newPaymentService(repo, nil, nil, nil)

		_, err := svc.CreateGatewayOrder(context.Background(), staffPrincipal(1), 1)

		assert.ErrorIs(t, err, ErrPaymentAlreadyPaid)
	})

	t.Run("wraps gateway failures", func(t *testing.T) {
		repo := newFakePaymentRepo(pendingPayment(1, 500))
		gw := &fakeGateway{
			CreateOrderFunc: func(_ context.Context, _ int64, _ string) (domain.OrderHandle, error) {
				return domain.OrderHandle{}, fmt.Errorf("connection refused")
			},
		}
		svc := newPaymentService(repo, nil, gw, nil)

		_, err := svc.CreateGatewayOrder(context.Background(), staffPrincipal(1), 1)

		assert.ErrorIs(t, err, ErrGateway)
	})
}

func TestPaymentService_ConfirmGatewayPayment(t *testing.T) {
	setup := func(t *testing.T, gw *fakeGateway) (*PaymentService, *fakePaymentRepo) {
		t.Helper()

		payment := pendingPayment(1, 500)
		payment.GatewayRef = "order_abc"
		repo := newFakePaymentRepo(payment)

		return newPaymentService(repo, nil, gw, nil), repo
	}

	t.Run("confirms with a valid signature", func(t *testing.T) {
		svc, _ := setup(t, &fakeGateway{validSignature: "good"})

		paid, err := svc.ConfirmGatewayPayment(context.Background(), "order_abc", "pay_xyz", "good")

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, paid.Status)
		assert.Equal(t, "pay_xyz", paid.GatewayRef)
	})

	t.Run("invalid signature leaves the payment pending", func(t *testing.T) {
		svc, repo := setup(t, &fakeGateway{validSignature: "good"})

		_, err := svc.ConfirmGatewayPayment(context.Background(), "order_abc", "pay_xyz", "forged")

		assert.ErrorIs(t, err, ErrSignatureInvalid)

		stored, err := repo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, stored.Status)
	})

	t.Run("unknown order reference", func(t *testing.T) {
		svc, _ := setup(t, &fakeGateway{validSignature: "good"})

		_, err := svc.ConfirmGatewayPayment(context.Background(), "order_missing", "pay_xyz", "good")

		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})

	t.Run("replayed callback cannot pay twice", func(t *testing.T) {
		svc, _ := setup(t, &fakeGateway{validSignature: "good"})

		_, err := svc.ConfirmGatewayPayment(context.Background(), "order_abc", "pay_xyz", "good")
		require.NoError(t, err)

		_, err = svc.ConfirmGatewayPayment(context.Background(), "pay_xyz", "pay_xyz", "good")
		assert.ErrorIs(t, err, ErrPaymentAlreadyPaid)
	})
}

func TestPaymentService_Earnings(t *testing.T) {
	paid := pendingPayment(1, 500)
	paid.Status = domain.PaymentStatusPaid
	repo := newFakePaymentRepo(paid, pendingPayment(2, 300))
	svc := newPaymentService(repo, nil, nil, nil)

	t.Run("sums only paid payments", func(t *testing.T) {
		total, err := svc.Earnings(context.Background(), boyPrincipal(7))

		require.NoError(t, err)
		assert.Equal(t, int64(500), total)
	})

	t.Run("rejects staff", func(t *testing.T) {
		_, err := svc.Earnings(context.Background(), staffPrincipal(1))

		assert.ErrorIs(t, err, ErrNotBoy)
	})
}

func TestPaymentService_DashboardStats(t *testing.T) {
	repo := newFakePaymentRepo(pendingPayment(1, 500))
	events := &fakeEventRepo{events: map[uint]domain.Event{
		1: {ID: 1, Status: domain.EventStatusUpcoming},
		2: {ID: 2, Status: domain.EventStatusCompleted},
	}}
	svc := NewPaymentService(repo, &fakeUserRepo{boys: 4}, events, &fakeGateway{}, &fakeNotifier{})

	stats, err := svc.DashboardStats(context.Background(), staffPrincipal(1))

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalBoys)
	assert.Equal(t, int64(2), stats.TotalEvents)
	assert.Equal(t, int64(1), stats.UpcomingEvents)
	assert.Equal(t, int64(1), stats.PendingPayments)
}
