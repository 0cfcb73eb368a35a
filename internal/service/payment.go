package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository"
)

var (
	ErrPaymentNotFound    = repository.ErrPaymentNotFound
	ErrPaymentAlreadyPaid = repository.ErrPaymentAlreadyPaid
	ErrEventNotCompleted  = errors.New("event is not completed")
	ErrSignatureInvalid   = errors.New("payment signature verification failed")
	ErrGateway            = errors.New("payment gateway error")
)

type PaymentRepository interface {
	MarkPaid(ctx context.Context, id uint, ref string, paidAt time.Time) (domain.Payment, error)
	SetGatewayRef(ctx context.Context, id uint, ref string) error
	FindByID(ctx context.Context, id uint) (domain.Payment, error)
	FindByGatewayRef(ctx context.Context, ref string) (domain.Payment, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
	CountPending(ctx context.Context) (int64, error)
	SumPaidForBoy(ctx context.Context, boyID uint) (int64, error)
}

// Gateway is the external payment provider. Amounts are in minor currency
// units. Order creation is a synchronous outbound call with a timeout owned
// by the implementation.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, receipt string) (domain.OrderHandle, error)
	VerifySignature(orderRef, paymentRef, signature string) bool
}

// Notifier delivers the payment-completed message. Delivery is best-effort;
// the ledger never fails a paid transition because of it.
type Notifier interface {
	PaymentCompleted(ctx context.Context, to, name, eventTitle string, amount int) error
}

type PaymentService struct {
	repo     PaymentRepository
	userRepo UserRepository
	events   EventRepository
	gateway  Gateway
	notifier Notifier
}

func NewPaymentService(repo PaymentRepository, userRepo UserRepository, events EventRepository, gateway Gateway, notifier Notifier) *PaymentService {
	return &PaymentService{
		repo:     repo,
		userRepo: userRepo,
		events:   events,
		gateway:  gateway,
		notifier: notifier,
	}
}

func (s *PaymentService) GetPayment(ctx context.Context, id uint) (domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return domain.Payment{}, ErrPaymentNotFound
		}

		return domain.Payment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return payment, nil
}

// Simulate marks a payment paid with a synthetic reference, bypassing the
// gateway. Staff only.
func (s *PaymentService) Simulate(ctx context.Context, principal domain.Principal, paymentID uint) (domain.Payment, error) {
	if !principal.IsStaff() {
		return domain.Payment{}, ErrNotStaff
	}

	now := time.Now()
	ref := fmt.Sprintf("SIM_%d_%d", paymentID, now.Unix())

	paid, err := s.markPaid(ctx, paymentID, ref, now)
	if err != nil {
		return domain.Payment{}, err
	}

	return paid, nil
}

// SimulateAllForEvent marks every pending payment of an event paid. Payments
// already paid are skipped, not errors. Returns the number transitioned.
func (s *PaymentService) SimulateAllForEvent(ctx context.Context, principal domain.Principal, eventID uint) (int, error) {
	if !principal.IsStaff() {
		return 0, ErrNotStaff
	}

	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return 0, ErrEventNotFound
		}

		return 0, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	payments, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	count := 0
	for _, payment := range payments {
		if payment.Status == domain.PaymentStatusPaid {
			continue
		}

		now := time.Now()
		ref := fmt.Sprintf("SIM_%d_%d", payment.ID, now.Unix())
		if _, err := s.markPaid(ctx, payment.ID, ref, now); err != nil {
			if errors.Is(err, ErrPaymentAlreadyPaid) {
				continue
			}
			return count, err
		}
		count++
	}

	return count, nil
}

// CreateGatewayOrder opens a gateway order for a pending payment. Only
// allowed once the owning event is completed; the order id is stored on the
// payment so the confirmation callback can find it again.
func (s *PaymentService) CreateGatewayOrder(ctx context.Context, principal domain.Principal, paymentID uint) (domain.OrderHandle, error) {
	if !principal.IsStaff() {
		return domain.OrderHandle{}, ErrNotStaff
	}

	payment, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return domain.OrderHandle{}, err
	}
	if payment.Status == domain.PaymentStatusPaid {
		return domain.OrderHandle{}, ErrPaymentAlreadyPaid
	}
	if payment.Registration == nil || payment.Registration.Event == nil {
		return domain.OrderHandle{}, fmt.Errorf("payment %d has no event attached", paymentID)
	}
	if payment.Registration.Event.Status != domain.EventStatusCompleted {
		return domain.OrderHandle{}, ErrEventNotCompleted
	}

	receipt := fmt.Sprintf("order_rcptid_%d", payment.ID)
	order, err := s.gateway.CreateOrder(ctx, int64(payment.Amount)*100, receipt)
	if err != nil {
		return domain.OrderHandle{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if err := s.repo.SetGatewayRef(ctx, payment.ID, order.OrderID); err != nil {
		return domain.OrderHandle{}, fmt.Errorf("s.repo.SetGatewayRef -> %w", err)
	}

	return order, nil
}

// ConfirmGatewayPayment handles the gateway callback. An invalid signature
// never transitions the payment; a valid one records the final payment
// reference and flips the status exactly once.
func (s *PaymentService) ConfirmGatewayPayment(ctx context.Context, orderRef, paymentRef, signature string) (domain.Payment, error) {
	if !s.gateway.VerifySignature(orderRef, paymentRef, signature) {
		return domain.Payment{}, ErrSignatureInvalid
	}

	payment, err := s.repo.FindByGatewayRef(ctx, orderRef)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return domain.Payment{}, ErrPaymentNotFound
		}

		return domain.Payment{}, fmt.Errorf("s.repo.FindByGatewayRef -> %w", err)
	}

	paid, err := s.markPaid(ctx, payment.ID, paymentRef, time.Now())
	if err != nil {
		return domain.Payment{}, err
	}

	return paid, nil
}

func (s *PaymentService) History(ctx context.Context, principal domain.Principal) ([]domain.Payment, error) {
	if !principal.IsStaff() {
		return nil, ErrNotStaff
	}

	payments, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return payments, nil
}

// Earnings totals the paid-out amounts for the calling boy.
func (s *PaymentService) Earnings(ctx context.Context, principal domain.Principal) (int64, error) {
	if !principal.IsBoy() {
		return 0, ErrNotBoy
	}

	total, err := s.repo.SumPaidForBoy(ctx, principal.UserID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.SumPaidForBoy -> %w", err)
	}

	return total, nil
}

func (s *PaymentService) DashboardStats(ctx context.Context, principal domain.Principal) (domain.DashboardStats, error) {
	if !principal.IsStaff() {
		return domain.DashboardStats{}, ErrNotStaff
	}

	boys, err := s.userRepo.CountBoys(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.userRepo.CountBoys -> %w", err)
	}

	events, err := s.events.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.events.Count -> %w", err)
	}

	upcoming, err := s.events.CountUpcoming(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.events.CountUpcoming -> %w", err)
	}

	pending, err := s.repo.CountPending(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.repo.CountPending -> %w", err)
	}

	return domain.DashboardStats{
		TotalBoys:       boys,
		TotalEvents:     events,
		UpcomingEvents:  upcoming,
		PendingPayments: pending,
	}, nil
}

// markPaid performs the Pending->Paid compare-and-set and fires the
// completion notification. Notification failures are logged and swallowed,
// never unwinding the paid state.
func (s *PaymentService) markPaid(ctx context.Context, paymentID uint, ref string, paidAt time.Time) (domain.Payment, error) {
	paid, err := s.repo.MarkPaid(ctx, paymentID, ref, paidAt)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentAlreadyPaid) {
			return domain.Payment{}, ErrPaymentAlreadyPaid
		}
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return domain.Payment{}, ErrPaymentNotFound
		}

		return domain.Payment{}, fmt.Errorf("s.repo.MarkPaid -> %w", err)
	}

	s.notifyPaid(ctx, paid)

	return paid, nil
}

func (s *PaymentService) notifyPaid(ctx context.Context, payment domain.Payment) {
	if payment.Registration == nil || payment.Registration.Boy == nil || payment.Registration.Event == nil {
		return
	}

	boy := payment.Registration.Boy
	if boy.Email == "" {
		return
	}

	err := s.notifier.PaymentCompleted(ctx, boy.Email, boy.Name, payment.Registration.Event.Title, payment.Amount)
	if err != nil {
		zap.L().Warn("payment completed notification failed",
			zap.Uint("payment_id", payment.ID),
			zap.Error(err),
		)
	}
}
