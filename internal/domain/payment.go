package domain

import "time"

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
)

type Payment struct {
	ID             uint       `json:"id"`
	RegistrationID uint       `json:"registration_id"`
	Amount         int        `json:"amount"`
	Status         string     `json:"status"`
	GatewayRef     string     `json:"gateway_ref,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Registration *Registration `json:"registration,omitempty"`
}

// OrderHandle is the gateway-side order created for a payment before capture.
type OrderHandle struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// DashboardStats is the staff dashboard summary.
type DashboardStats struct {
	TotalBoys       int64 `json:"total_boys"`
	TotalEvents     int64 `json:"total_events"`
	UpcomingEvents  int64 `json:"upcoming_events"`
	PendingPayments int64 `json:"pending_payments"`
}
