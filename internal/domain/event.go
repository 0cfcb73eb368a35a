package domain

import "time"

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusCompleted = "completed"
)

type Event struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	Description    string    `json:"description,omitempty"`
	TotalSeats     int       `json:"total_seats"`
	PaymentPerBoy  int       `json:"payment_per_boy"`
	Status         string    `json:"status"`
	CreatedByID    uint      `json:"created_by_id,omitempty"`
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EventQuery captures the list filters exposed by the events endpoint.
type EventQuery struct {
	Search  string
	Status  string
	Sort    string
	Page    int
	PerPage int
}
