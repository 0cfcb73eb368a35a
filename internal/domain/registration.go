package domain

import "time"

type Registration struct {
	ID         uint      `json:"id"`
	EventID    uint      `json:"event_id"`
	BoyID      uint      `json:"boy_id"`
	SeatNumber int       `json:"seat_number"`
	CreatedAt  time.Time `json:"created_at"`

	Boy   *User  `json:"boy,omitempty"`
	Event *Event `json:"event,omitempty"`
}
