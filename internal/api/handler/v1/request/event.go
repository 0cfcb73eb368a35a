package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	TotalSeats    int       `json:"total_seats"`
	PaymentPerBoy int       `json:"payment_per_boy"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.TotalSeats, validation.Required, validation.Min(1)),
		validation.Field(&req.PaymentPerBoy, validation.Required, validation.Min(1)),
	)
}

type UpdateEventRequest struct {
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	TotalSeats    int       `json:"total_seats"`
	PaymentPerBoy int       `json:"payment_per_boy"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.TotalSeats, validation.Required, validation.Min(1)),
		validation.Field(&req.PaymentPerBoy, validation.Required, validation.Min(1)),
	)
}

type ListEventsRequest struct {
	Search  string `form:"q"`
	Status  string `form:"status"`
	Sort    string `form:"sort"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

func (req *ListEventsRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Status, validation.In("", "all", "upcoming", "completed")),
		validation.Field(&req.Sort, validation.In("", "date_asc", "date_desc", "title_asc", "title_desc")),
		validation.Field(&req.Page, validation.Min(0)),
		validation.Field(&req.PerPage, validation.Min(0), validation.Max(100)),
	)
}
