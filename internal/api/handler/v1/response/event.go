package response

import "github.com/eventcrew/catering-api/internal/domain"

type ListEventsResponse struct {
	Events  []domain.Event `json:"events"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

type SimulateAllResponse struct {
	PaymentsSimulated int `json:"payments_simulated"`
}

type EarningsResponse struct {
	TotalEarnings int64 `json:"total_earnings"`
}
