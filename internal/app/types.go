package app

import (
	"time"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

// A null element is kept as nil so that it reaches the purchase rules as an absent entry.
type PurchaseTicketsRequest struct {
	Tickets []*TicketTypeRequest `json:"tickets" validate:"omitempty,dive"`
}

type TicketTypeRequest struct {
	Type     *domain.TicketType `json:"type" validate:"required,ticket_type"`
	Quantity int                `json:"quantity" validate:"gte=0,lte=20"`
}

type Purchase struct {
	AccountId   int64 `json:"accountId"`
	TotalAmount int   `json:"totalAmount"`
	TotalSeats  int   `json:"totalSeats"`
}

type PurchaseResponse struct {
	Purchase Purchase `json:"purchase"`
}
