package domain

import "errors"

var (
	ErrInvalidPurchase     = errors.New("invalid purchase")
	ErrUnknownTicketType   = errors.New("unknown ticket type")
	ErrPaymentDeclined     = errors.New("payment declined")
	ErrReservationRejected = errors.New("seat reservation rejected")
)

const (
	ReasonInvalidAccountId      = "Invalid Account Id"
	ReasonNullTicketRequests    = "Ticket Type Requests can not be null"
	ReasonNoAdultTicket         = "There must be at least one adult to purchase tickets"
	ReasonTooManyTickets        = "There can not be more than 20 tickets in a purchase"
	ReasonMoreInfantsThanAdults = "There can not be more infants than adults"
)

// InvalidPurchaseError is returned when a purchase request breaks a business rule.
// The reason is meant to be shown to the caller as is.
type InvalidPurchaseError struct {
	Reason string
}

func NewInvalidPurchaseError(reason string) *InvalidPurchaseError {
	return &InvalidPurchaseError{Reason: reason}
}

func (e *InvalidPurchaseError) Error() string {
	return e.Reason
}

func (e *InvalidPurchaseError) Is(target error) bool {
	return target == ErrInvalidPurchase
}
