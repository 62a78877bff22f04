// Package ticket validates and prices cinema ticket purchases before handing
// the payment and the seat allocation over to external services.
package ticket

import (
	"context"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

const MaxTicketsPerPurchase = 20

type Service struct {
	paymentService     domain.TicketPaymentService
	reservationService domain.SeatReservationService
}

func NewService(
	paymentService domain.TicketPaymentService,
	reservationService domain.SeatReservationService) *Service {

	return &Service{
		paymentService:     paymentService,
		reservationService: reservationService,
	}
}

// PurchaseTickets validates the request, charges the account for the total
// price and reserves a seat for every ticket except infant ones.
//
// A nil accountID or a nil requests slice is treated as absent, as is any nil
// entry in requests. Rule violations are reported as *domain.InvalidPurchaseError
// and leave both services untouched. Errors from the services are returned as is.
func (s *Service) PurchaseTickets(
	ctx context.Context,
	accountID *int64,
	requests []*domain.TicketTypeRequest) (domain.Purchase, error) {

	err := Validate(accountID, requests)
	if err != nil {
		return domain.Purchase{}, err
	}

	purchase := domain.Purchase{
		AccountID:   *accountID,
		TotalAmount: totalAmount(requests),
		TotalSeats:  totalSeats(requests),
	}

	err = s.paymentService.MakePayment(ctx, purchase.AccountID, purchase.TotalAmount)
	if err != nil {
		return domain.Purchase{}, err
	}

	err = s.reservationService.ReserveSeat(ctx, purchase.AccountID, purchase.TotalSeats)
	if err != nil {
		return domain.Purchase{}, err
	}

	return purchase, nil
}

// Validate checks a purchase request against the business rules without
// side effects. The first broken rule decides the returned reason.
func Validate(accountID *int64, requests []*domain.TicketTypeRequest) error {
	if accountID == nil || *accountID <= 0 {
		return domain.NewInvalidPurchaseError(domain.ReasonInvalidAccountId)
	}

	if requests == nil || hasNilRequest(requests) {
		return domain.NewInvalidPurchaseError(domain.ReasonNullTicketRequests)
	}

	if countEntries(requests, domain.TicketTypeAdult) == 0 {
		return domain.NewInvalidPurchaseError(domain.ReasonNoAdultTicket)
	}

	if exceedsTicketLimit(requests) {
		return domain.NewInvalidPurchaseError(domain.ReasonTooManyTickets)
	}

	// Compares request entries, not ticket quantities.
	if countEntries(requests, domain.TicketTypeInfant) > countEntries(requests, domain.TicketTypeAdult) {
		return domain.NewInvalidPurchaseError(domain.ReasonMoreInfantsThanAdults)
	}

	return nil
}

func hasNilRequest(requests []*domain.TicketTypeRequest) bool {
	for _, r := range requests {
		if r == nil {
			return true
		}
	}

	return false
}

func countEntries(requests []*domain.TicketTypeRequest, ticketType domain.TicketType) int {
	count := 0
	for _, r := range requests {
		if r.TicketType() == ticketType {
			count++
		}
	}

	return count
}

// exceedsTicketLimit reports whether the running quantity total goes past
// MaxTicketsPerPurchase. Each entry is compared before it is added so the
// total never overflows.
func exceedsTicketLimit(requests []*domain.TicketTypeRequest) bool {
	total := 0
	for _, r := range requests {
		quantity := r.Quantity()
		if quantity > 0 && total > MaxTicketsPerPurchase-quantity {
			return true
		}

		total += quantity
	}

	return false
}

func totalAmount(requests []*domain.TicketTypeRequest) int {
	total := 0
	for _, r := range requests {
		total += r.TicketType().Price() * r.Quantity()
	}

	return total
}

func totalSeats(requests []*domain.TicketTypeRequest) int {
	total := 0
	for _, r := range requests {
		if r.TicketType().OccupiesSeat() {
			total += r.Quantity()
		}
	}

	return total
}
