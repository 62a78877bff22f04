package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

func (app *Application) PurchaseTicketsHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	accountId, err := strconv.ParseInt(chi.URLParam(r, "accountId"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("account ID must be an integer"))
		return
	}

	var input PurchaseTicketsRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	purchase, err := app.ticketService.PurchaseTickets(r.Context(), &accountId, toTicketTypeRequests(input.Tickets))
	if err != nil {
		var purchaseErr *domain.InvalidPurchaseError

		switch {
		case errors.As(err, &purchaseErr):
			logger.Warn("ticket purchase rejected", "account_id", accountId, "reason", purchaseErr.Reason)
			app.recordPurchase(r.Context(), purchaseOutcomeRejected)
			app.unprocessableEntityResponse(w, r, purchaseErr)
		default:
			app.recordPurchase(r.Context(), purchaseOutcomeFailed)
			app.serverErrorResponse(w, r, fmt.Errorf("ticket purchase for account %d failed: %w", accountId, err))
		}

		return
	}

	logger.Info("tickets purchased",
		"account_id", purchase.AccountID,
		"total_amount", purchase.TotalAmount,
		"total_seats", purchase.TotalSeats)
	app.recordPurchase(r.Context(), purchaseOutcomeCompleted)

	resp := PurchaseResponse{
		Purchase: Purchase{
			AccountId:   purchase.AccountID,
			TotalAmount: purchase.TotalAmount,
			TotalSeats:  purchase.TotalSeats,
		},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toTicketTypeRequests keeps a nil input slice nil and nil entries nil.
func toTicketTypeRequests(tickets []*TicketTypeRequest) []*domain.TicketTypeRequest {
	if tickets == nil {
		return nil
	}

	requests := make([]*domain.TicketTypeRequest, len(tickets))

	for i, t := range tickets {
		if t == nil {
			continue
		}

		requests[i] = domain.NewTicketTypeRequest(*t.Type, t.Quantity)
	}

	return requests
}
