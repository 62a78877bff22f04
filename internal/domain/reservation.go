package domain

import (
	"context"
	"time"
)

// SeatReservationService reserves a number of seats for an account.
type SeatReservationService interface {
	ReserveSeat(ctx context.Context, accountID int64, seatCount int) error
}

type SeatReservation struct {
	ID        int
	AccountID int64
	SeatCount int
	CreatedAt time.Time
}
