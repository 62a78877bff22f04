package mocks

import (
	"context"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatReservationService struct {
	mock.Mock
	domain.SeatReservationService
}

func (m *MockSeatReservationService) ReserveSeat(ctx context.Context, accountID int64, seatCount int) error {
	args := m.Called(ctx, accountID, seatCount)
	return args.Error(0)
}
