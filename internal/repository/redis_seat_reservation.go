package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

var reserveSeatsScript = redis.NewScript(`
    -- KEYS = [seat counter key, reservation log key]
    -- ARGV = [seatCount, logEntry]

    local total = redis.call("INCRBY", KEYS[1], ARGV[1])
    redis.call("RPUSH", KEYS[2], ARGV[2])

    return total
`)

type RedisSeatReservationStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedisSeatReservationStore(client redis.UniversalClient) *RedisSeatReservationStore {
	return &RedisSeatReservationStore{
		client: client,
		now:    time.Now,
	}
}

type redisReservationEntry struct {
	SeatCount  int       `json:"seatCount"`
	ReservedAt time.Time `json:"reservedAt"`
}

func (r *RedisSeatReservationStore) ReserveSeat(ctx context.Context, accountID int64, seatCount int) error {
	if seatCount < 0 {
		return fmt.Errorf("%w: seat count %d is negative", domain.ErrReservationRejected, seatCount)
	}

	entry, err := json.Marshal(redisReservationEntry{SeatCount: seatCount, ReservedAt: r.now().UTC()})
	if err != nil {
		return err
	}

	keys := []string{seatCounterKey(accountID), reservationLogKey(accountID)}

	err = reserveSeatsScript.Run(ctx, r.client, keys, seatCount, entry).Err()
	if err != nil {
		return fmt.Errorf("reserve seats: %w", err)
	}

	return nil
}

// SeatsReserved returns the number of seats reserved so far for the account.
func (r *RedisSeatReservationStore) SeatsReserved(ctx context.Context, accountID int64) (int, error) {
	seats, err := r.client.Get(ctx, seatCounterKey(accountID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, err
	}

	return seats, nil
}

func seatCounterKey(accountID int64) string {
	return fmt.Sprintf("seat_reservations:%d", accountID)
}

func reservationLogKey(accountID int64) string {
	return fmt.Sprintf("seat_reservations:%d:log", accountID)
}
