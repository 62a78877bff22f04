package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

type PostgresSeatReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatReservationRepository(db *pgxpool.Pool) *PostgresSeatReservationRepository {
	return &PostgresSeatReservationRepository{
		db: db,
	}
}

func (p *PostgresSeatReservationRepository) ReserveSeat(ctx context.Context, accountID int64, seatCount int) error {
	query := `
		INSERT INTO seat_reservations (account_id, seat_count)
		VALUES ($1, $2)
	`

	_, err := p.db.Exec(ctx, query, accountID, seatCount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return fmt.Errorf("%w: %s", domain.ErrReservationRejected, pgErr.ConstraintName)
		}

		return err
	}

	return nil
}

func (p *PostgresSeatReservationRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.SeatReservation, error) {
	query := `
		SELECT id, account_id, seat_count, created_at
		FROM seat_reservations
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := p.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var reservations []domain.SeatReservation

	for rows.Next() {
		var reservation domain.SeatReservation

		if err := rows.Scan(
			&reservation.ID,
			&reservation.AccountID,
			&reservation.SeatCount,
			&reservation.CreatedAt,
		); err != nil {
			return nil, err
		}

		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}
