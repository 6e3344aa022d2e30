package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, machinery_id, renter_id, operator_id, start_date, end_date, with_operator, status, total_amount_cents, payment_status, location, COALESCE(notes, ''), created_on, updated_on`

// CreateReserving couples the booking insert with the availability flip
// in one transaction. The flip is a compare-and-set: it only succeeds if
// the machinery was still available, so of N concurrent creators exactly
// one commits a booking.
func (r *bookingRepository) CreateReserving(ctx context.Context, b *domain.Booking) error {
	location, err := jsonbOf(b.Location)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE machinery SET availability = false, updated_on = $1 WHERE id = $2 AND availability = true`,
		now, b.MachineryID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.UnavailableError("machinery is not available")
	}

	query := `INSERT INTO bookings (machinery_id, renter_id, operator_id, start_date, end_date, with_operator, status, total_amount_cents, payment_status, location, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		b.MachineryID, b.RenterID, b.OperatorID, b.StartDate, b.EndDate, b.WithOperator,
		b.Status, b.TotalAmountCents, b.PaymentStatus, location, b.Notes, now, now).Scan(&b.ID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	b.CreatedOn = now
	b.UpdatedOn = now
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	b, err := scanBooking(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("booking not found")
	}
	return b, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("booking not found")
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("booking not found")
	}
	return nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE renter_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, renterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *bookingRepository) CountActiveByMachinery(ctx context.Context, machineryID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM bookings WHERE machinery_id = $1 AND status IN ('pending', 'accepted')`
	err := r.db.QueryRowContext(ctx, query, machineryID).Scan(&count)
	return count, err
}

func scanBooking(scan func(dest ...any) error) (*domain.Booking, error) {
	b := &domain.Booking{}
	var location []byte
	err := scan(&b.ID, &b.MachineryID, &b.RenterID, &b.OperatorID, &b.StartDate, &b.EndDate,
		&b.WithOperator, &b.Status, &b.TotalAmountCents, &b.PaymentStatus,
		&location, &b.Notes, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if err := scanJSONB(location, &b.Location); err != nil {
		return nil, err
	}
	return b, nil
}
