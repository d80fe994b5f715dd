package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
)

type bookingRepository struct {
	db dbtx
}

func NewBookingRepository(db dbtx) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	query := `INSERT INTO bookings (id, item_id, borrower_id, start_date, end_date, total_price, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, b.ID, b.ItemID, b.BorrowerID, b.StartDate, b.EndDate,
		b.TotalPrice, b.Status, now, now)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT id, item_id, borrower_id, start_date, end_date, total_price, status, created_on, updated_on
	          FROM bookings WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT id, item_id, borrower_id, start_date, end_date, total_price, status, created_on, updated_on
	          FROM bookings WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) scanOne(row *sql.Row) (*domain.Booking, error) {
	b := &domain.Booking{}
	// total_price is nullable: bookings predating the price snapshot carry
	// NULL, which the engine reads as 0 and re-persists explicitly.
	var totalPrice sql.NullInt64
	err := row.Scan(&b.ID, &b.ItemID, &b.BorrowerID, &b.StartDate, &b.EndDate, &totalPrice, &b.Status, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if totalPrice.Valid {
		b.TotalPrice = int(totalPrice.Int64)
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status = $1, total_price = $2, updated_on = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, b.Status, b.TotalPrice, time.Now(), b.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

const bookingDetailColumns = `
	b.id, b.item_id, b.borrower_id, b.start_date, b.end_date, b.total_price, b.status, b.created_on, b.updated_on,
	i.title, i.price_per_day, i.owner_id,
	o.id, o.name, o.email, COALESCE(o.image, ''),
	u.id, u.name, u.email, COALESCE(u.image, '')`

const bookingDetailJoins = `
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users o ON o.id = i.owner_id
	JOIN users u ON u.id = b.borrower_id`

func (r *bookingRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]domain.BookingDetail, error) {
	query := `SELECT` + bookingDetailColumns + bookingDetailJoins +
		` WHERE b.borrower_id = $1 ORDER BY b.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, borrowerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.BookingDetail, error) {
	query := `SELECT` + bookingDetailColumns + bookingDetailJoins +
		` WHERE i.owner_id = $1 ORDER BY b.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

func scanBookingDetails(rows *sql.Rows) ([]domain.BookingDetail, error) {
	var details []domain.BookingDetail
	for rows.Next() {
		var d domain.BookingDetail
		var totalPrice sql.NullInt64
		if err := rows.Scan(
			&d.ID, &d.ItemID, &d.BorrowerID, &d.StartDate, &d.EndDate, &totalPrice, &d.Status, &d.CreatedOn, &d.UpdatedOn,
			&d.ItemTitle, &d.ItemPrice, &d.ItemOwnerID,
			&d.Owner.ID, &d.Owner.Name, &d.Owner.Email, &d.Owner.Image,
			&d.Borrower.ID, &d.Borrower.Name, &d.Borrower.Email, &d.Borrower.Image,
		); err != nil {
			return nil, err
		}
		if totalPrice.Valid {
			d.TotalPrice = int(totalPrice.Int64)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *bookingRepository) CountPendingByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	query := `SELECT count(*) FROM bookings b JOIN items i ON i.id = b.item_id
	          WHERE i.owner_id = $1 AND b.status = 'pending'`
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&count)
	return count, err
}

func (r *bookingRepository) CountByBorrowerInStatuses(ctx context.Context, borrowerID string, statuses []domain.BookingStatus) (int, error) {
	var count int
	query := `SELECT count(*) FROM bookings WHERE borrower_id = $1 AND status = ANY($2)`
	err := r.db.QueryRowContext(ctx, query, borrowerID, pq.Array(statusStrings(statuses))).Scan(&count)
	return count, err
}

func (r *bookingRepository) CountByOwnerInStatuses(ctx context.Context, ownerID string, statuses []domain.BookingStatus) (int, error) {
	var count int
	query := `SELECT count(*) FROM bookings b JOIN items i ON i.id = b.item_id
	          WHERE i.owner_id = $1 AND b.status = ANY($2)`
	err := r.db.QueryRowContext(ctx, query, ownerID, pq.Array(statusStrings(statuses))).Scan(&count)
	return count, err
}

func (r *bookingRepository) ListStalePending(ctx context.Context, before time.Time) ([]domain.Booking, error) {
	query := `SELECT id, item_id, borrower_id, start_date, end_date, total_price, status, created_on, updated_on
	          FROM bookings WHERE status = 'pending' AND start_date < $1 ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var totalPrice sql.NullInt64
		if err := rows.Scan(&b.ID, &b.ItemID, &b.BorrowerID, &b.StartDate, &b.EndDate, &totalPrice,
			&b.Status, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, fmt.Errorf("scan stale pending booking: %w", err)
		}
		if totalPrice.Valid {
			b.TotalPrice = int(totalPrice.Int64)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
