package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/ports"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, customer_name, service_type, status, total_price,
payment_status, payment_method, amount_paid, payment_date,
date, start_time, end_time, staff_id, team_id,
is_recurring, recurring_group_id, recurring_sequence, recurring_pattern,
deleted_at, deleted_by, created_at, updated_at`

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) Find(ctx context.Context, filters ...ports.Filter) ([]domain.Booking, error) {
	where, args := buildWhere(filters, 0)
	query := fmt.Sprintf(`SELECT %s FROM bookings%s ORDER BY date ASC, recurring_sequence ASC`,
		bookingColumns, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	query := `
	UPDATE bookings
	SET status = $1, updated_at = NOW()
	WHERE id = $2
	`

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) UpdatePayment(ctx context.Context, upd domain.PaymentUpdate, filters ...ports.Filter) (int64, error) {
	where, args := buildWhere(filters, 4)
	query := fmt.Sprintf(`
	UPDATE bookings
	SET payment_status = $1, payment_method = $2, amount_paid = $3, payment_date = $4, updated_at = NOW()
	%s`, where)

	all := append([]any{upd.Status, upd.Method, upd.AmountPaid, upd.PaidAt}, args...)
	res, err := r.db.ExecContext(ctx, query, all...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *BookingRepository) Archive(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID, at time.Time) error {
	query := `
	UPDATE bookings
	SET deleted_at = $1, deleted_by = $2, updated_at = NOW()
	WHERE id = $3 AND deleted_at IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, at, deletedBy, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `
	UPDATE bookings
	SET deleted_at = NULL, deleted_by = NULL, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NOT NULL
	`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// buildWhere translates the typed filter predicates into a WHERE clause.
// offset is the number of placeholders already used by the caller.
func buildWhere(filters []ports.Filter, offset int) (string, []any) {
	var clauses []string
	var args []any

	next := func() int { return offset + len(args) + 1 }

	for _, f := range filters {
		switch v := f.(type) {
		case ports.ByID:
			clauses = append(clauses, fmt.Sprintf("id = $%d", next()))
			args = append(args, v.ID)
		case ports.ByIDIn:
			clauses = append(clauses, fmt.Sprintf("id = ANY($%d)", next()))
			args = append(args, pq.Array(v.IDs))
		case ports.ByGroupID:
			clauses = append(clauses, fmt.Sprintf("recurring_group_id = $%d", next()))
			args = append(args, v.GroupID)
		case ports.WithStatusIn:
			statuses := make([]string, len(v.Statuses))
			for i, s := range v.Statuses {
				statuses[i] = string(s)
			}
			clauses = append(clauses, fmt.Sprintf("status = ANY($%d)", next()))
			args = append(args, pq.Array(statuses))
		case ports.WithPaymentStatus:
			clauses = append(clauses, fmt.Sprintf("payment_status = $%d", next()))
			args = append(args, string(v.Status))
		case ports.ActiveOnly:
			clauses = append(clauses, "deleted_at IS NULL")
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		paymentDate sql.NullTime
		staffID     uuid.NullUUID
		teamID      uuid.NullUUID
		groupID     uuid.NullUUID
		deletedAt   sql.NullTime
		deletedBy   uuid.NullUUID
	)

	err := row.Scan(
		&b.ID, &b.CustomerName, &b.ServiceType, &b.Status, &b.TotalPrice,
		&b.PaymentStatus, &b.PaymentMethod, &b.AmountPaid, &paymentDate,
		&b.Date, &b.StartTime, &b.EndTime, &staffID, &teamID,
		&b.IsRecurring, &groupID, &b.RecurringSequence, &b.RecurringPattern,
		&deletedAt, &deletedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentDate.Valid {
		b.PaymentDate = &paymentDate.Time
	}
	if staffID.Valid {
		b.StaffID = &staffID.UUID
	}
	if teamID.Valid {
		b.TeamID = &teamID.UUID
	}
	if groupID.Valid {
		b.RecurringGroupID = &groupID.UUID
	}
	if deletedAt.Valid {
		b.DeletedAt = &deletedAt.Time
	}
	if deletedBy.Valid {
		b.DeletedBy = &deletedBy.UUID
	}
	return &b, nil
}
