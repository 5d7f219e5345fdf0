package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/pagination"
)

// Repository is the query surface the booking engine relies on. All list
// methods return bookings ordered by start descending (ties broken by id
// ascending) and are paged.
type Repository interface {
	// Create inserts a WAITING booking. It runs in one transaction that
	// locks the item row before probing for a conflicting APPROVED
	// booking, which serializes concurrent creates on the same item.
	// A conflict is reported as ErrInvalidRange.
	Create(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id int64) (*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error

	ListByBooker(ctx context.Context, bookerID int64, page pagination.Page) ([]*Booking, error)
	ListByBookerCurrent(ctx context.Context, bookerID int64, at time.Time, page pagination.Page) ([]*Booking, error)
	ListByBookerPast(ctx context.Context, bookerID int64, at time.Time, page pagination.Page) ([]*Booking, error)
	ListByBookerFuture(ctx context.Context, bookerID int64, at time.Time, page pagination.Page) ([]*Booking, error)
	ListByBookerStatus(ctx context.Context, bookerID int64, status Status, page pagination.Page) ([]*Booking, error)

	ListByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]*Booking, error)
	ListByOwnerCurrent(ctx context.Context, ownerID int64, at time.Time, page pagination.Page) ([]*Booking, error)
	ListByOwnerPast(ctx context.Context, ownerID int64, at time.Time, page pagination.Page) ([]*Booking, error)
	ListByOwnerFuture(ctx context.Context, ownerID int64, at time.Time, page pagination.Page) ([]*Booking, error)
	ListByOwnerStatus(ctx context.Context, ownerID int64, status Status, page pagination.Page) ([]*Booking, error)

	// LastApprovedBefore returns the most recent APPROVED booking of the
	// item starting before at, or nil when there is none.
	LastApprovedBefore(ctx context.Context, itemID int64, at time.Time) (*Booking, error)

	// NextApprovedAfter returns the earliest APPROVED booking of the
	// item starting after at, or nil when there is none.
	NextApprovedAfter(ctx context.Context, itemID int64, at time.Time) (*Booking, error)

	// HasFinishedApproved reports whether the booker has an APPROVED
	// booking of the item that ended strictly before at.
	HasFinishedApproved(ctx context.Context, itemID, bookerID int64, at time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func baseSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.item_id", "i.name", "b.booker_id", "u.name",
		"b.start_time", "b.end_time", "b.status",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Row lock on the item serializes concurrent creates: without it two
	// requests could both pass the probe below and insert conflicting
	// bookings.
	var itemID int64
	err = tx.QueryRow(ctx, `SELECT id FROM public.items WHERE id = $1 FOR UPDATE`, b.ItemID).Scan(&itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.Newf(http.StatusNotFound, "Item with id = %d not exist.", b.ItemID)
		}
		return fmt.Errorf("lock item failed: %w", err)
	}

	// The probe rejects a proposed interval lying strictly inside an
	// APPROVED one: existing.start < new.start AND existing.end > new.end.
	// Deliberately weaker than full interval overlap; partial overlaps
	// are left for the owner to arbitrate at approval time.
	const probe = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE item_id = $1 AND status = $2 AND start_time < $3 AND end_time > $4
		)
	`
	var conflict bool
	if err := tx.QueryRow(ctx, probe, b.ItemID, StatusApproved, b.Start, b.End).Scan(&conflict); err != nil {
		return fmt.Errorf("check booking overlap failed: %w", err)
	}
	if conflict {
		return ErrInvalidRange
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}
	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := baseSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID int64, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page, squirrel.Eq{"b.booker_id": bookerID})
}

func (r *pgxRepository) ListByBookerCurrent(ctx context.Context, bookerID int64, at time.Time, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page,
		squirrel.Eq{"b.booker_id": bookerID},
		squirrel.Lt{"b.start_time": at},
		squirrel.Gt{"b.end_time": at},
	)
}

func (r *pgxRepository) ListByBookerPast(ctx context.Context, bookerID int64, at time.Time, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page,
		squirrel.Eq{"b.booker_id": bookerID},
		squirrel.Lt{"b.end_time": at},
	)
}

func (r *pgxRepository) ListByBookerFuture(ctx context.Context, bookerID int64, at time.Time, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page,
		squirrel.Eq{"b.booker_id": bookerID},
		squirrel.Gt{"b.start_time": at},
	)
}

func (r *pgxRepository) ListByBookerStatus(ctx context.Context, bookerID int64, status Status, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page,
		squirrel.Eq{"b.booker_id": bookerID},
		squirrel.Eq{"b.status": status},
	)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page, squirrel.Eq{"i.owner_id": ownerID})
}

func (r *pgxRepository) ListByOwnerCurrent(ctx context.Context, ownerID int64, at time.Time, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page,
		squirrel.Eq{"i.owner_id": ownerID},
		squirrel.Lt{"b.start_time": at},
		squirrel.Gt{"b.end_time": at},
	)
}

func (r *pgxRepository) ListByOwnerPast(ctx context.Context, ownerID int64, at time.Time, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page,
		squirrel.Eq{"i.owner_id": ownerID},
		squirrel.Lt{"b.end_time": at},
	)
}

func (r *pgxRepository) ListByOwnerFuture(ctx context.Context, ownerID int64, at time.Time, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page,
		squirrel.Eq{"i.owner_id": ownerID},
		squirrel.Gt{"b.start_time": at},
	)
}

func (r *pgxRepository) ListByOwnerStatus(ctx context.Context, ownerID int64, status Status, page pagination.Page) ([]*Booking, error) {
	return r.list(ctx, page,
		squirrel.Eq{"i.owner_id": ownerID},
		squirrel.Eq{"b.status": status},
	)
}

func (r *pgxRepository) LastApprovedBefore(ctx context.Context, itemID int64, at time.Time) (*Booking, error) {
	return r.first(ctx, "b.start_time DESC", squirrel.And{
		squirrel.Eq{"b.item_id": itemID},
		squirrel.Eq{"b.status": StatusApproved},
		squirrel.Lt{"b.start_time": at},
	})
}

func (r *pgxRepository) NextApprovedAfter(ctx context.Context, itemID int64, at time.Time) (*Booking, error) {
	return r.first(ctx, "b.start_time ASC", squirrel.And{
		squirrel.Eq{"b.item_id": itemID},
		squirrel.Eq{"b.status": StatusApproved},
		squirrel.Gt{"b.start_time": at},
	})
}

func (r *pgxRepository) HasFinishedApproved(ctx context.Context, itemID, bookerID int64, at time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE item_id = $1 AND booker_id = $2 AND status = $3 AND end_time < $4
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, itemID, bookerID, StatusApproved, at).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) list(ctx context.Context, page pagination.Page, conds ...squirrel.Sqlizer) ([]*Booking, error) {
	builder := baseSelect()
	for _, cond := range conds {
		builder = builder.Where(cond)
	}
	query, args, err := builder.
		OrderBy("b.start_time DESC", "b.id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) first(ctx context.Context, order string, cond squirrel.Sqlizer) (*Booking, error) {
	query, args, err := baseSelect().
		Where(cond).
		OrderBy(order).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking probe query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("booking probe failed: %w", err)
	}
	return b, nil
}
