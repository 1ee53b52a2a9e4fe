package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lamergameryt/entrypoint/internal/domain"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *TicketRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	const query = `
SELECT id, event_id, seat_number, status, purchased_by_user_id
FROM tickets
WHERE event_id = $1`
	return r.listTickets(ctx, query, eventID)
}

func (r *TicketRepository) ListByEventAndStatus(ctx context.Context, eventID int64, status domain.TicketStatus) ([]domain.Ticket, error) {
	const query = `
SELECT id, event_id, seat_number, status, purchased_by_user_id
FROM tickets
WHERE event_id = $1 AND status = $2`
	return r.listTickets(ctx, query, eventID, status)
}

// CreateTicket inserts the ticket. Seat uniqueness is not pre-checked; the
// (event_id, seat_number) unique index decides concurrent races and the
// losing insert surfaces as ErrSeatTaken.
func (r *TicketRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	const stmt = `
INSERT INTO tickets (event_id, seat_number, status)
VALUES ($1, $2, $3)
RETURNING id`
	err := r.queryRow(ctx, stmt, ticket.EventID, ticket.SeatNumber, ticket.Status).Scan(&ticket.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Ticket{}, domain.ErrSeatTaken
		}
		if isForeignKeyViolation(err) {
			return domain.Ticket{}, domain.ErrEventNotFound
		}
		return domain.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	return ticket, nil
}

// DeleteTicket issues a single compound-predicate delete matching both ids.
// Zero affected rows means either id is wrong or the ticket belongs to a
// different event; both report not found.
func (r *TicketRepository) DeleteTicket(ctx context.Context, ticketID, eventID int64) error {
	const stmt = `DELETE FROM tickets WHERE id = $1 AND event_id = $2`
	tag, err := r.exec(ctx, stmt, ticketID, eventID)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) listTickets(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(&ticket.ID, &ticket.EventID, &ticket.SeatNumber, &ticket.Status, &ticket.PurchasedByUserID); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tickets: %w", rows.Err())
	}
	return tickets, nil
}

func (r *TicketRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *TicketRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *TicketRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
