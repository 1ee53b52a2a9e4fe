package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lamergameryt/entrypoint/internal/domain"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// CreateEvent inserts the event and links its performer tags. Performer rows
// are shared across events and upserted by name.
func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		const stmt = `
INSERT INTO events (name, description, start_date)
VALUES ($1, $2, $3)
RETURNING id`
		if err := r.queryRow(txCtx, stmt, event.Name, event.Description, event.StartDate).Scan(&event.ID); err != nil {
			return fmt.Errorf("create event: %w", err)
		}

		for _, performer := range event.Performers {
			var performerID int64
			const upsert = `
INSERT INTO performers (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id`
			if err := r.queryRow(txCtx, upsert, performer).Scan(&performerID); err != nil {
				return fmt.Errorf("upsert performer: %w", err)
			}
			const link = `
INSERT INTO event_performers (event_id, performer_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
			if _, err := r.exec(txCtx, link, event.ID, performerID); err != nil {
				return fmt.Errorf("link performer: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// EventExists reports whether an event row exists. Runs inside the caller's
// transaction when one is carried by ctx.
func (r *EventRepository) EventExists(ctx context.Context, eventID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`
	var exists bool
	if err := r.queryRow(ctx, query, eventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check event: %w", err)
	}
	return exists, nil
}

// FilterEvents returns events whose start date lies in (after, until]:
// strictly after the lower bound, up to and including the upper bound.
func (r *EventRepository) FilterEvents(ctx context.Context, after, until time.Time) ([]domain.Event, error) {
	const query = `
SELECT id, name, description, start_date
FROM events
WHERE start_date > $1 AND start_date <= $2
ORDER BY start_date ASC`
	return r.listEvents(ctx, query, after, until)
}

// SearchEvents returns events whose name contains the given substring
// (case-insensitive) and whose start date is strictly after the lower bound.
// Both filters always apply.
func (r *EventRepository) SearchEvents(ctx context.Context, name string, startsAfter time.Time) ([]domain.Event, error) {
	const query = `
SELECT id, name, description, start_date
FROM events
WHERE name ILIKE '%' || $1 || '%' AND start_date > $2
ORDER BY start_date ASC`
	return r.listEvents(ctx, query, name, startsAfter)
}

// SearchEventsWithin is SearchEvents with an explicit upper bound on the
// start date, sharing the (after, until] window semantics of FilterEvents.
func (r *EventRepository) SearchEventsWithin(ctx context.Context, name string, after, until time.Time) ([]domain.Event, error) {
	const query = `
SELECT id, name, description, start_date
FROM events
WHERE name ILIKE '%' || $1 || '%' AND start_date > $2 AND start_date <= $3
ORDER BY start_date ASC`
	return r.listEvents(ctx, query, name, after, until)
}

// DeleteEvent removes the event, its tickets and its performer links in one
// transaction. Tickets are deleted by explicit statement, not FK cascade, so
// the rule "delete event => delete its tickets" stays visible here.
func (r *EventRepository) DeleteEvent(ctx context.Context, eventID int64) error {
	return withTx(ctx, r.pool, func(txCtx context.Context) error {
		if _, err := r.exec(txCtx, `DELETE FROM event_performers WHERE event_id = $1`, eventID); err != nil {
			return fmt.Errorf("delete event performers: %w", err)
		}
		if _, err := r.exec(txCtx, `DELETE FROM tickets WHERE event_id = $1`, eventID); err != nil {
			return fmt.Errorf("delete event tickets: %w", err)
		}
		tag, err := r.exec(txCtx, `DELETE FROM events WHERE id = $1`, eventID)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrEventNotFound
		}
		return nil
	})
}

func (r *EventRepository) listEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(&event.ID, &event.Name, &event.Description, &event.StartDate); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}

	if err := r.loadPerformers(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// loadPerformers attaches performer tags to every listed event with a single
// batched query so the read path stays one extra round trip at most.
func (r *EventRepository) loadPerformers(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(events))
	byID := make(map[int64]*domain.Event, len(events))
	for i := range events {
		events[i].Performers = []string{}
		ids = append(ids, events[i].ID)
		byID[events[i].ID] = &events[i]
	}

	const query = `
SELECT ep.event_id, p.name
FROM event_performers ep
JOIN performers p ON p.id = ep.performer_id
WHERE ep.event_id = ANY($1)
ORDER BY p.name ASC`
	rows, err := r.query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load performers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		var name string
		if err := rows.Scan(&eventID, &name); err != nil {
			return fmt.Errorf("scan performer: %w", err)
		}
		if event, ok := byID[eventID]; ok {
			event.Performers = append(event.Performers, name)
		}
	}
	if rows.Err() != nil {
		return fmt.Errorf("iterate performers: %w", rows.Err())
	}
	return nil
}

func (r *EventRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *EventRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *EventRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
