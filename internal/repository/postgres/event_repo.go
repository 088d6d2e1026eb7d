package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"formae/internal/domain/event"
)

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Create(ctx context.Context, e *event.Event) error {
	query := `
        INSERT INTO events (title, description, date, location, image_url, status, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	return r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Location, e.ImageURL, e.Status, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *EventRepo) List(ctx context.Context) ([]event.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, title, description, date, location, image_url, status, created_by, created_at
        FROM events ORDER BY date
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []event.Event
	for rows.Next() {
		var e event.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date,
			&e.Location, &e.ImageURL, &e.Status, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	e := &event.Event{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, title, description, date, location, image_url, status, created_by, created_at
        FROM events WHERE id = $1
    `, id).Scan(&e.ID, &e.Title, &e.Description, &e.Date,
		&e.Location, &e.ImageURL, &e.Status, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EventRepo) Update(ctx context.Context, id uuid.UUID, input event.UpdateInput) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE events
        SET title       = COALESCE($1, title),
            description = COALESCE($2, description),
            date        = COALESCE($3, date),
            location    = COALESCE($4, location),
            image_url   = COALESCE($5, image_url),
            status      = COALESCE($6, status)
        WHERE id = $7
    `, input.Title, input.Description, input.Date, input.Location, input.ImageURL, input.Status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return event.ErrNotFound
	}
	return nil
}

func (r *EventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return event.ErrNotFound
	}
	return nil
}
