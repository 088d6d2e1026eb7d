package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"formae/internal/domain/announcement"
)

type AnnouncementRepo struct {
	db *sql.DB
}

func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

func (r *AnnouncementRepo) Create(ctx context.Context, a *announcement.Announcement) error {
	query := `
        INSERT INTO announcements (title, content, created_by)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	return r.db.QueryRowContext(ctx, query, a.Title, a.Content, a.CreatedBy).
		Scan(&a.ID, &a.CreatedAt)
}

func (r *AnnouncementRepo) List(ctx context.Context) ([]announcement.Announcement, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, title, content, created_by, created_at
        FROM announcements ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []announcement.Announcement
	for rows.Next() {
		var a announcement.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *AnnouncementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return announcement.ErrNotFound
	}
	return nil
}
