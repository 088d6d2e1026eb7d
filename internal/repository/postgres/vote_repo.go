package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"formae/internal/domain/poll"
	"formae/internal/domain/vote"
)

type VoteRepo struct {
	db *sql.DB
}

func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// Cast runs the status check, the vote insert and the tally increment in a
// single transaction. The unique index on (poll_id, user_id) serializes
// concurrent casts from the same voter; no prior existence check is made.
// FOR SHARE pins the poll row so a concurrent close cannot commit between
// the status read and this transaction's commit.
func (r *VoteRepo) Cast(ctx context.Context, v *vote.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM polls WHERE id = $1 FOR SHARE`, v.PollID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return poll.ErrNotFound
		}
		return err
	}
	if status != poll.StatusActive {
		return vote.ErrPollClosed
	}

	err = tx.QueryRowContext(ctx, `
        INSERT INTO poll_votes (poll_id, option_id, user_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `, v.PollID, v.OptionID, v.UserID).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return vote.ErrAlreadyVoted
		}
		if isForeignKeyViolation(err) {
			return vote.ErrOptionNotInPoll
		}
		return err
	}

	res, err := tx.ExecContext(ctx, `
        UPDATE poll_options SET vote_count = vote_count + 1
        WHERE id = $1 AND poll_id = $2
    `, v.OptionID, v.PollID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Option exists but belongs to another poll; roll the vote back.
		return vote.ErrOptionNotInPoll
	}

	return tx.Commit()
}

func (r *VoteRepo) OptionCounts(ctx context.Context, pollID uuid.UUID) ([]vote.OptionCount, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM polls WHERE id = $1)`, pollID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, poll.ErrNotFound
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, option_text, vote_count
        FROM poll_options
        WHERE poll_id = $1
        ORDER BY created_at, id
    `, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []vote.OptionCount
	for rows.Next() {
		var c vote.OptionCount
		if err := rows.Scan(&c.OptionID, &c.Text, &c.Votes); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *VoteRepo) VotedOption(ctx context.Context, pollID, userID uuid.UUID) (uuid.UUID, bool, error) {
	var optionID uuid.UUID
	err := r.db.QueryRowContext(ctx, `
        SELECT option_id FROM poll_votes
        WHERE poll_id = $1 AND user_id = $2
    `, pollID, userID).Scan(&optionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return optionID, true, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
