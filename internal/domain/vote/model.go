package vote

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	OptionID  uuid.UUID `json:"option_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// OptionCount is one option's denormalized tally as stored on poll_options.
type OptionCount struct {
	OptionID uuid.UUID
	Text     string
	Votes    int64
}

type Repository interface {
	// Cast checks the poll is active, inserts the vote and increments the
	// option's vote_count as a single transaction. The unique index on
	// (poll_id, user_id) is the duplicate guard; concurrent identical casts
	// must leave exactly one row.
	Cast(ctx context.Context, v *Vote) error
	// OptionCounts returns the poll's options with their tallies in
	// creation order, or poll.ErrNotFound for a missing poll.
	OptionCounts(ctx context.Context, pollID uuid.UUID) ([]OptionCount, error)
	// VotedOption reports the option the user voted for, if any.
	VotedOption(ctx context.Context, pollID, userID uuid.UUID) (uuid.UUID, bool, error)
}
