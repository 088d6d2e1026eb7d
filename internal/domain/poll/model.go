package poll

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// MaxOptions caps the option list at creation time; the option set is
// immutable afterwards.
const (
	MinOptions = 2
	MaxOptions = 6
)

type Poll struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

type Option struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	Text      string    `json:"option_text"`
	VoteCount int64     `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	// Create persists the poll and all its options in one transaction.
	Create(ctx context.Context, p *Poll, options []Option) error
	GetByID(ctx context.Context, id uuid.UUID) (*Poll, []Option, error)
	List(ctx context.Context, status *string) ([]Poll, error)
	// Close transitions an active poll to closed and stamps closed_at.
	// Closing an already-closed poll changes nothing and is not an error.
	Close(ctx context.Context, id uuid.UUID) error
	// Delete removes the poll's votes, then its options, then the poll.
	Delete(ctx context.Context, id uuid.UUID) error
}
