package vote

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
)

var (
	ErrAlreadyVoted    = errors.New("user already voted in this poll")
	ErrPollClosed      = errors.New("poll is closed")
	ErrOptionNotInPoll = errors.New("option does not belong to poll")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Cast records one vote for the user. All precondition checks run inside the
// repository transaction so a retried or double-submitted request cannot
// slip a second vote past the uniqueness guard.
func (s *Service) Cast(ctx context.Context, pollID, optionID, userID uuid.UUID) error {
	if optionID == uuid.Nil {
		return ErrOptionNotInPoll
	}
	v := &Vote{
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
	}
	return s.repo.Cast(ctx, v)
}

// Result is one option's share of the tally. Percentage is rounded to the
// nearest integer, so percentages across options need not sum to 100.
type Result struct {
	OptionID   uuid.UUID `json:"option_id"`
	Text       string    `json:"option_text"`
	Votes      int64     `json:"vote_count"`
	Percentage int       `json:"percentage"`
}

func (s *Service) Results(ctx context.Context, pollID uuid.UUID) ([]Result, int64, error) {
	counts, err := s.repo.OptionCounts(ctx, pollID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	for _, c := range counts {
		total += c.Votes
	}

	results := make([]Result, 0, len(counts))
	for _, c := range counts {
		var pct int
		if total > 0 {
			pct = int(math.Round(float64(c.Votes) * 100 / float64(total)))
		}
		results = append(results, Result{
			OptionID:   c.OptionID,
			Text:       c.Text,
			Votes:      c.Votes,
			Percentage: pct,
		})
	}

	return results, total, nil
}

// VotedOption reports which option the user picked, driving the
// ballot-or-results display state.
func (s *Service) VotedOption(ctx context.Context, pollID, userID uuid.UUID) (uuid.UUID, bool, error) {
	return s.repo.VotedOption(ctx, pollID, userID)
}

func (s *Service) HasVoted(ctx context.Context, pollID, userID uuid.UUID) (bool, error) {
	_, ok, err := s.repo.VotedOption(ctx, pollID, userID)
	return ok, err
}
