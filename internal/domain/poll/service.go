package poll

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("poll not found")
	ErrTitleRequired  = errors.New("poll title is required")
	ErrTooFewOptions  = errors.New("poll needs at least 2 distinct options")
	ErrTooManyOptions = errors.New("poll allows at most 6 options")
	ErrInvalidStatus  = errors.New("invalid poll status")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the title and option texts and persists the poll in the
// active state. Blank option texts are dropped and duplicates collapse before
// the 2..6 bound is checked.
func (s *Service) Create(ctx context.Context, title string, description *string, optionTexts []string, creatorID uuid.UUID) (*Poll, []Option, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil, ErrTitleRequired
	}

	texts := cleanOptions(optionTexts)
	if len(texts) < MinOptions {
		return nil, nil, ErrTooFewOptions
	}
	if len(texts) > MaxOptions {
		return nil, nil, ErrTooManyOptions
	}

	p := &Poll{
		Title:       title,
		Description: trimPtr(description),
		Status:      StatusActive,
		CreatedBy:   creatorID,
	}

	opts := make([]Option, 0, len(texts))
	for _, text := range texts {
		opts = append(opts, Option{Text: text})
	}

	if err := s.repo.Create(ctx, p, opts); err != nil {
		return nil, nil, err
	}
	return p, opts, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Poll, []Option, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status *string) ([]Poll, error) {
	if status != nil && *status != StatusActive && *status != StatusClosed {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, status)
}

func (s *Service) Close(ctx context.Context, id uuid.UUID) error {
	return s.repo.Close(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func cleanOptions(texts []string) []string {
	seen := make(map[string]bool, len(texts))
	res := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		res = append(res, t)
	}
	return res
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
