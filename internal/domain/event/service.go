package event

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("event not found")
	ErrInvalidStatus = errors.New("invalid event status")
	ErrTitleRequired = errors.New("event title is required")
	ErrDateRequired  = errors.New("event date is required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, title string, description *string, date time.Time, location, imageURL *string, createdBy uuid.UUID) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if date.IsZero() {
		return nil, ErrDateRequired
	}

	e := &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		ImageURL:    imageURL,
		Status:      StatusUpcoming,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) error {
	if input.Status != nil {
		switch *input.Status {
		case StatusUpcoming, StatusCompleted, StatusCancelled:
		default:
			return ErrInvalidStatus
		}
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return ErrTitleRequired
		}
		input.Title = &title
	}
	return s.repo.Update(ctx, id, input)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
