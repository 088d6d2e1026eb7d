package finance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("installment not found")
	ErrAlreadyPaid         = errors.New("installment already paid")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidType         = errors.New("transaction type must be income or expense")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidCount        = errors.New("installment count out of range")
	ErrDueDateRequired     = errors.New("first due date is required")
	ErrPlanExists          = errors.New("student already has an installment plan")
)

const maxPlanInstallments = 48

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RecordTransaction(ctx context.Context, kind string, amountCents int64, description string, category *string, date time.Time, receiptURL *string, createdBy uuid.UUID) (*Transaction, error) {
	if kind != TypeIncome && kind != TypeExpense {
		return nil, ErrInvalidType
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if date.IsZero() {
		date = time.Now()
	}

	t := &Transaction{
		Type:        kind,
		AmountCents: amountCents,
		Description: description,
		Category:    category,
		Date:        date,
		ReceiptURL:  receiptURL,
		CreatedBy:   createdBy,
	}
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	return s.repo.Summarize(ctx)
}

// CreatePlan creates count numbered installments for the student, one month
// apart starting at firstDue.
func (s *Service) CreatePlan(ctx context.Context, studentID uuid.UUID, count int, amountCents int64, firstDue time.Time) ([]Installment, error) {
	if count < 1 || count > maxPlanInstallments {
		return nil, ErrInvalidCount
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if firstDue.IsZero() {
		return nil, ErrDueDateRequired
	}

	items := make([]Installment, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, Installment{
			StudentID:         studentID,
			InstallmentNumber: i + 1,
			AmountCents:       amountCents,
			DueDate:           firstDue.AddDate(0, i, 0),
			Status:            InstallmentPending,
		})
	}

	if err := s.repo.CreateInstallments(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) Installments(ctx context.Context, studentID uuid.UUID) ([]Installment, error) {
	return s.repo.InstallmentsByStudent(ctx, studentID)
}

func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		method = "manual"
	}
	return s.repo.MarkInstallmentPaid(ctx, id, method, time.Now())
}
