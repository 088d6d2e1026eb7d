package finance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type memoryFinanceRepo struct {
	mu           sync.Mutex
	transactions []Transaction
	installments map[uuid.UUID]*Installment
}

func newMemoryFinanceRepo() *memoryFinanceRepo {
	return &memoryFinanceRepo{installments: make(map[uuid.UUID]*Installment)}
}

func (r *memoryFinanceRepo) CreateTransaction(ctx context.Context, t *Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *memoryFinanceRepo) ListTransactions(ctx context.Context) ([]Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Transaction, len(r.transactions))
	copy(res, r.transactions)
	return res, nil
}

func (r *memoryFinanceRepo) Summarize(ctx context.Context) (Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s Summary
	for _, t := range r.transactions {
		if t.Type == TypeIncome {
			s.IncomeCents += t.AmountCents
		} else {
			s.ExpenseCents += t.AmountCents
		}
	}
	s.BalanceCents = s.IncomeCents - s.ExpenseCents
	return s, nil
}

func (r *memoryFinanceRepo) CreateInstallments(ctx context.Context, items []Installment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for i := range items {
		items[i].ID = uuid.New()
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		copyItem := items[i]
		r.installments[copyItem.ID] = &copyItem
	}
	return nil
}

func (r *memoryFinanceRepo) InstallmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]Installment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []Installment
	for _, i := range r.installments {
		if i.StudentID == studentID {
			res = append(res, *i)
		}
	}
	return res, nil
}

func (r *memoryFinanceRepo) MarkInstallmentPaid(ctx context.Context, id uuid.UUID, method string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.installments[id]
	if !ok {
		return ErrNotFound
	}
	if i.Status == InstallmentPaid {
		return ErrAlreadyPaid
	}
	i.Status = InstallmentPaid
	i.PaidDate = &paidAt
	i.PaymentMethod = &method
	return nil
}

func TestRecordTransactionValidation(t *testing.T) {
	svc := NewService(newMemoryFinanceRepo())
	ctx := context.Background()
	admin := uuid.New()

	if _, err := svc.RecordTransaction(ctx, "loan", 100, "x", nil, time.Now(), nil, admin); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected invalid type, got %v", err)
	}
	if _, err := svc.RecordTransaction(ctx, TypeIncome, 0, "x", nil, time.Now(), nil, admin); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := svc.RecordTransaction(ctx, TypeIncome, 100, "   ", nil, time.Now(), nil, admin); !errors.Is(err, ErrDescriptionRequired) {
		t.Fatalf("expected ErrDescriptionRequired for blank description, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	repo := newMemoryFinanceRepo()
	svc := NewService(repo)
	ctx := context.Background()
	admin := uuid.New()

	mustRecord := func(kind string, cents int64) {
		t.Helper()
		if _, err := svc.RecordTransaction(ctx, kind, cents, "entry", nil, time.Now(), nil, admin); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	mustRecord(TypeIncome, 50000)
	mustRecord(TypeIncome, 25000)
	mustRecord(TypeExpense, 30000)

	s, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.IncomeCents != 75000 || s.ExpenseCents != 30000 || s.BalanceCents != 45000 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestCreatePlanMonthlyDueDates(t *testing.T) {
	repo := newMemoryFinanceRepo()
	svc := NewService(repo)
	ctx := context.Background()
	student := uuid.New()

	firstDue := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	items, err := svc.CreatePlan(ctx, student, 3, 15000, firstDue)
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(items))
	}
	for i, item := range items {
		if item.InstallmentNumber != i+1 {
			t.Fatalf("expected number %d, got %d", i+1, item.InstallmentNumber)
		}
		want := firstDue.AddDate(0, i, 0)
		if !item.DueDate.Equal(want) {
			t.Fatalf("installment %d: expected due %v, got %v", i+1, want, item.DueDate)
		}
		if item.Status != InstallmentPending {
			t.Fatalf("expected pending, got %q", item.Status)
		}
	}

	if _, err := svc.CreatePlan(ctx, student, 0, 15000, firstDue); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount for zero count, got %v", err)
	}
	if _, err := svc.CreatePlan(ctx, student, 49, 15000, firstDue); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount above the cap, got %v", err)
	}
	if _, err := svc.CreatePlan(ctx, student, 3, -1, firstDue); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := svc.CreatePlan(ctx, student, 3, 15000, time.Time{}); !errors.Is(err, ErrDueDateRequired) {
		t.Fatalf("expected ErrDueDateRequired, got %v", err)
	}
}

func TestMarkPaid(t *testing.T) {
	repo := newMemoryFinanceRepo()
	svc := NewService(repo)
	ctx := context.Background()

	items, err := svc.CreatePlan(ctx, uuid.New(), 1, 10000, time.Now())
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	if err := svc.MarkPaid(ctx, items[0].ID, "pix"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if err := svc.MarkPaid(ctx, items[0].ID, "pix"); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected already paid, got %v", err)
	}
	if err := svc.MarkPaid(ctx, uuid.New(), "pix"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()

	pending := Installment{Status: InstallmentPending, DueDate: now.AddDate(0, 0, 7)}
	if got := pending.EffectiveStatus(now); got != InstallmentPending {
		t.Fatalf("expected pending, got %q", got)
	}

	overdue := Installment{Status: InstallmentPending, DueDate: now.AddDate(0, 0, -1)}
	if got := overdue.EffectiveStatus(now); got != InstallmentOverdue {
		t.Fatalf("expected overdue, got %q", got)
	}

	paid := Installment{Status: InstallmentPaid, DueDate: now.AddDate(0, 0, -30)}
	if got := paid.EffectiveStatus(now); got != InstallmentPaid {
		t.Fatalf("expected paid, got %q", got)
	}
}
