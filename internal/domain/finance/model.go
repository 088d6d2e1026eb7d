package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

const (
	InstallmentPending = "pending"
	InstallmentPaid    = "paid"
	// InstallmentOverdue is derived at read time from a pending installment
	// past its due date; it is never stored.
	InstallmentOverdue = "overdue"
)

// Transaction is one class-fund movement. Amounts are integer cents.
type Transaction struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Category    *string   `json:"category,omitempty"`
	Date        time.Time `json:"date"`
	ReceiptURL  *string   `json:"receipt_url,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Summary struct {
	IncomeCents  int64 `json:"income_cents"`
	ExpenseCents int64 `json:"expense_cents"`
	BalanceCents int64 `json:"balance_cents"`
}

type Installment struct {
	ID                uuid.UUID  `json:"id"`
	StudentID         uuid.UUID  `json:"student_id"`
	InstallmentNumber int        `json:"installment_number"`
	AmountCents       int64      `json:"amount_cents"`
	DueDate           time.Time  `json:"due_date"`
	Status            string     `json:"status"`
	PaidDate          *time.Time `json:"paid_date,omitempty"`
	PaymentMethod     *string    `json:"payment_method,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// EffectiveStatus reports the user-facing status at the given instant.
func (i Installment) EffectiveStatus(now time.Time) string {
	if i.Status == InstallmentPaid {
		return InstallmentPaid
	}
	if i.DueDate.Before(now) {
		return InstallmentOverdue
	}
	return InstallmentPending
}

type Repository interface {
	CreateTransaction(ctx context.Context, t *Transaction) error
	ListTransactions(ctx context.Context) ([]Transaction, error)
	Summarize(ctx context.Context) (Summary, error)

	// CreateInstallments batch-inserts a student's plan in one transaction.
	CreateInstallments(ctx context.Context, items []Installment) error
	InstallmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]Installment, error)
	// MarkInstallmentPaid flips pending to paid; a second call is rejected.
	MarkInstallmentPaid(ctx context.Context, id uuid.UUID, method string, paidAt time.Time) error
}
