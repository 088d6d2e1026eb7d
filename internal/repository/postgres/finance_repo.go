package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"formae/internal/domain/finance"
)

type FinanceRepo struct {
	db *sql.DB
}

func NewFinanceRepo(db *sql.DB) *FinanceRepo {
	return &FinanceRepo{db: db}
}

func (r *FinanceRepo) CreateTransaction(ctx context.Context, t *finance.Transaction) error {
	query := `
        INSERT INTO financial_transactions (type, amount_cents, description, category, date, receipt_url, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	return r.db.QueryRowContext(ctx, query,
		t.Type, t.AmountCents, t.Description, t.Category, t.Date, t.ReceiptURL, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *FinanceRepo) ListTransactions(ctx context.Context) ([]finance.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, type, amount_cents, description, category, date, receipt_url, created_by, created_at
        FROM financial_transactions ORDER BY date DESC, created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []finance.Transaction
	for rows.Next() {
		var t finance.Transaction
		if err := rows.Scan(&t.ID, &t.Type, &t.AmountCents, &t.Description,
			&t.Category, &t.Date, &t.ReceiptURL, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *FinanceRepo) Summarize(ctx context.Context) (finance.Summary, error) {
	var s finance.Summary
	err := r.db.QueryRowContext(ctx, `
        SELECT
            COALESCE(SUM(amount_cents) FILTER (WHERE type = 'income'), 0),
            COALESCE(SUM(amount_cents) FILTER (WHERE type = 'expense'), 0)
        FROM financial_transactions
    `).Scan(&s.IncomeCents, &s.ExpenseCents)
	if err != nil {
		return finance.Summary{}, err
	}
	s.BalanceCents = s.IncomeCents - s.ExpenseCents
	return s, nil
}

func (r *FinanceRepo) CreateInstallments(ctx context.Context, items []finance.Installment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO student_installments (student_id, installment_number, amount_cents, due_date, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `
	for i := range items {
		if err := tx.QueryRowContext(ctx, query,
			items[i].StudentID, items[i].InstallmentNumber, items[i].AmountCents,
			items[i].DueDate, items[i].Status,
		).Scan(&items[i].ID, &items[i].CreatedAt, &items[i].UpdatedAt); err != nil {
			// UNIQUE (student_id, installment_number): the student already
			// has a plan covering this number.
			if isUniqueViolation(err) {
				return finance.ErrPlanExists
			}
			return err
		}
	}

	return tx.Commit()
}

func (r *FinanceRepo) InstallmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]finance.Installment, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, student_id, installment_number, amount_cents, due_date,
               status, paid_date, payment_method, created_at, updated_at
        FROM student_installments
        WHERE student_id = $1
        ORDER BY installment_number
    `, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []finance.Installment
	for rows.Next() {
		var i finance.Installment
		if err := rows.Scan(&i.ID, &i.StudentID, &i.InstallmentNumber, &i.AmountCents,
			&i.DueDate, &i.Status, &i.PaidDate, &i.PaymentMethod, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, i)
	}
	return res, rows.Err()
}

func (r *FinanceRepo) MarkInstallmentPaid(ctx context.Context, id uuid.UUID, method string, paidAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE student_installments
        SET status = $1, paid_date = $2, payment_method = $3, updated_at = now()
        WHERE id = $4 AND status = $5
    `, finance.InstallmentPaid, paidAt, method, id, finance.InstallmentPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM student_installments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return finance.ErrNotFound
	}
	return finance.ErrAlreadyPaid
}
