package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"formae/internal/platform/apperr"
)

type createTransactionRequest struct {
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	AmountCents int64   `json:"amount_cents" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	ReceiptURL  *string `json:"receipt_url" validate:"omitempty,url"`
}

type createInstallmentPlanRequest struct {
	Count       int    `json:"count" validate:"required,gt=0"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	FirstDue    string `json:"first_due" validate:"required"`
}

type markPaidRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// @Summary     Record a class-fund transaction
// @Tags        finance
// @Security    BearerAuth
// @Accept      json
// @Param       request  body  createTransactionRequest  true  "Transaction payload"
// @Success     201  {object}  finance.Transaction
// @Router      /api/v1/transactions [post]
func (h *Handler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	var date time.Time
	if req.Date != nil {
		parsed, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			errorResponse(w, apperr.BadRequest("invalid_input", "date must be RFC3339", err))
			return
		}
		date = parsed
	}

	t, err := h.finSvc.RecordTransaction(r.Context(), req.Type, req.AmountCents, req.Description, req.Category, date, req.ReceiptURL, userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

// @Summary     List class-fund transactions, newest first
// @Tags        finance
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}  finance.Transaction
// @Router      /api/v1/transactions [get]
func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	items, err := h.finSvc.ListTransactions(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary     Income, expense and balance totals
// @Tags        finance
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  finance.Summary
// @Router      /api/v1/transactions/summary [get]
func (h *Handler) handleFinanceSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.finSvc.Summary(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// @Summary     Create a student's installment plan
// @Tags        finance
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string                        true  "Student ID"
// @Param       request  body  createInstallmentPlanRequest  true  "Plan payload"
// @Success     201  {array}  finance.Installment
// @Router      /api/v1/students/{id}/installments [post]
func (h *Handler) handleCreateInstallmentPlan(w http.ResponseWriter, r *http.Request) {
	studentID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid student id", err))
		return
	}

	var req createInstallmentPlanRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	firstDue, err := time.Parse(time.RFC3339, req.FirstDue)
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "first_due must be RFC3339", err))
		return
	}

	items, err := h.finSvc.CreatePlan(r.Context(), studentID, req.Count, req.AmountCents, firstDue)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, items)
}

// @Summary     A student's installments
// @Tags        finance
// @Security    BearerAuth
// @Produce     json
// @Param       id  path  string  true  "Student ID"
// @Success     200  {array}  finance.Installment
// @Router      /api/v1/students/{id}/installments [get]
func (h *Handler) handleStudentInstallments(w http.ResponseWriter, r *http.Request) {
	studentID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid student id", err))
		return
	}
	h.writeInstallments(w, r, studentID)
}

// @Summary     The caller's installments
// @Tags        finance
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}  finance.Installment
// @Router      /api/v1/me/installments [get]
func (h *Handler) handleMyInstallments(w http.ResponseWriter, r *http.Request) {
	h.writeInstallments(w, r, userIDFromCtx(r))
}

func (h *Handler) writeInstallments(w http.ResponseWriter, r *http.Request, studentID uuid.UUID) {
	items, err := h.finSvc.Installments(r.Context(), studentID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	now := time.Now()
	type installmentView struct {
		ID                string  `json:"id"`
		StudentID         string  `json:"student_id"`
		InstallmentNumber int     `json:"installment_number"`
		AmountCents       int64   `json:"amount_cents"`
		DueDate           string  `json:"due_date"`
		Status            string  `json:"status"`
		PaidDate          *string `json:"paid_date,omitempty"`
		PaymentMethod     *string `json:"payment_method,omitempty"`
	}

	views := make([]installmentView, 0, len(items))
	for _, i := range items {
		v := installmentView{
			ID:                i.ID.String(),
			StudentID:         i.StudentID.String(),
			InstallmentNumber: i.InstallmentNumber,
			AmountCents:       i.AmountCents,
			DueDate:           i.DueDate.Format(time.RFC3339),
			Status:            i.EffectiveStatus(now),
			PaymentMethod:     i.PaymentMethod,
		}
		if i.PaidDate != nil {
			s := i.PaidDate.Format(time.RFC3339)
			v.PaidDate = &s
		}
		views = append(views, v)
	}

	writeJSON(w, http.StatusOK, views)
}

// @Summary     Mark an installment paid
// @Tags        finance
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string           true  "Installment ID"
// @Param       request  body  markPaidRequest  true  "Payment details"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Failure     409  {object}  map[string]string  "already paid"
// @Router      /api/v1/installments/{id}/pay [patch]
func (h *Handler) handleMarkInstallmentPaid(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid installment id", err))
		return
	}

	var req markPaidRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	if err := h.finSvc.MarkPaid(r.Context(), id, req.PaymentMethod); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
