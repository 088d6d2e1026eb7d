package api

import (
	"database/sql"
	"errors"
	"net/http"

	"formae/internal/domain/announcement"
	"formae/internal/domain/event"
	"formae/internal/domain/finance"
	"formae/internal/domain/poll"
	"formae/internal/domain/user"
	"formae/internal/domain/vote"
	"formae/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid credentials", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.BadRequest("email_taken", "email already taken", err)
	case errors.Is(err, user.ErrInvalidRole):
		return apperr.BadRequest("invalid_role", "role must be admin or student", err)
	case errors.Is(err, user.ErrMissingFields):
		return apperr.BadRequest("invalid_input", "email, password and full name are required", err)
	case errors.Is(err, user.ErrBlankFullName):
		return apperr.BadRequest("invalid_input", "full name cannot be blank", err)
	case errors.Is(err, poll.ErrNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, poll.ErrTitleRequired):
		return apperr.BadRequest("invalid_input", "poll title is required", err)
	case errors.Is(err, poll.ErrTooFewOptions):
		return apperr.BadRequest("invalid_input", "poll needs at least 2 distinct options", err)
	case errors.Is(err, poll.ErrTooManyOptions):
		return apperr.BadRequest("invalid_input", "poll allows at most 6 options", err)
	case errors.Is(err, poll.ErrInvalidStatus):
		return apperr.BadRequest("invalid_status", "invalid poll status", err)
	case errors.Is(err, vote.ErrAlreadyVoted):
		return apperr.Conflict("already_voted", "you already voted in this poll", err)
	case errors.Is(err, vote.ErrPollClosed):
		return apperr.BadRequest("poll_closed", "poll is closed for voting", err)
	case errors.Is(err, vote.ErrOptionNotInPoll):
		return apperr.BadRequest("invalid_option", "option does not belong to poll", err)
	case errors.Is(err, announcement.ErrNotFound):
		return apperr.NotFound("announcement_not_found", "announcement not found", err)
	case errors.Is(err, announcement.ErrTitleRequired):
		return apperr.BadRequest("invalid_input", "announcement title is required", err)
	case errors.Is(err, announcement.ErrContentRequired):
		return apperr.BadRequest("invalid_input", "announcement content is required", err)
	case errors.Is(err, event.ErrNotFound):
		return apperr.NotFound("event_not_found", "event not found", err)
	case errors.Is(err, event.ErrInvalidStatus):
		return apperr.BadRequest("invalid_status", "invalid event status", err)
	case errors.Is(err, event.ErrTitleRequired):
		return apperr.BadRequest("invalid_input", "event title is required", err)
	case errors.Is(err, event.ErrDateRequired):
		return apperr.BadRequest("invalid_input", "event date is required", err)
	case errors.Is(err, finance.ErrNotFound):
		return apperr.NotFound("installment_not_found", "installment not found", err)
	case errors.Is(err, finance.ErrAlreadyPaid):
		return apperr.Conflict("already_paid", "installment already paid", err)
	case errors.Is(err, finance.ErrInvalidAmount):
		return apperr.BadRequest("invalid_amount", "amount must be positive", err)
	case errors.Is(err, finance.ErrInvalidType):
		return apperr.BadRequest("invalid_type", "transaction type must be income or expense", err)
	case errors.Is(err, finance.ErrDescriptionRequired):
		return apperr.BadRequest("invalid_input", "description is required", err)
	case errors.Is(err, finance.ErrInvalidCount):
		return apperr.BadRequest("invalid_count", "installment count out of range", err)
	case errors.Is(err, finance.ErrDueDateRequired):
		return apperr.BadRequest("invalid_input", "first due date is required", err)
	case errors.Is(err, finance.ErrPlanExists):
		return apperr.Conflict("plan_exists", "student already has an installment plan", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
