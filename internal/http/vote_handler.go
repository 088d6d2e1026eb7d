package api

import (
	"net/http"

	"github.com/google/uuid"

	"formae/internal/metrics"
	"formae/internal/platform/apperr"
)

type voteRequest struct {
	OptionID uuid.UUID `json:"option_id" validate:"required"`
}

// @Summary     Vote for an option
// @Tags        votes
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string       true  "Poll ID"
// @Param       request  body  voteRequest  true  "Vote payload"
// @Success     204
// @Failure     400  {object}  map[string]string  "closed poll or option not in poll"
// @Failure     404  {object}  map[string]string  "poll not found"
// @Failure     409  {object}  map[string]string  "already voted"
// @Router      /api/v1/polls/{id}/vote [post]
func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	var req voteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	if req.OptionID == uuid.Nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "option_id is required", nil))
		return
	}

	if err := h.voteSvc.Cast(r.Context(), pollID, req.OptionID, userIDFromCtx(r)); err != nil {
		errorResponse(w, err)
		return
	}

	metrics.IncVoteCast()
	h.notify("poll", "voted", pollID)

	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Poll results
// @Tags        polls
// @Security    BearerAuth
// @Produce     json
// @Param       id  path  string  true  "Poll ID"
// @Success     200  {object}  map[string]any
// @Failure     404  {object}  map[string]string  "poll not found"
// @Router      /api/v1/polls/{id}/results [get]
func (h *Handler) handlePollResults(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	res, total, err := h.voteSvc.Results(r.Context(), pollID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"poll_id":     pollID,
		"total_votes": total,
		"options":     res,
	})
}

// @Summary     The caller's vote in a poll, if any
// @Tags        votes
// @Security    BearerAuth
// @Produce     json
// @Param       id  path  string  true  "Poll ID"
// @Success     200  {object}  map[string]any
// @Router      /api/v1/polls/{id}/my-vote [get]
func (h *Handler) handleMyVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	optionID, voted, err := h.voteSvc.VotedOption(r.Context(), pollID, userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}

	resp := map[string]any{"has_voted": voted}
	if voted {
		resp["option_id"] = optionID
	}
	writeJSON(w, http.StatusOK, resp)
}
