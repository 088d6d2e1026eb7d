package api

import (
	"net/http"

	"formae/internal/platform/apperr"
)

type createPollRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description *string  `json:"description"`
	Options     []string `json:"options" validate:"required,min=2,max=6"`
}

// @Summary     Create a poll
// @Tags        polls
// @Security    BearerAuth
// @Accept      json
// @Param       request  body  createPollRequest  true  "Poll payload"
// @Success     201  {object}  map[string]any
// @Failure     400  {object}  map[string]string  "invalid title or options"
// @Failure     403  {object}  map[string]string  "forbidden"
// @Router      /api/v1/polls [post]
func (h *Handler) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	p, opts, err := h.pollSvc.Create(r.Context(), req.Title, req.Description, req.Options, userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.notify("poll", "created", p.ID)

	writeJSON(w, http.StatusCreated, map[string]any{
		"poll":    p,
		"options": opts,
	})
}

// @Summary     List polls
// @Tags        polls
// @Security    BearerAuth
// @Produce     json
// @Param       status  query  string  false  "Filter by status (active or closed)"
// @Success     200  {array}  poll.Poll
// @Router      /api/v1/polls [get]
func (h *Handler) handleListPolls(w http.ResponseWriter, r *http.Request) {
	statusParam := r.URL.Query().Get("status")
	var status *string
	if statusParam != "" {
		status = &statusParam
	}
	polls, err := h.pollSvc.List(r.Context(), status)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, polls)
}

// @Summary     Get a poll with its options
// @Tags        polls
// @Security    BearerAuth
// @Produce     json
// @Param       id  path  string  true  "Poll ID"
// @Success     200  {object}  map[string]any
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/polls/{id} [get]
func (h *Handler) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	p, opts, err := h.pollSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"poll":    p,
		"options": opts,
	})
}

// @Summary     Close a poll
// @Tags        polls
// @Security    BearerAuth
// @Param       id  path  string  true  "Poll ID"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/polls/{id}/close [post]
func (h *Handler) handleClosePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	if err := h.pollSvc.Close(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}

	h.notify("poll", "closed", id)

	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Delete a poll and its options and votes
// @Tags        polls
// @Security    BearerAuth
// @Param       id  path  string  true  "Poll ID"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/polls/{id} [delete]
func (h *Handler) handleDeletePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	if err := h.pollSvc.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}

	h.notify("poll", "deleted", id)

	w.WriteHeader(http.StatusNoContent)
}
