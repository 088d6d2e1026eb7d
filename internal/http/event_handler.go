package api

import (
	"net/http"
	"time"

	"formae/internal/domain/event"
	"formae/internal/platform/apperr"
)

type createEventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" validate:"required"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

type updateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	Status      *string `json:"status" validate:"omitempty,oneof=upcoming completed cancelled"`
}

// @Summary     Create an event
// @Tags        events
// @Security    BearerAuth
// @Accept      json
// @Param       request  body  createEventRequest  true  "Event payload"
// @Success     201  {object}  event.Event
// @Router      /api/v1/events [post]
func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "date must be RFC3339", err))
		return
	}

	e, err := h.eventSvc.Create(r.Context(), req.Title, req.Description, date, req.Location, req.ImageURL, userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.notify("event", "created", e.ID)

	writeJSON(w, http.StatusCreated, e)
}

// @Summary     List events ordered by date
// @Tags        events
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}  event.Event
// @Router      /api/v1/events [get]
func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	items, err := h.eventSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary     Get one event
// @Tags        events
// @Security    BearerAuth
// @Produce     json
// @Param       id  path  string  true  "Event ID"
// @Success     200  {object}  event.Event
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/events/{id} [get]
func (h *Handler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	e, err := h.eventSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// @Summary     Update an event
// @Tags        events
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string              true  "Event ID"
// @Param       request  body  updateEventRequest  true  "Fields to change"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/events/{id} [patch]
func (h *Handler) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	var req updateEventRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	input := event.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			errorResponse(w, apperr.BadRequest("invalid_input", "date must be RFC3339", err))
			return
		}
		input.Date = &date
	}

	if err := h.eventSvc.Update(r.Context(), id, input); err != nil {
		errorResponse(w, err)
		return
	}

	h.notify("event", "updated", id)

	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Delete an event
// @Tags        events
// @Security    BearerAuth
// @Param       id  path  string  true  "Event ID"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/events/{id} [delete]
func (h *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	if err := h.eventSvc.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}

	h.notify("event", "deleted", id)

	w.WriteHeader(http.StatusNoContent)
}
