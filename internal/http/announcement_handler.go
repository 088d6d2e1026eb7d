package api

import (
	"net/http"

	"formae/internal/platform/apperr"
)

type createAnnouncementRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// @Summary     Create an announcement
// @Tags        announcements
// @Security    BearerAuth
// @Accept      json
// @Param       request  body  createAnnouncementRequest  true  "Announcement payload"
// @Success     201  {object}  announcement.Announcement
// @Router      /api/v1/announcements [post]
func (h *Handler) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	a, err := h.annSvc.Create(r.Context(), req.Title, req.Content, userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.notify("announcement", "created", a.ID)

	writeJSON(w, http.StatusCreated, a)
}

// @Summary     List announcements, newest first
// @Tags        announcements
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}  announcement.Announcement
// @Router      /api/v1/announcements [get]
func (h *Handler) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	items, err := h.annSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary     Delete an announcement
// @Tags        announcements
// @Security    BearerAuth
// @Param       id  path  string  true  "Announcement ID"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/announcements/{id} [delete]
func (h *Handler) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	if err := h.annSvc.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}

	h.notify("announcement", "deleted", id)

	w.WriteHeader(http.StatusNoContent)
}
