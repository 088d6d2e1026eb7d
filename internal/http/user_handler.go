package api

import (
	"net/http"

	"formae/internal/domain/user"
	"formae/internal/platform/apperr"
)

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin student"`
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	ClassName *string `json:"class_name"`
}

// @Summary     List users
// @Tags        users
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}  user.User
// @Router      /api/v1/users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// @Summary     Update user role
// @Tags        users
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string             true  "User ID"
// @Param       request  body  updateRoleRequest  true  "New role"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/users/{id}/role [patch]
func (h *Handler) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	var req updateRoleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	if err := h.userSvc.UpdateRole(r.Context(), id, req.Role); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary     The caller's profile
// @Tags        users
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  user.User
// @Router      /api/v1/me [get]
func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.userSvc.GetByID(r.Context(), userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// @Summary     Update the caller's profile
// @Tags        users
// @Security    BearerAuth
// @Accept      json
// @Param       request  body  updateProfileRequest  true  "Profile fields"
// @Success     204
// @Router      /api/v1/me [patch]
func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	upd := user.ProfileUpdate{
		FullName:  req.FullName,
		ClassName: req.ClassName,
	}
	if err := h.userSvc.UpdateProfile(r.Context(), userIDFromCtx(r), upd); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
