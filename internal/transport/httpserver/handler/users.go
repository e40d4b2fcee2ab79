package handler

import (
	"errors"
	"net/http"

	homedomain "home-rota-go/internal/domain/home"
	userdomain "home-rota-go/internal/domain/user"
)

type createUserRequest struct {
	Nickname string `json:"nickname" validate:"required"`
}

type updateUserRequest struct {
	Nickname string `json:"nickname" validate:"required"`
}

type setHomeRequest struct {
	HomeID   uint   `json:"home_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID         uint   `json:"id"`
	Nickname   string `json:"nickname"`
	Permission string `json:"permission"`
	HomeID     *uint  `json:"home_id"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Nickname:   u.Nickname,
		Permission: string(u.Permission),
		HomeID:     u.HomeID,
	}
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	result, err := h.Users.Create(r.Context(), req.Nickname)
	if err != nil {
		h.log.InternalError("users.create: create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(result))
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		h.log.InternalError("users.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]userResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.Users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.get: get failed", err, "user_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(result))
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	result, err := h.Users.Rename(r.Context(), id, req.Nickname)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.update: rename failed", err, "user_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(result))
}

// SetUserHome joins a user to a home. An unknown user is a 404; an unknown
// home or a wrong password is a 400, matching the sethome contract clients
// already depend on.
func (h *Handlers) SetUserHome(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req setHomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	if err := h.Users.JoinHome(r.Context(), id, req.HomeID, req.Password); err != nil {
		switch {
		case errors.Is(err, userdomain.ErrUserNotFound):
			h.log.BusinessError("users.sethome: user not found", err, "user_id", id)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, homedomain.ErrHomeNotFound):
			h.log.BusinessError("users.sethome: home not found", err, "user_id", id, "home_id", req.HomeID)
			writeError(w, http.StatusBadRequest, "home_not_found", "home not found")
		case errors.Is(err, userdomain.ErrWrongHomePassword):
			h.log.BusinessError("users.sethome: wrong password", err, "user_id", id, "home_id", req.HomeID)
			writeError(w, http.StatusBadRequest, "wrong_password", "wrong home password")
		default:
			h.log.InternalError("users.sethome: join failed", err, "user_id", id, "home_id", req.HomeID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	result, err := h.Users.Get(r.Context(), id)
	if err != nil {
		h.log.InternalError("users.sethome: reload failed", err, "user_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(result))
}

// DeleteUser is a guarded stub: it acknowledges the request without
// touching the store. Real deletion is an open product decision.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if _, err := parseIDParam(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListUserRotations(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	members, err := h.Rotations.MembersOfUser(r.Context(), id)
	if err != nil {
		h.log.InternalError("users.rotations: list failed", err, "user_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponses(members))
}
