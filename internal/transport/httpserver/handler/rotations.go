package handler

import (
	"errors"
	"net/http"

	rotationdomain "home-rota-go/internal/domain/rotation"
)

type createRotationRequest struct {
	Name string `json:"name" validate:"required"`
}

type addMemberRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

type setCurrentRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

type rotationResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Current *uint  `json:"current"`
}

type memberResponse struct {
	RotationID uint `json:"rotation_id"`
	UserID     uint `json:"user_id"`
	SortOrder  int  `json:"sort_order"`
}

func toRotationResponse(rot *rotationdomain.Rotation) rotationResponse {
	return rotationResponse{ID: rot.ID, Name: rot.Name, Current: rot.CurrentUserID}
}

func toMemberResponses(members []rotationdomain.Member) []memberResponse {
	result := make([]memberResponse, 0, len(members))
	for _, member := range members {
		result = append(result, memberResponse{
			RotationID: member.RotationID,
			UserID:     member.UserID,
			SortOrder:  member.SortOrder,
		})
	}
	return result
}

func (h *Handlers) CreateRotation(w http.ResponseWriter, r *http.Request) {
	var req createRotationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	result, err := h.Rotations.Create(r.Context(), req.Name)
	if err != nil {
		h.log.InternalError("rotations.create: create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toRotationResponse(result))
}

func (h *Handlers) GetRotation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.Rotations.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, rotationdomain.ErrRotationNotFound) {
			writeError(w, http.StatusNotFound, "rotation_not_found", "rotation not found")
			return
		}
		h.log.InternalError("rotations.get: get failed", err, "rotation_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toRotationResponse(result))
}

// SetNext advances the rotation's current pointer. A rotation without a
// current pointer answers 200 like any other success; clients only see a
// non-200 for an unknown rotation or a store failure.
func (h *Handlers) SetNext(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Rotations.Advance(r.Context(), id); err != nil {
		if errors.Is(err, rotationdomain.ErrRotationNotFound) {
			writeError(w, http.StatusNotFound, "rotation_not_found", "rotation not found")
			return
		}
		h.log.InternalError("rotations.setnext: advance failed", err, "rotation_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Success"))
}

func (h *Handlers) SetRotationCurrent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req setCurrentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	if err := h.Rotations.SetCurrent(r.Context(), id, req.UserID); err != nil {
		switch {
		case errors.Is(err, rotationdomain.ErrRotationNotFound):
			writeError(w, http.StatusNotFound, "rotation_not_found", "rotation not found")
		case errors.Is(err, rotationdomain.ErrNotMember):
			h.log.BusinessError("rotations.setcurrent: not a member", err, "rotation_id", id, "user_id", req.UserID)
			writeError(w, http.StatusBadRequest, "not_a_member", "user is not a member of the rotation")
		default:
			h.log.InternalError("rotations.setcurrent: set failed", err, "rotation_id", id, "user_id", req.UserID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	result, err := h.Rotations.Get(r.Context(), id)
	if err != nil {
		h.log.InternalError("rotations.setcurrent: reload failed", err, "rotation_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toRotationResponse(result))
}

func (h *Handlers) AddRotationMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	if err := h.Rotations.AddMember(r.Context(), id, req.UserID); err != nil {
		switch {
		case errors.Is(err, rotationdomain.ErrRotationNotFound):
			writeError(w, http.StatusNotFound, "rotation_not_found", "rotation not found")
		case errors.Is(err, rotationdomain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, rotationdomain.ErrMemberExists):
			h.log.BusinessError("rotations.addmember: duplicate", err, "rotation_id", id, "user_id", req.UserID)
			writeError(w, http.StatusConflict, "member_exists", "user already in rotation")
		default:
			h.log.InternalError("rotations.addmember: add failed", err, "rotation_id", id, "user_id", req.UserID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	members, err := h.Rotations.Members(r.Context(), id)
	if err != nil {
		h.log.InternalError("rotations.addmember: reload failed", err, "rotation_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponses(members))
}

func (h *Handlers) ListRotationMembers(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	members, err := h.Rotations.Members(r.Context(), id)
	if err != nil {
		if errors.Is(err, rotationdomain.ErrRotationNotFound) {
			writeError(w, http.StatusNotFound, "rotation_not_found", "rotation not found")
			return
		}
		h.log.InternalError("rotations.members: list failed", err, "rotation_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

// DeleteRotation is a guarded stub; nothing is removed from the store.
func (h *Handlers) DeleteRotation(w http.ResponseWriter, r *http.Request) {
	if _, err := parseIDParam(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
