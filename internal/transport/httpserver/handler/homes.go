package handler

import (
	"errors"
	"net/http"

	homedomain "home-rota-go/internal/domain/home"
)

type createHomeRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateHomeRequest struct {
	Name string `json:"name" validate:"required"`
}

// homeResponse never carries the password.
type homeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func toHomeResponse(h *homedomain.Home) homeResponse {
	return homeResponse{ID: h.ID, Name: h.Name}
}

func (h *Handlers) CreateHome(w http.ResponseWriter, r *http.Request) {
	var req createHomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	result, err := h.Homes.Create(r.Context(), req.Name, req.Password)
	if err != nil {
		h.log.InternalError("homes.create: create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toHomeResponse(result))
}

func (h *Handlers) ListHomes(w http.ResponseWriter, r *http.Request) {
	homes, err := h.Homes.List(r.Context())
	if err != nil {
		h.log.InternalError("homes.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]homeResponse, 0, len(homes))
	for i := range homes {
		result = append(result, toHomeResponse(&homes[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetHome(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.Homes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, homedomain.ErrHomeNotFound) {
			writeError(w, http.StatusNotFound, "home_not_found", "home not found")
			return
		}
		h.log.InternalError("homes.get: get failed", err, "home_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toHomeResponse(result))
}

func (h *Handlers) UpdateHome(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateHomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	result, err := h.Homes.Rename(r.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, homedomain.ErrHomeNotFound) {
			writeError(w, http.StatusNotFound, "home_not_found", "home not found")
			return
		}
		h.log.InternalError("homes.update: rename failed", err, "home_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toHomeResponse(result))
}

// DeleteHome is a guarded stub; nothing is removed from the store.
func (h *Handlers) DeleteHome(w http.ResponseWriter, r *http.Request) {
	if _, err := parseIDParam(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
