package http

import (
	"errors"
	"net/http"

	"equipment-tracker/internal/domain"

	"github.com/gorilla/mux"
)

// isInputError reports whether err is the caller's fault rather than the store's.
func isInputError(err error) bool {
	for _, target := range []error{
		domain.ErrMissingID,
		domain.ErrInvalidEquipment,
		domain.ErrInvalidStatus,
		domain.ErrInvalidDates,
		domain.ErrInvalidRate,
		domain.ErrCustomerRequired,
		domain.ErrUnknownAction,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h *Handler) listEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.ListEquipment(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, items); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Handler) createEquipment(w http.ResponseWriter, r *http.Request) {
	var input domain.Equipment
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	created, err := h.equipment.CreateEquipment(r.Context(), input)
	if err != nil {
		if isInputError(err) {
			badRequestResponse(w, r, err)
			return
		}
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, created); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateEquipment(w http.ResponseWriter, r *http.Request) {
	var input domain.Equipment
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ID <= 0 {
		badRequestResponse(w, r, errors.New("ID required"))
		return
	}

	updated, err := h.equipment.UpdateEquipment(r.Context(), input)
	if err != nil {
		if isInputError(err) {
			badRequestResponse(w, r, err)
			return
		}
		// an unknown id is a store-reported failure
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, updated); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.equipment.DeleteEquipment(r.Context(), id); err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"success": true}); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type actionsResponse struct {
	ID      int64           `json:"id"`
	Actions []domain.Action `json:"actions"`
}

func (h *Handler) listActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actions, err := h.equipment.AvailableActions(r.Context(), id)
	if err != nil {
		h.actionError(w, r, err)
		return
	}
	resp := actionsResponse{ID: id, Actions: actions}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type actionRequest struct {
	Action domain.Action `json:"action"`
	domain.ActionPayload
}

func (h *Handler) applyAction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input actionRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Action == 0 {
		badRequestResponse(w, r, errors.New("action is required"))
		return
	}

	updated, err := h.equipment.ApplyAction(r.Context(), id, input.Action, input.ActionPayload)
	if err != nil {
		h.actionError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, updated); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Handler) actionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notFoundResponse(w, r)
	case errors.Is(err, domain.ErrActionNotAllowed):
		conflictResponse(w, r, err)
	case isInputError(err):
		badRequestResponse(w, r, err)
	default:
		serverErrorResponse(w, r, err)
	}
}
