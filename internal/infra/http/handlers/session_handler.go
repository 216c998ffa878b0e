package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadloop/crm-backend/internal/usecase"
)

type SessionHandler struct {
	Engine *usecase.LifecycleEngine
}

func NewSessionHandler(engine *usecase.LifecycleEngine) *SessionHandler {
	return &SessionHandler{Engine: engine}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LogSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.NewValidationError(usecase.FieldError{Field: "body", Message: "invalid JSON"}))
		return
	}
	input.ContactID = chi.URLParam(r, "contactID")

	output, err := h.Engine.LogSession(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}
