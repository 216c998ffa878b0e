package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leadloop/crm-backend/internal/usecase"
)

type errorResponse struct {
	Error  string               `json:"error"`
	Fields []usecase.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the engine's error taxonomy onto HTTP statuses:
// Validation 400, NotFound 404, State/Conflict 409, Threshold 422, rest 500.
func writeError(w http.ResponseWriter, err error) {
	body := errorResponse{Error: err.Error()}

	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		body.Fields = verr.Fields
		writeJSON(w, http.StatusBadRequest, body)
	case usecase.IsNotFoundError(err):
		writeJSON(w, http.StatusNotFound, body)
	case usecase.IsStateError(err), usecase.IsConflictError(err):
		writeJSON(w, http.StatusConflict, body)
	case usecase.IsThresholdError(err):
		writeJSON(w, http.StatusUnprocessableEntity, body)
	default:
		body.Error = "internal server error"
		writeJSON(w, http.StatusInternalServerError, body)
	}
}
