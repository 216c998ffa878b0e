package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leadloop/crm-backend/internal/entity"
	"github.com/leadloop/crm-backend/internal/usecase"
)

type ContactHandler struct {
	Engine *usecase.LifecycleEngine
}

func NewContactHandler(engine *usecase.LifecycleEngine) *ContactHandler {
	return &ContactHandler{Engine: engine}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.NewValidationError(usecase.FieldError{Field: "body", Message: "invalid JSON"}))
		return
	}

	output, err := h.Engine.CreateLead(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Engine.GetContact(r.Context(), chi.URLParam(r, "contactID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	contacts, err := h.Engine.ListContacts(
		r.Context(),
		q.Get("company_id"),
		entity.ContactStatus(q.Get("status")),
		limit,
		offset,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	if contacts == nil {
		contacts = []*entity.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch entity.ContactPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, usecase.NewValidationError(usecase.FieldError{Field: "body", Message: "invalid JSON"}))
		return
	}

	contactID := chi.URLParam(r, "contactID")
	if err := h.Engine.UpdateContact(r.Context(), contactID, patch); err != nil {
		writeError(w, err)
		return
	}

	contact, err := h.Engine.GetContact(r.Context(), contactID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.Engine.StatusHistory(r.Context(), chi.URLParam(r, "contactID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if history == nil {
		history = []*entity.StatusHistory{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *ContactHandler) Financials(w http.ResponseWriter, r *http.Request) {
	financials, err := h.Engine.ContactFinancials(r.Context(), chi.URLParam(r, "contactID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, financials)
}

func (h *ContactHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecordFeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.NewValidationError(usecase.FieldError{Field: "body", Message: "invalid JSON"}))
		return
	}
	input.ContactID = chi.URLParam(r, "contactID")

	feedback, err := h.Engine.RecordFeedback(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, feedback)
}
