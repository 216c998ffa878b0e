package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadloop/crm-backend/internal/entity"
	"github.com/leadloop/crm-backend/internal/infra/http/middleware"
	"github.com/leadloop/crm-backend/internal/usecase"
)

// LifecycleHandler exposes the status transitions as explicit actions rather
// than a writable status field.
type LifecycleHandler struct {
	Engine *usecase.LifecycleEngine
}

func NewLifecycleHandler(engine *usecase.LifecycleEngine) *LifecycleHandler {
	return &LifecycleHandler{Engine: engine}
}

type promoteRequest struct {
	EmployeeID string `json:"emp_id"`
}

type opportunityRequest struct {
	EmployeeID         string `json:"emp_id"`
	ExpectedValueCents int64  `json:"expected_value_cents"`
}

type closeDealRequest struct {
	EmployeeID     string `json:"emp_id"`
	DealValueCents int64  `json:"deal_value_cents"`
	Product        string `json:"product,omitempty"`
}

type transitionResponse struct {
	ContactID string               `json:"contact_id"`
	Status    entity.ContactStatus `json:"status"`
}

func (h *LifecycleHandler) PromoteToMQL(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.NewValidationError(usecase.FieldError{Field: "body", Message: "invalid JSON"}))
		return
	}

	if err := h.Engine.PromoteToMQL(r.Context(), contactID, req.EmployeeID); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordTransition(string(entity.StatusLead), string(entity.StatusMQL), "employee")
	writeJSON(w, http.StatusOK, transitionResponse{ContactID: contactID, Status: entity.StatusMQL})
}

func (h *LifecycleHandler) PromoteToSQL(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.NewValidationError(usecase.FieldError{Field: "body", Message: "invalid JSON"}))
		return
	}

	if err := h.Engine.PromoteToSQL(r.Context(), contactID, req.EmployeeID); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordTransition(string(entity.StatusMQL), string(entity.StatusSQL), "employee")
	writeJSON(w, http.StatusOK, transitionResponse{ContactID: contactID, Status: entity.StatusSQL})
}

func (h *LifecycleHandler) ConvertToOpportunity(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	var req opportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.NewValidationError(usecase.FieldError{Field: "body", Message: "invalid JSON"}))
		return
	}

	opportunity, err := h.Engine.ConvertToOpportunity(r.Context(), contactID, req.EmployeeID, req.ExpectedValueCents)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordTransition(string(entity.StatusSQL), string(entity.StatusOpportunity), "employee")
	writeJSON(w, http.StatusCreated, opportunity)
}

func (h *LifecycleHandler) CloseDeal(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	var req closeDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.NewValidationError(usecase.FieldError{Field: "body", Message: "invalid JSON"}))
		return
	}

	deal, err := h.Engine.CloseDeal(r.Context(), contactID, req.EmployeeID, req.DealValueCents, req.Product)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordTransition(string(entity.StatusOpportunity), string(entity.StatusCustomer), "employee")
	writeJSON(w, http.StatusCreated, deal)
}

func (h *LifecycleHandler) ConvertToEvangelist(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	if err := h.Engine.ConvertToEvangelist(r.Context(), contactID); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordTransition(string(entity.StatusCustomer), string(entity.StatusEvangelist), "system")
	writeJSON(w, http.StatusOK, transitionResponse{ContactID: contactID, Status: entity.StatusEvangelist})
}
