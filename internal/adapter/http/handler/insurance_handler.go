package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/adapter/http/middleware"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// InsuranceHandler handles insurance policy requests.
type InsuranceHandler struct {
	policyUC *usecase.PolicyUseCase
}

// NewInsuranceHandler creates a new InsuranceHandler.
func NewInsuranceHandler(policyUC *usecase.PolicyUseCase) *InsuranceHandler {
	return &InsuranceHandler{policyUC: policyUC}
}

// Apply submits an insurance application for the authenticated user.
func (h *InsuranceHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.InsuranceApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	policy, err := h.policyUC.Apply(r.Context(), actor.UserID, req.Type, req.Premium.String(), req.Coverage.String())
	if err != nil {
		writeError(w, mapDomainError(err), "insurance application failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PolicyFromDomain(policy))
}

// ListMine lists the authenticated user's insurance policies.
func (h *InsuranceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	policies, err := h.policyUC.ListByOwner(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list policies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PoliciesFromDomain(policies))
}

// ListAll lists all insurance policies. Admin only.
func (h *InsuranceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	policies, err := h.policyUC.ListAll(r.Context(), actor,
		parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list policies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PoliciesFromDomain(policies))
}

// Stats returns per-status policy counts. Admin only.
func (h *InsuranceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	counts, err := h.policyUC.Stats(r.Context(), actor)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsFromDomain(counts))
}

// Decide approves or rejects a pending insurance application. Admin only.
func (h *InsuranceHandler) Decide(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid policy ID", "")
		return
	}

	var req dto.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	policy, err := h.policyUC.Decide(r.Context(), id, domain.Decision(req.Decision), actor)
	if err != nil {
		writeError(w, mapDomainError(err), "decision failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PolicyFromDomain(policy))
}
