package draft

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okadri/splitmate/internal/expense/split"
	"github.com/okadri/splitmate/pkg/response"
)

// Handler handles HTTP requests for split draft operations
type Handler struct {
	service *Service
}

// NewHandler creates a new draft handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for draft endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Cancel)

	r.Put("/{id}/amount", h.SetAmount)
	r.Put("/{id}/strategy", h.SetStrategy)
	r.Put("/{id}/payer", h.SelectPayer)

	r.Post("/{id}/participants", h.AddParticipant)
	r.Delete("/{id}/participants/{personId}", h.RemoveParticipant)
	r.Put("/{id}/participants/{personId}/input", h.UpdateInput)

	r.Post("/{id}/finalize", h.Finalize)

	return r
}

// Create handles POST /drafts
// @Summary      Start a split draft
// @Description  Create an in-memory draft for interactively splitting an expense
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        request body CreateDraftRequest true "Draft creation request"
// @Success      201 {object} response.APIResponse{data=DraftResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /drafts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.GroupID <= 0 {
		response.BadRequest(w, "group_id is required")
		return
	}

	snapshot, err := h.service.Create(req.GroupID, req.Total, split.SplitType(req.SplitType))
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, snapshot.ToResponse())
}

// Get handles GET /drafts/{id}
// @Summary      Get a split draft
// @Description  Get the current state, allocations, and balance summary of a draft
// @Tags         drafts
// @Produce      json
// @Param        id path string true "Draft ID"
// @Success      200 {object} response.APIResponse{data=DraftResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /drafts/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, snapshot.ToResponse())
}

// SetAmount handles PUT /drafts/{id}/amount
// @Summary      Edit the total amount
// @Description  Accept a raw amount string; parsing and recomputation are debounced
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id path string true "Draft ID"
// @Param        request body SetAmountRequest true "Raw amount string"
// @Success      200 {object} response.APIResponse{data=DraftResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /drafts/{id}/amount [put]
func (h *Handler) SetAmount(w http.ResponseWriter, r *http.Request) {
	var req SetAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	snapshot, err := h.service.SetAmount(chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snapshot.ToResponse())
}

// SetStrategy handles PUT /drafts/{id}/strategy
// @Summary      Switch the split strategy
// @Description  Change strategy and reset every participant's raw inputs to the new strategy's defaults
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id path string true "Draft ID"
// @Param        request body SetStrategyRequest true "New strategy"
// @Success      200 {object} response.APIResponse{data=DraftResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /drafts/{id}/strategy [put]
func (h *Handler) SetStrategy(w http.ResponseWriter, r *http.Request) {
	var req SetStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	snapshot, err := h.service.SetStrategy(chi.URLParam(r, "id"), split.SplitType(req.SplitType))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snapshot.ToResponse())
}

// AddParticipant handles POST /drafts/{id}/participants
// @Summary      Add a participant
// @Description  Add a person to the split with the active strategy's default raw input
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id path string true "Draft ID"
// @Param        request body ParticipantRequest true "Person to add"
// @Success      200 {object} response.APIResponse{data=DraftResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /drafts/{id}/participants [post]
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.PersonID <= 0 {
		response.BadRequest(w, "person_id is required")
		return
	}

	snapshot, err := h.service.AddParticipant(chi.URLParam(r, "id"), req.PersonID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snapshot.ToResponse())
}

// RemoveParticipant handles DELETE /drafts/{id}/participants/{personId}
// @Summary      Remove a participant
// @Description  Remove a person; refused (blocked flag) if it would leave fewer than two participants
// @Tags         drafts
// @Produce      json
// @Param        id path string true "Draft ID"
// @Param        personId path int true "Person ID"
// @Success      200 {object} response.APIResponse{data=DraftResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /drafts/{id}/participants/{personId} [delete]
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	personID, err := strconv.ParseInt(chi.URLParam(r, "personId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid person ID")
		return
	}

	snapshot, blocked, err := h.service.RemoveParticipant(chi.URLParam(r, "id"), personID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := snapshot.ToResponse()
	resp.Blocked = blocked
	response.JSON(w, http.StatusOK, resp)
}

// SelectPayer handles PUT /drafts/{id}/payer
// @Summary      Select the payer
// @Description  Mark a person as payer, adding them to the participant set if needed
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id path string true "Draft ID"
// @Param        request body ParticipantRequest true "Payer"
// @Success      200 {object} response.APIResponse{data=DraftResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /drafts/{id}/payer [put]
func (h *Handler) SelectPayer(w http.ResponseWriter, r *http.Request) {
	var req ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.PersonID <= 0 {
		response.BadRequest(w, "person_id is required")
		return
	}

	snapshot, err := h.service.SelectPayer(chi.URLParam(r, "id"), req.PersonID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snapshot.ToResponse())
}

// UpdateInput handles PUT /drafts/{id}/participants/{personId}/input
// @Summary      Edit one participant's raw input
// @Description  Set the amount, percentage, shares, or adjustment for a participant; recomputes immediately
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id path string true "Draft ID"
// @Param        personId path int true "Person ID"
// @Param        request body UpdateInputRequest true "Field and value"
// @Success      200 {object} response.APIResponse{data=DraftResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /drafts/{id}/participants/{personId}/input [put]
func (h *Handler) UpdateInput(w http.ResponseWriter, r *http.Request) {
	personID, err := strconv.ParseInt(chi.URLParam(r, "personId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid person ID")
		return
	}

	var req UpdateInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	snapshot, err := h.service.UpdateInput(chi.URLParam(r, "id"), personID, req.Field, req.Value)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snapshot.ToResponse())
}

// Finalize handles POST /drafts/{id}/finalize
// @Summary      Finalize a draft
// @Description  Create an expense from a balanced draft and discard the draft
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id path string true "Draft ID"
// @Param        request body FinalizeRequest true "Expense description"
// @Success      201 {object} response.APIResponse{data=FinalizeResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /drafts/{id}/finalize [post]
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Description == "" {
		response.BadRequest(w, "description is required")
		return
	}

	expenseID, err := h.service.Finalize(r.Context(), chi.URLParam(r, "id"), req.Description)
	if err != nil {
		switch {
		case errors.Is(err, ErrDraftNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrUnbalanced), errors.Is(err, ErrNoPayer):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to finalize draft")
		}
		return
	}

	response.JSON(w, http.StatusCreated, &FinalizeResponse{ExpenseID: expenseID})
}

// Cancel handles DELETE /drafts/{id}
// @Summary      Cancel a draft
// @Description  Discard a draft without creating an expense
// @Tags         drafts
// @Produce      json
// @Param        id path string true "Draft ID"
// @Success      204 "No Content"
// @Failure      404 {object} response.APIResponse
// @Router       /drafts/{id} [delete]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Cancel(chi.URLParam(r, "id")); err != nil {
		response.NotFound(w, err.Error())
		return
	}
	response.NoContent(w)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDraftNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrParticipantNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrUnknownInputField), errors.Is(err, split.ErrUnknownSplitType):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Unexpected error")
	}
}
