package person

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okadri/splitmate/pkg/response"
)

// Handler handles HTTP requests for person operations
type Handler struct {
	service *Service
}

// NewHandler creates a new person handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for person endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /persons
// @Summary      Register a person
// @Description  Register a new person with name and email
// @Tags         persons
// @Accept       json
// @Produce      json
// @Param        request body CreatePersonRequest true "Person creation request"
// @Success      201 {object} response.APIResponse{data=PersonResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /persons [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		response.BadRequest(w, "name and email are required")
		return
	}

	p, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyInUse) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create person")
		return
	}

	response.JSON(w, http.StatusCreated, p.ToResponse())
}

// GetByID handles GET /persons/{id}
// @Summary      Get person by ID
// @Description  Get a single person by their ID
// @Tags         persons
// @Produce      json
// @Param        id path int true "Person ID"
// @Success      200 {object} response.APIResponse{data=PersonResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /persons/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid person ID")
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPersonNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get person")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// List handles GET /persons
// @Summary      List persons
// @Description  Get a paginated list of persons
// @Tags         persons
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]PersonResponse}
// @Router       /persons [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	persons, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list persons")
		return
	}

	personResponses := make([]*PersonResponse, len(persons))
	for i, p := range persons {
		personResponses[i] = p.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, personResponses, meta)
}

// Update handles PUT /persons/{id}
// @Summary      Update a person
// @Description  Update a person's name or avatar
// @Tags         persons
// @Accept       json
// @Produce      json
// @Param        id path int true "Person ID"
// @Param        request body UpdatePersonRequest true "Person update request"
// @Success      200 {object} response.APIResponse{data=PersonResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /persons/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid person ID")
		return
	}

	var req UpdatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrPersonNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update person")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Delete handles DELETE /persons/{id}
// @Summary      Delete a person
// @Description  Remove a person
// @Tags         persons
// @Produce      json
// @Param        id path int true "Person ID"
// @Success      204 "No Content"
// @Failure      404 {object} response.APIResponse
// @Router       /persons/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid person ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrPersonNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete person")
		return
	}

	response.NoContent(w)
}
