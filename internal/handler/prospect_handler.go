package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProspectHandler handles prospect-related HTTP requests
type ProspectHandler struct {
	prospectService *service.ProspectService
}

// NewProspectHandler creates a new ProspectHandler
func NewProspectHandler(prospectService *service.ProspectService) *ProspectHandler {
	return &ProspectHandler{prospectService: prospectService}
}

// CreateProspectRequest represents the create prospect request body
type CreateProspectRequest struct {
	FirstName     string  `json:"firstName" validate:"required,max=255"`
	LastName      string  `json:"lastName" validate:"required,max=255"`
	Phone         string  `json:"phone" validate:"required,max=32"`
	Profession    *string `json:"profession,omitempty" validate:"omitempty,max=255"`
	RecommendedBy *string `json:"recommendedBy,omitempty" validate:"omitempty,max=255"`
}

// UpdateProspectRequest represents the partial update request body
type UpdateProspectRequest struct {
	FirstName     *string `json:"firstName,omitempty" validate:"omitempty,max=255"`
	LastName      *string `json:"lastName,omitempty" validate:"omitempty,max=255"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Profession    *string `json:"profession,omitempty" validate:"omitempty,max=255"`
	RecommendedBy *string `json:"recommendedBy,omitempty" validate:"omitempty,max=255"`
	IsArchived    *bool   `json:"isArchived,omitempty"`
}

// ProspectResponse represents a prospect in API responses
type ProspectResponse struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Phone         string  `json:"phone"`
	Profession    *string `json:"profession"`
	RecommendedBy *string `json:"recommendedBy"`
	IsArchived    bool    `json:"isArchived"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// CreateProspect godoc
// @Summary Create a prospect
// @Tags prospects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProspectRequest true "Prospect creation request"
// @Success 201 {object} ProspectResponse
// @Failure 400 {object} ProblemDetails
// @Router /prospects [post]
func (h *ProspectHandler) CreateProspect(c echo.Context) error {
	var req CreateProspectRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", fieldErrors(err))
	}

	prospect, err := h.prospectService.CreateProspect(c.Request().Context(), service.CreateProspectInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Profession:    req.Profession,
		RecommendedBy: req.RecommendedBy,
	})
	if err != nil {
		if ve, ok := domainFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{ve})
		}
		log.Error().Err(err).Msg("Failed to create prospect")
		return NewInternalError(c, "Failed to create prospect")
	}

	log.Info().Str("prospect_id", prospect.ID.String()).Msg("Prospect created")

	return c.JSON(http.StatusCreated, toProspectResponse(prospect))
}

// GetProspects godoc
// @Summary List prospects
// @Tags prospects
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search first name, last name, phone, profession or recommender"
// @Param archived query bool false "Filter on the archived flag"
// @Success 200 {array} ProspectResponse
// @Failure 400 {object} ProblemDetails
// @Router /prospects [get]
func (h *ProspectHandler) GetProspects(c echo.Context) error {
	archived, err := parseOptionalBool(c.QueryParam("archived"))
	if err != nil {
		return NewValidationError(c, "Invalid query parameters", []ValidationError{{Field: "archived", Message: "Must be true or false"}})
	}

	prospects, err := h.prospectService.GetProspects(c.Request().Context(), domain.ContactFilters{
		Query:    c.QueryParam("q"),
		Archived: archived,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list prospects")
		return NewInternalError(c, "Failed to list prospects")
	}

	response := make([]ProspectResponse, len(prospects))
	for i, p := range prospects {
		response[i] = toProspectResponse(p)
	}
	return c.JSON(http.StatusOK, response)
}

// GetProspect godoc
// @Summary Get a prospect
// @Tags prospects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Prospect ID"
// @Success 200 {object} ProspectResponse
// @Failure 404 {object} ProblemDetails
// @Router /prospects/{id} [get]
func (h *ProspectHandler) GetProspect(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid prospect ID", nil)
	}

	prospect, err := h.prospectService.GetProspectByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProspectNotFound) {
			return NewNotFoundError(c, "Prospect not found")
		}
		log.Error().Err(err).Str("prospect_id", id.String()).Msg("Failed to get prospect")
		return NewInternalError(c, "Failed to get prospect")
	}

	return c.JSON(http.StatusOK, toProspectResponse(prospect))
}

// UpdateProspect godoc
// @Summary Update a prospect
// @Description Partial update; omitted fields keep their value
// @Tags prospects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Prospect ID"
// @Param request body UpdateProspectRequest true "Fields to change"
// @Success 200 {object} ProspectResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /prospects/{id} [put]
func (h *ProspectHandler) UpdateProspect(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid prospect ID", nil)
	}

	var req UpdateProspectRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", fieldErrors(err))
	}

	prospect, err := h.prospectService.UpdateProspect(c.Request().Context(), id, domain.ProspectUpdate{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Profession:    req.Profession,
		RecommendedBy: req.RecommendedBy,
		IsArchived:    req.IsArchived,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProspectNotFound) {
			return NewNotFoundError(c, "Prospect not found")
		}
		if ve, ok := domainFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{ve})
		}
		log.Error().Err(err).Str("prospect_id", id.String()).Msg("Failed to update prospect")
		return NewInternalError(c, "Failed to update prospect")
	}

	return c.JSON(http.StatusOK, toProspectResponse(prospect))
}

// DeleteProspect godoc
// @Summary Delete a prospect
// @Tags prospects
// @Security BearerAuth
// @Param id path string true "Prospect ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /prospects/{id} [delete]
func (h *ProspectHandler) DeleteProspect(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid prospect ID", nil)
	}

	if err := h.prospectService.DeleteProspect(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrProspectNotFound) {
			return NewNotFoundError(c, "Prospect not found")
		}
		log.Error().Err(err).Str("prospect_id", id.String()).Msg("Failed to delete prospect")
		return NewInternalError(c, "Failed to delete prospect")
	}

	log.Info().Str("prospect_id", id.String()).Msg("Prospect deleted")

	return c.NoContent(http.StatusNoContent)
}

func toProspectResponse(p *domain.Prospect) ProspectResponse {
	return ProspectResponse{
		ID:            p.ID.String(),
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Phone:         p.Phone,
		Profession:    p.Profession,
		RecommendedBy: p.RecommendedBy,
		IsArchived:    p.IsArchived,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
