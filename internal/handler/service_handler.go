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

// ServiceHandler handles the service catalog
type ServiceHandler struct {
	catalogService *service.CatalogService
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(catalogService *service.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService}
}

// CreateServiceRequest represents the create service request body
type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateServiceRequest represents the partial update request body
type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ServiceResponse represents a service in API responses
type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CreateService godoc
// @Summary Create a service
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateServiceRequest true "Service creation request"
// @Success 201 {object} ServiceResponse
// @Failure 400 {object} ProblemDetails
// @Router /services [post]
func (h *ServiceHandler) CreateService(c echo.Context) error {
	var req CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", fieldErrors(err))
	}

	svc, err := h.catalogService.CreateService(c.Request().Context(), service.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if ve, ok := domainFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{ve})
		}
		log.Error().Err(err).Msg("Failed to create service")
		return NewInternalError(c, "Failed to create service")
	}

	log.Info().Str("service_id", svc.ID.String()).Str("name", svc.Name).Msg("Service created")

	return c.JSON(http.StatusCreated, toServiceResponse(svc))
}

// GetServices godoc
// @Summary List services
// @Tags services
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Filter on the active flag"
// @Success 200 {array} ServiceResponse
// @Failure 400 {object} ProblemDetails
// @Router /services [get]
func (h *ServiceHandler) GetServices(c echo.Context) error {
	active, err := parseOptionalBool(c.QueryParam("active"))
	if err != nil {
		return NewValidationError(c, "Invalid query parameters", []ValidationError{{Field: "active", Message: "Must be true or false"}})
	}

	services, err := h.catalogService.GetServices(c.Request().Context(), domain.ServiceFilters{Active: active})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list services")
		return NewInternalError(c, "Failed to list services")
	}

	response := make([]ServiceResponse, len(services))
	for i, svc := range services {
		response[i] = toServiceResponse(svc)
	}
	return c.JSON(http.StatusOK, response)
}

// GetService godoc
// @Summary Get a service
// @Tags services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} ServiceResponse
// @Failure 404 {object} ProblemDetails
// @Router /services/{id} [get]
func (h *ServiceHandler) GetService(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid service ID", nil)
	}

	svc, err := h.catalogService.GetServiceByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return NewNotFoundError(c, "Service not found")
		}
		log.Error().Err(err).Str("service_id", id.String()).Msg("Failed to get service")
		return NewInternalError(c, "Failed to get service")
	}

	return c.JSON(http.StatusOK, toServiceResponse(svc))
}

// UpdateService godoc
// @Summary Update a service
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body UpdateServiceRequest true "Fields to change"
// @Success 200 {object} ServiceResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /services/{id} [put]
func (h *ServiceHandler) UpdateService(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid service ID", nil)
	}

	var req UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", fieldErrors(err))
	}

	svc, err := h.catalogService.UpdateService(c.Request().Context(), id, domain.ServiceUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return NewNotFoundError(c, "Service not found")
		}
		if ve, ok := domainFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{ve})
		}
		log.Error().Err(err).Str("service_id", id.String()).Msg("Failed to update service")
		return NewInternalError(c, "Failed to update service")
	}

	return c.JSON(http.StatusOK, toServiceResponse(svc))
}

// DeleteService godoc
// @Summary Delete a service
// @Description Sales recorded for the service are kept and still count in dashboard totals
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /services/{id} [delete]
func (h *ServiceHandler) DeleteService(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid service ID", nil)
	}

	if err := h.catalogService.DeleteService(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return NewNotFoundError(c, "Service not found")
		}
		log.Error().Err(err).Str("service_id", id.String()).Msg("Failed to delete service")
		return NewInternalError(c, "Failed to delete service")
	}

	log.Info().Str("service_id", id.String()).Msg("Service deleted")

	return c.NoContent(http.StatusNoContent)
}

func toServiceResponse(svc *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          svc.ID.String(),
		Name:        svc.Name,
		Description: svc.Description,
		IsActive:    svc.IsActive,
		CreatedAt:   svc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   svc.UpdatedAt.Format(time.RFC3339),
	}
}
