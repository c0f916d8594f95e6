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

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// CreateClientRequest represents the create client request body
type CreateClientRequest struct {
	FirstName     string  `json:"firstName" validate:"required,max=255"`
	LastName      string  `json:"lastName" validate:"required,max=255"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Profession    *string `json:"profession,omitempty" validate:"omitempty,max=255"`
	RecommendedBy *string `json:"recommendedBy,omitempty" validate:"omitempty,max=255"`
	Notes         *string `json:"notes,omitempty"`
}

// UpdateClientRequest represents the partial update request body
type UpdateClientRequest struct {
	FirstName     *string `json:"firstName,omitempty" validate:"omitempty,max=255"`
	LastName      *string `json:"lastName,omitempty" validate:"omitempty,max=255"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Profession    *string `json:"profession,omitempty" validate:"omitempty,max=255"`
	RecommendedBy *string `json:"recommendedBy,omitempty" validate:"omitempty,max=255"`
	Notes         *string `json:"notes,omitempty"`
	IsArchived    *bool   `json:"isArchived,omitempty"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Phone         *string `json:"phone"`
	Profession    *string `json:"profession"`
	RecommendedBy *string `json:"recommendedBy"`
	Notes         *string `json:"notes"`
	IsArchived    bool    `json:"isArchived"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// CreateClient godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateClientRequest true "Client creation request"
// @Success 201 {object} ClientResponse
// @Failure 400 {object} ProblemDetails
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", fieldErrors(err))
	}

	client, err := h.clientService.CreateClient(c.Request().Context(), service.CreateClientInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Profession:    req.Profession,
		RecommendedBy: req.RecommendedBy,
		Notes:         req.Notes,
	})
	if err != nil {
		if ve, ok := domainFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{ve})
		}
		log.Error().Err(err).Msg("Failed to create client")
		return NewInternalError(c, "Failed to create client")
	}

	log.Info().Str("client_id", client.ID.String()).Msg("Client created")

	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// GetClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search first name, last name, phone, profession or recommender"
// @Param archived query bool false "Filter on the archived flag"
// @Success 200 {array} ClientResponse
// @Failure 400 {object} ProblemDetails
// @Router /clients [get]
func (h *ClientHandler) GetClients(c echo.Context) error {
	archived, err := parseOptionalBool(c.QueryParam("archived"))
	if err != nil {
		return NewValidationError(c, "Invalid query parameters", []ValidationError{{Field: "archived", Message: "Must be true or false"}})
	}

	clients, err := h.clientService.GetClients(c.Request().Context(), domain.ContactFilters{
		Query:    c.QueryParam("q"),
		Archived: archived,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list clients")
		return NewInternalError(c, "Failed to list clients")
	}

	response := make([]ClientResponse, len(clients))
	for i, client := range clients {
		response[i] = toClientResponse(client)
	}
	return c.JSON(http.StatusOK, response)
}

// GetClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} ClientResponse
// @Failure 404 {object} ProblemDetails
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid client ID", nil)
	}

	client, err := h.clientService.GetClientByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return NewNotFoundError(c, "Client not found")
		}
		log.Error().Err(err).Str("client_id", id.String()).Msg("Failed to get client")
		return NewInternalError(c, "Failed to get client")
	}

	return c.JSON(http.StatusOK, toClientResponse(client))
}

// UpdateClient godoc
// @Summary Update a client
// @Description Partial update; omitted fields keep their value
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body UpdateClientRequest true "Fields to change"
// @Success 200 {object} ClientResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid client ID", nil)
	}

	var req UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", fieldErrors(err))
	}

	client, err := h.clientService.UpdateClient(c.Request().Context(), id, domain.ClientUpdate{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Profession:    req.Profession,
		RecommendedBy: req.RecommendedBy,
		Notes:         req.Notes,
		IsArchived:    req.IsArchived,
	})
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return NewNotFoundError(c, "Client not found")
		}
		if ve, ok := domainFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{ve})
		}
		log.Error().Err(err).Str("client_id", id.String()).Msg("Failed to update client")
		return NewInternalError(c, "Failed to update client")
	}

	return c.JSON(http.StatusOK, toClientResponse(client))
}

// DeleteClient godoc
// @Summary Delete a client
// @Description Sales recorded for the client are kept and still count in dashboard totals
// @Tags clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid client ID", nil)
	}

	if err := h.clientService.DeleteClient(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return NewNotFoundError(c, "Client not found")
		}
		log.Error().Err(err).Str("client_id", id.String()).Msg("Failed to delete client")
		return NewInternalError(c, "Failed to delete client")
	}

	log.Info().Str("client_id", id.String()).Msg("Client deleted")

	return c.NoContent(http.StatusNoContent)
}

func toClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:            client.ID.String(),
		FirstName:     client.FirstName,
		LastName:      client.LastName,
		Phone:         client.Phone,
		Profession:    client.Profession,
		RecommendedBy: client.RecommendedBy,
		Notes:         client.Notes,
		IsArchived:    client.IsArchived,
		CreatedAt:     client.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     client.UpdatedAt.Format(time.RFC3339),
	}
}
