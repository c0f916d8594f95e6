package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetSummary godoc
// @Summary Revenue dashboard
// @Description Totals, commission, breakdowns by service and client, and a zero-filled time series for a month or a year
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param view query string false "monthly or yearly" default(monthly)
// @Param year query int false "Calendar year (defaults to the current year)"
// @Param month query int false "Calendar month 1-12, monthly view only (defaults to the current month)"
// @Param serviceId query string false "Service UUID or all"
// @Param clientId query string false "Client UUID or all"
// @Success 200 {object} domain.DashboardSummary
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	q, errs := parseDashboardQuery(c)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid dashboard parameters", errs)
	}

	summary, err := h.dashboardService.GetSummary(c.Request().Context(), q)
	if err != nil {
		if ve, ok := periodFieldError(err); ok {
			return NewValidationError(c, "Invalid dashboard parameters", []ValidationError{ve})
		}
		log.Error().Err(err).Str("view", string(q.View)).Msg("Failed to compute dashboard summary")
		return NewInternalError(c, "Failed to compute dashboard summary")
	}

	return c.JSON(http.StatusOK, summary)
}

// periodFieldError maps a period resolution error onto its query parameter
func periodFieldError(err error) (ValidationError, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidView):
		return ValidationError{Field: "view", Message: "Must be monthly or yearly"}, true
	case errors.Is(err, domain.ErrInvalidYear):
		return ValidationError{Field: "year", Message: "Must be between 2000 and 2100"}, true
	case errors.Is(err, domain.ErrInvalidMonth):
		return ValidationError{Field: "month", Message: "Must be between 1 and 12"}, true
	}
	return ValidationError{}, false
}
