package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ExportHandler serves dashboard exports as downloads or archived links
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// parseExportQuery reads the dashboard parameters plus format
func parseExportQuery(c echo.Context) (domain.DashboardQuery, domain.ReportFormat, []ValidationError) {
	q, errs := parseDashboardQuery(c)
	format, err := domain.ParseReportFormat(c.QueryParam("format"))
	if err != nil {
		errs = append(errs, ValidationError{Field: "format", Message: "Must be xlsx or pdf"})
	}
	return q, format, errs
}

// Download godoc
// @Summary Download the dashboard
// @Description Renders the dashboard of a month or a year as an XLSX workbook or a PDF
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/pdf
// @Security BearerAuth
// @Param view query string false "monthly or yearly" default(monthly)
// @Param year query int false "Calendar year"
// @Param month query int false "Calendar month 1-12"
// @Param serviceId query string false "Service UUID or all"
// @Param clientId query string false "Client UUID or all"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /dashboard/export [get]
func (h *ExportHandler) Download(c echo.Context) error {
	q, format, errs := parseExportQuery(c)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid export parameters", errs)
	}

	rendered, err := h.exportService.Export(c.Request().Context(), q, format)
	if err != nil {
		if ve, ok := periodFieldError(err); ok {
			return NewValidationError(c, "Invalid export parameters", []ValidationError{ve})
		}
		log.Error().Err(err).Str("format", string(format)).Msg("Failed to render dashboard export")
		return NewInternalError(c, "Failed to render dashboard export")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rendered.Filename))
	return c.Blob(http.StatusOK, rendered.ContentType, rendered.Data)
}

// Archive godoc
// @Summary Archive a dashboard export
// @Description Renders the export, stores it in the report bucket and returns a temporary download link
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param view query string false "monthly or yearly" default(monthly)
// @Param year query int false "Calendar year"
// @Param month query int false "Calendar month 1-12"
// @Param serviceId query string false "Service UUID or all"
// @Param clientId query string false "Client UUID or all"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Success 201 {object} domain.ArchivedReport
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /dashboard/exports [post]
func (h *ExportHandler) Archive(c echo.Context) error {
	if !h.exportService.ArchiveEnabled() {
		return NewServiceUnavailableError(c, "Report storage is not configured")
	}

	q, format, errs := parseExportQuery(c)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid export parameters", errs)
	}

	archived, err := h.exportService.Archive(c.Request().Context(), q, format)
	if err != nil {
		if ve, ok := periodFieldError(err); ok {
			return NewValidationError(c, "Invalid export parameters", []ValidationError{ve})
		}
		if errors.Is(err, domain.ErrStorageDisabled) {
			return NewServiceUnavailableError(c, "Report storage is not configured")
		}
		log.Error().Err(err).Str("format", string(format)).Msg("Failed to archive dashboard export")
		return NewInternalError(c, "Failed to archive dashboard export")
	}

	log.Info().Str("key", archived.Key).Msg("Dashboard export archived")

	return c.JSON(http.StatusCreated, archived)
}
