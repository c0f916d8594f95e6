package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SaleHandler handles recorded client services (sales)
type SaleHandler struct {
	saleService *service.SaleService
	loc         *time.Location
}

// NewSaleHandler creates a new SaleHandler. Plain dates are read as midnight in loc.
func NewSaleHandler(saleService *service.SaleService, loc *time.Location) *SaleHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleHandler{saleService: saleService, loc: loc}
}

// CreateSaleRequest represents the create sale request body.
// Decimals are sent as strings, e.g. "3.5".
type CreateSaleRequest struct {
	ClientID                      string  `json:"clientId" validate:"required,uuid"`
	ServiceID                     string  `json:"serviceId" validate:"required,uuid"`
	AmountCents                   *int64  `json:"amountCents" validate:"required,gte=0"`
	Currency                      *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	OccurredAt                    string  `json:"occurredAt" validate:"required"`
	Notes                         *string `json:"notes,omitempty"`
	CommissionRatePercent         *string `json:"commissionRatePercent,omitempty"`
	CommissionAmountCentsOverride *int64  `json:"commissionAmountCentsOverride,omitempty" validate:"omitempty,gte=0"`
	IsSplit                       *bool   `json:"isSplit,omitempty"`
	SplitRatio                    *string `json:"splitRatio,omitempty"`
	PartnerName                   *string `json:"partnerName,omitempty" validate:"omitempty,max=255"`
}

// UpdateSaleRequest represents the partial update request body.
// An explicit null commissionAmountCentsOverride clears the override.
type UpdateSaleRequest struct {
	ClientID                      *string       `json:"clientId,omitempty" validate:"omitempty,uuid"`
	ServiceID                     *string       `json:"serviceId,omitempty" validate:"omitempty,uuid"`
	AmountCents                   *int64        `json:"amountCents,omitempty" validate:"omitempty,gte=0"`
	Currency                      *string       `json:"currency,omitempty" validate:"omitempty,len=3"`
	OccurredAt                    *string       `json:"occurredAt,omitempty"`
	Notes                         *string       `json:"notes,omitempty"`
	CommissionRatePercent         *string       `json:"commissionRatePercent,omitempty"`
	CommissionAmountCentsOverride nullableInt64 `json:"commissionAmountCentsOverride" swaggertype:"integer"`
	IsSplit                       *bool         `json:"isSplit,omitempty"`
	SplitRatio                    *string       `json:"splitRatio,omitempty"`
	PartnerName                   *string       `json:"partnerName,omitempty" validate:"omitempty,max=255"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID                            string  `json:"id"`
	ClientID                      string  `json:"clientId"`
	ServiceID                     string  `json:"serviceId"`
	AmountCents                   int64   `json:"amountCents"`
	Currency                      string  `json:"currency"`
	OccurredAt                    string  `json:"occurredAt"`
	Notes                         *string `json:"notes"`
	CommissionRatePercent         string  `json:"commissionRatePercent"`
	CommissionAmountCentsOverride *int64  `json:"commissionAmountCentsOverride"`
	IsSplit                       bool    `json:"isSplit"`
	SplitRatio                    string  `json:"splitRatio"`
	PartnerName                   *string `json:"partnerName"`
	CommissionCents               int64   `json:"commissionCents"`
	CreatedAt                     string  `json:"createdAt"`
	UpdatedAt                     string  `json:"updatedAt"`
}

// parseOptionalDecimal parses a decimal string field, recording a field error on failure
func parseOptionalDecimal(raw *string, field string, errs *[]ValidationError) *decimal.Decimal {
	if raw == nil {
		return nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		*errs = append(*errs, ValidationError{Field: field, Message: "Must be a valid decimal number"})
		return nil
	}
	return &d
}

// CreateSale godoc
// @Summary Record a sale
// @Description Records a client service. Currency defaults to EUR, the commission rate to 3.5 and the split ratio to 1.
// @Tags client-services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSaleRequest true "Sale creation request"
// @Success 201 {object} SaleResponse
// @Failure 400 {object} ProblemDetails
// @Router /client-services [post]
func (h *SaleHandler) CreateSale(c echo.Context) error {
	var req CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", fieldErrors(err))
	}

	var errs []ValidationError
	occurredAt, err := parseTimestamp(req.OccurredAt, h.loc)
	if err != nil {
		errs = append(errs, ValidationError{Field: "occurredAt", Message: "Must be an RFC 3339 timestamp or a YYYY-MM-DD date"})
	}
	rate := parseOptionalDecimal(req.CommissionRatePercent, "commissionRatePercent", &errs)
	split := parseOptionalDecimal(req.SplitRatio, "splitRatio", &errs)
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	sale, err := h.saleService.CreateSale(c.Request().Context(), service.CreateSaleInput{
		ClientID:                      uuid.MustParse(req.ClientID),
		ServiceID:                     uuid.MustParse(req.ServiceID),
		AmountCents:                   *req.AmountCents,
		Currency:                      req.Currency,
		OccurredAt:                    occurredAt,
		Notes:                         req.Notes,
		CommissionRatePercent:         rate,
		CommissionAmountCentsOverride: req.CommissionAmountCentsOverride,
		IsSplit:                       req.IsSplit,
		SplitRatio:                    split,
		PartnerName:                   req.PartnerName,
	})
	if err != nil {
		if ve, ok := domainFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{ve})
		}
		log.Error().Err(err).Msg("Failed to create sale")
		return NewInternalError(c, "Failed to create sale")
	}

	log.Info().
		Str("sale_id", sale.ID.String()).
		Str("client_id", sale.ClientID.String()).
		Int64("amount_cents", sale.AmountCents).
		Msg("Sale recorded")

	return c.JSON(http.StatusCreated, toSaleResponse(sale))
}

// GetSales godoc
// @Summary List sales
// @Tags client-services
// @Produce json
// @Security BearerAuth
// @Param clientId query string false "Client UUID or all"
// @Param serviceId query string false "Service UUID or all"
// @Param from query string false "Earliest occurrence, inclusive (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "Latest occurrence, inclusive (YYYY-MM-DD or RFC 3339)"
// @Success 200 {array} SaleResponse
// @Failure 400 {object} ProblemDetails
// @Router /client-services [get]
func (h *SaleHandler) GetSales(c echo.Context) error {
	var (
		filters domain.SaleListFilters
		errs    []ValidationError
		err     error
	)

	if filters.ClientID, err = parseOptionalID(c.QueryParam("clientId")); err != nil {
		errs = append(errs, ValidationError{Field: "clientId", Message: "Must be a valid UUID or \"all\""})
	}
	if filters.ServiceID, err = parseOptionalID(c.QueryParam("serviceId")); err != nil {
		errs = append(errs, ValidationError{Field: "serviceId", Message: "Must be a valid UUID or \"all\""})
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := parseTimestamp(raw, h.loc)
		if err != nil {
			errs = append(errs, ValidationError{Field: "from", Message: "Must be a YYYY-MM-DD date or an RFC 3339 timestamp"})
		} else {
			filters.From = &from
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := parseTimestamp(raw, h.loc)
		if err != nil {
			errs = append(errs, ValidationError{Field: "to", Message: "Must be a YYYY-MM-DD date or an RFC 3339 timestamp"})
		} else {
			if len(raw) == len(dateLayout) {
				// a plain date covers the whole day
				to = to.AddDate(0, 0, 1).Add(-time.Microsecond)
			}
			filters.To = &to
		}
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid query parameters", errs)
	}

	sales, err := h.saleService.GetSales(c.Request().Context(), filters)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list sales")
		return NewInternalError(c, "Failed to list sales")
	}

	response := make([]SaleResponse, len(sales))
	for i, sale := range sales {
		response[i] = toSaleResponse(sale)
	}
	return c.JSON(http.StatusOK, response)
}

// GetSale godoc
// @Summary Get a sale
// @Tags client-services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 200 {object} SaleResponse
// @Failure 404 {object} ProblemDetails
// @Router /client-services/{id} [get]
func (h *SaleHandler) GetSale(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid sale ID", nil)
	}

	sale, err := h.saleService.GetSaleByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			return NewNotFoundError(c, "Sale not found")
		}
		log.Error().Err(err).Str("sale_id", id.String()).Msg("Failed to get sale")
		return NewInternalError(c, "Failed to get sale")
	}

	return c.JSON(http.StatusOK, toSaleResponse(sale))
}

// UpdateSale godoc
// @Summary Update a sale
// @Description Partial update; omitted fields keep their value and a null commissionAmountCentsOverride clears it
// @Tags client-services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Param request body UpdateSaleRequest true "Fields to change"
// @Success 200 {object} SaleResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /client-services/{id} [put]
func (h *SaleHandler) UpdateSale(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid sale ID", nil)
	}

	var req UpdateSaleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", fieldErrors(err))
	}

	var errs []ValidationError
	update := domain.SaleUpdate{
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Notes:       req.Notes,
		IsSplit:     req.IsSplit,
		PartnerName: req.PartnerName,
	}
	if req.ClientID != nil {
		clientID := uuid.MustParse(*req.ClientID)
		update.ClientID = &clientID
	}
	if req.ServiceID != nil {
		serviceID := uuid.MustParse(*req.ServiceID)
		update.ServiceID = &serviceID
	}
	if req.OccurredAt != nil {
		occurredAt, err := parseTimestamp(*req.OccurredAt, h.loc)
		if err != nil {
			errs = append(errs, ValidationError{Field: "occurredAt", Message: "Must be an RFC 3339 timestamp or a YYYY-MM-DD date"})
		} else {
			update.OccurredAt = &occurredAt
		}
	}
	update.CommissionRatePercent = parseOptionalDecimal(req.CommissionRatePercent, "commissionRatePercent", &errs)
	update.SplitRatio = parseOptionalDecimal(req.SplitRatio, "splitRatio", &errs)
	if req.CommissionAmountCentsOverride.Set {
		if req.CommissionAmountCentsOverride.Value == nil {
			update.ClearOverride = true
		} else {
			update.CommissionAmountCentsOverride = req.CommissionAmountCentsOverride.Value
		}
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	sale, err := h.saleService.UpdateSale(c.Request().Context(), id, update)
	if err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			return NewNotFoundError(c, "Sale not found")
		}
		if ve, ok := domainFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{ve})
		}
		log.Error().Err(err).Str("sale_id", id.String()).Msg("Failed to update sale")
		return NewInternalError(c, "Failed to update sale")
	}

	return c.JSON(http.StatusOK, toSaleResponse(sale))
}

// DeleteSale godoc
// @Summary Delete a sale
// @Tags client-services
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /client-services/{id} [delete]
func (h *SaleHandler) DeleteSale(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid sale ID", nil)
	}

	if err := h.saleService.DeleteSale(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			return NewNotFoundError(c, "Sale not found")
		}
		log.Error().Err(err).Str("sale_id", id.String()).Msg("Failed to delete sale")
		return NewInternalError(c, "Failed to delete sale")
	}

	log.Info().Str("sale_id", id.String()).Msg("Sale deleted")

	return c.NoContent(http.StatusNoContent)
}

func toSaleResponse(sale *domain.Sale) SaleResponse {
	return SaleResponse{
		ID:                            sale.ID.String(),
		ClientID:                      sale.ClientID.String(),
		ServiceID:                     sale.ServiceID.String(),
		AmountCents:                   sale.AmountCents,
		Currency:                      sale.Currency,
		OccurredAt:                    sale.OccurredAt.Format(time.RFC3339),
		Notes:                         sale.Notes,
		CommissionRatePercent:         sale.CommissionRatePercent.String(),
		CommissionAmountCentsOverride: sale.CommissionAmountCentsOverride,
		IsSplit:                       sale.IsSplit,
		SplitRatio:                    sale.SplitRatio.String(),
		PartnerName:                   sale.PartnerName,
		CommissionCents:               sale.CommissionCents(),
		CreatedAt:                     sale.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                     sale.UpdatedAt.Format(time.RFC3339),
	}
}
