package handler

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// allSentinel is the filter value meaning "no restriction"
const allSentinel = "all"

// parseOptionalID parses a filter ID. Empty and "all" mean no filter.
func parseOptionalID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, allSentinel) {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return &id, nil
}

// parseOptionalInt parses an optional integer query value
func parseOptionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// parseOptionalBool parses an optional boolean query value
func parseOptionalBool(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// parseTimestamp accepts RFC 3339 timestamps and plain dates. Dates are midnight in loc.
func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateLayout, raw, loc)
}

// parseIDParam parses the :id path parameter
func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}

// parseDashboardQuery reads view, year, month, serviceId and clientId.
// All malformed parameters are reported together.
func parseDashboardQuery(c echo.Context) (domain.DashboardQuery, []ValidationError) {
	var (
		q    domain.DashboardQuery
		errs []ValidationError
		err  error
	)

	if q.View, err = domain.ParseView(c.QueryParam("view")); err != nil {
		errs = append(errs, ValidationError{Field: "view", Message: "Must be monthly or yearly"})
	}
	if q.Year, err = parseOptionalInt(c.QueryParam("year")); err != nil {
		errs = append(errs, ValidationError{Field: "year", Message: "Must be a valid integer"})
	} else if q.Year != nil && (*q.Year < domain.MinYear || *q.Year > domain.MaxYear) {
		errs = append(errs, ValidationError{Field: "year", Message: "Must be between 2000 and 2100"})
	}
	if q.Month, err = parseOptionalInt(c.QueryParam("month")); err != nil {
		errs = append(errs, ValidationError{Field: "month", Message: "Must be a valid integer"})
	} else if q.Month != nil && q.View != domain.ViewYearly && (*q.Month < 1 || *q.Month > 12) {
		errs = append(errs, ValidationError{Field: "month", Message: "Must be between 1 and 12"})
	}
	if q.ServiceID, err = parseOptionalID(c.QueryParam("serviceId")); err != nil {
		errs = append(errs, ValidationError{Field: "serviceId", Message: "Must be a valid UUID or \"all\""})
	}
	if q.ClientID, err = parseOptionalID(c.QueryParam("clientId")); err != nil {
		errs = append(errs, ValidationError{Field: "clientId", Message: "Must be a valid UUID or \"all\""})
	}

	return q, errs
}

// nullableInt64 tells an absent JSON field apart from an explicit null
type nullableInt64 struct {
	Set   bool
	Value *int64
}

func (n *nullableInt64) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
