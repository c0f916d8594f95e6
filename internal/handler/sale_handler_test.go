package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/service"
	"github.com/dafibh/mandataire/mandataire-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleHandlerFixture struct {
	handler   *SaleHandler
	sales     *testutil.MockSaleRepository
	clientID  uuid.UUID
	serviceID uuid.UUID
}

func newSaleHandlerFixture(t *testing.T) *saleHandlerFixture {
	t.Helper()
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	sales := testutil.NewMockSaleRepository()
	clients := testutil.NewMockClientRepository()
	services := testutil.NewMockServiceRepository()

	f := &saleHandlerFixture{sales: sales, clientID: uuid.New(), serviceID: uuid.New()}
	clients.AddClient(&domain.Client{ID: f.clientID, FirstName: "Alice", LastName: "Martin"})
	services.AddService(&domain.Service{ID: f.serviceID, Name: "Assurance vie", IsActive: true})
	f.handler = NewSaleHandler(service.NewSaleService(sales, clients, services), paris)
	return f
}

func (f *saleHandlerFixture) addSale(amountCents int64, at time.Time, override *int64) *domain.Sale {
	sale := &domain.Sale{
		ID:                            uuid.New(),
		ClientID:                      f.clientID,
		ServiceID:                     f.serviceID,
		AmountCents:                   amountCents,
		Currency:                      "EUR",
		OccurredAt:                    at,
		CommissionRatePercent:         decimal.RequireFromString("3.5"),
		CommissionAmountCentsOverride: override,
		SplitRatio:                    decimal.NewFromInt(1),
	}
	f.sales.AddSale(sale)
	return sale
}

func TestCreateSale_AppliesDefaults(t *testing.T) {
	f := newSaleHandlerFixture(t)

	body := fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": 10000, "occurredAt": "2024-03-05"}`, f.clientID, f.serviceID)
	c, rec := newTestContext(http.MethodPost, "/api/v1/client-services", body)
	require.NoError(t, f.handler.CreateSale(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var response SaleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "EUR", response.Currency)
	assert.Equal(t, "3.5", response.CommissionRatePercent)
	assert.Equal(t, "1", response.SplitRatio)
	assert.False(t, response.IsSplit)
	assert.Nil(t, response.CommissionAmountCentsOverride)
	assert.Equal(t, int64(350), response.CommissionCents)
	// plain dates are midnight in the configured zone
	assert.Equal(t, "2024-03-05T00:00:00+01:00", response.OccurredAt)
}

func TestCreateSale_SplitOverride(t *testing.T) {
	f := newSaleHandlerFixture(t)

	body := fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": 20000, "occurredAt": "2024-03-20T16:30:00Z",
		"commissionAmountCentsOverride": 500, "isSplit": true, "splitRatio": "0.5", "partnerName": "Cabinet Leroy"}`, f.clientID, f.serviceID)
	c, rec := newTestContext(http.MethodPost, "/api/v1/client-services", body)
	require.NoError(t, f.handler.CreateSale(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var response SaleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(250), response.CommissionCents)
	require.NotNil(t, response.PartnerName)
	assert.Equal(t, "Cabinet Leroy", *response.PartnerName)
}

func TestCreateSale_ValidationErrors(t *testing.T) {
	f := newSaleHandlerFixture(t)

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "missing required fields",
			body:   `{}`,
			fields: []string{"clientId", "serviceId", "amountCents", "occurredAt"},
		},
		{
			name:   "negative amount",
			body:   fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": -1, "occurredAt": "2024-03-05"}`, f.clientID, f.serviceID),
			fields: []string{"amountCents"},
		},
		{
			name:   "bad decimals and date",
			body:   fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": 1, "occurredAt": "05/03/2024", "commissionRatePercent": "abc", "splitRatio": "x"}`, f.clientID, f.serviceID),
			fields: []string{"occurredAt", "commissionRatePercent", "splitRatio"},
		},
		{
			name:   "rate above 100",
			body:   fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": 1, "occurredAt": "2024-03-05", "commissionRatePercent": "100.5"}`, f.clientID, f.serviceID),
			fields: []string{"commissionRatePercent"},
		},
		{
			name:   "split ratio above 1",
			body:   fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": 1, "occurredAt": "2024-03-05", "splitRatio": "1.5"}`, f.clientID, f.serviceID),
			fields: []string{"splitRatio"},
		},
		{
			name:   "rate more precise than stored",
			body:   fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": 1, "occurredAt": "2024-03-05", "commissionRatePercent": "3.125"}`, f.clientID, f.serviceID),
			fields: []string{"commissionRatePercent"},
		},
		{
			name:   "split ratio more precise than stored",
			body:   fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": 1, "occurredAt": "2024-03-05", "splitRatio": "0.33333"}`, f.clientID, f.serviceID),
			fields: []string{"splitRatio"},
		},
		{
			name:   "unknown client",
			body:   fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": 1, "occurredAt": "2024-03-05"}`, uuid.New(), f.serviceID),
			fields: []string{"clientId"},
		},
		{
			name:   "unknown service",
			body:   fmt.Sprintf(`{"clientId": %q, "serviceId": %q, "amountCents": 1, "occurredAt": "2024-03-05"}`, f.clientID, uuid.New()),
			fields: []string{"serviceId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/v1/client-services", tt.body)
			require.NoError(t, f.handler.CreateSale(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.ElementsMatch(t, tt.fields, problemFields(decodeProblem(t, rec)))
		})
	}
	assert.Empty(t, f.sales.Sales)
}

func TestUpdateSale_NullClearsOverride(t *testing.T) {
	f := newSaleHandlerFixture(t)
	override := int64(900)
	sale := f.addSale(10000, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), &override)

	c, rec := newTestContext(http.MethodPut, "/", `{"commissionAmountCentsOverride": null}`)
	require.NoError(t, f.handler.UpdateSale(withID(c, sale.ID.String())))
	require.Equal(t, http.StatusOK, rec.Code)

	var response SaleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Nil(t, response.CommissionAmountCentsOverride)
	assert.Equal(t, int64(350), response.CommissionCents)
}

func TestUpdateSale_OmittedOverrideIsKept(t *testing.T) {
	f := newSaleHandlerFixture(t)
	override := int64(900)
	sale := f.addSale(10000, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), &override)

	c, rec := newTestContext(http.MethodPut, "/", `{"amountCents": 12000, "notes": "renégocié"}`)
	require.NoError(t, f.handler.UpdateSale(withID(c, sale.ID.String())))
	require.Equal(t, http.StatusOK, rec.Code)

	var response SaleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(12000), response.AmountCents)
	require.NotNil(t, response.CommissionAmountCentsOverride)
	assert.Equal(t, int64(900), *response.CommissionAmountCentsOverride)
	assert.Equal(t, int64(900), response.CommissionCents)
}

func TestUpdateSale_NotFound(t *testing.T) {
	f := newSaleHandlerFixture(t)

	c, rec := newTestContext(http.MethodPut, "/", `{"amountCents": 1}`)
	require.NoError(t, f.handler.UpdateSale(withID(c, uuid.NewString())))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSales_InclusiveDateRange(t *testing.T) {
	f := newSaleHandlerFixture(t)
	f.addSale(100, time.Date(2024, 2, 29, 22, 0, 0, 0, time.UTC), nil) // 23:00 in Paris, February
	f.addSale(200, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), nil)
	f.addSale(300, time.Date(2024, 3, 31, 20, 0, 0, 0, time.UTC), nil) // 22:00 in Paris, still March 31
	f.addSale(400, time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC), nil)

	c, rec := newTestContext(http.MethodGet, "/api/v1/client-services?from=2024-03-01&to=2024-03-31&clientId=all", "")
	require.NoError(t, f.handler.GetSales(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response []SaleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, int64(300), response[0].AmountCents, "most recent first")
	assert.Equal(t, int64(200), response[1].AmountCents)
}

func TestGetSales_InvalidFilters(t *testing.T) {
	f := newSaleHandlerFixture(t)

	c, rec := newTestContext(http.MethodGet, "/api/v1/client-services?clientId=x&from=yesterday", "")
	require.NoError(t, f.handler.GetSales(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.ElementsMatch(t, []string{"clientId", "from"}, problemFields(decodeProblem(t, rec)))
}

func TestDeleteSale(t *testing.T) {
	f := newSaleHandlerFixture(t)
	sale := f.addSale(100, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), nil)

	c, rec := newTestContext(http.MethodDelete, "/", "")
	require.NoError(t, f.handler.DeleteSale(withID(c, sale.ID.String())))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, f.sales.Sales)
}
