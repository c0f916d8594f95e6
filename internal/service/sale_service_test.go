package service

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	sales     *testutil.MockSaleRepository
	clients   *testutil.MockClientRepository
	services  *testutil.MockServiceRepository
	publisher *testutil.MockEventPublisher
	svc       *SaleService
	clientID  uuid.UUID
	serviceID uuid.UUID
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		sales:     testutil.NewMockSaleRepository(),
		clients:   testutil.NewMockClientRepository(),
		services:  testutil.NewMockServiceRepository(),
		publisher: testutil.NewMockEventPublisher(),
		clientID:  uuid.New(),
		serviceID: uuid.New(),
	}
	f.clients.AddClient(&domain.Client{ID: f.clientID, FirstName: "Alice", LastName: "Martin"})
	f.services.AddService(&domain.Service{ID: f.serviceID, Name: "Assurance", IsActive: true})
	f.svc = NewSaleService(f.sales, f.clients, f.services)
	f.svc.SetEventPublisher(f.publisher)
	return f
}

func (f *saleFixture) input(amountCents int64) CreateSaleInput {
	return CreateSaleInput{
		ClientID:    f.clientID,
		ServiceID:   f.serviceID,
		AmountCents: amountCents,
		OccurredAt:  time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestSaleService_CreateSale_AppliesDefaults(t *testing.T) {
	f := newSaleFixture()

	sale, err := f.svc.CreateSale(context.Background(), f.input(10000))
	require.NoError(t, err)

	assert.Equal(t, "EUR", sale.Currency)
	assert.True(t, sale.CommissionRatePercent.Equal(decimal.RequireFromString("3.5")))
	assert.True(t, sale.SplitRatio.Equal(decimal.NewFromInt(1)))
	assert.False(t, sale.IsSplit)
	assert.Nil(t, sale.CommissionAmountCentsOverride)
	assert.Equal(t, int64(350), sale.CommissionCents())

	require.Len(t, f.publisher.Events, 1)
	evt := f.publisher.Events[0].Event
	assert.Equal(t, "sale.created", evt.Type)
	view, ok := evt.Payload.(domain.SaleView)
	require.True(t, ok)
	assert.Equal(t, int64(350), view.CommissionCents)
}

func TestSaleService_CreateSale_Validation(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	tooHigh := decimal.NewFromInt(101)
	ratio := decimal.RequireFromString("1.5")
	override := int64(-5)
	currency := "EURO"

	tests := []struct {
		name    string
		mutate  func(in *CreateSaleInput)
		wantErr error
	}{
		{"negative amount", func(in *CreateSaleInput) { in.AmountCents = -1 }, domain.ErrInvalidAmount},
		{"negative rate", func(in *CreateSaleInput) { in.CommissionRatePercent = &negative }, domain.ErrInvalidRate},
		{"rate above 100", func(in *CreateSaleInput) { in.CommissionRatePercent = &tooHigh }, domain.ErrInvalidRate},
		{"split above 1", func(in *CreateSaleInput) { in.SplitRatio = &ratio }, domain.ErrInvalidSplit},
		{"negative override", func(in *CreateSaleInput) { in.CommissionAmountCentsOverride = &override }, domain.ErrInvalidOverride},
		{"bad currency", func(in *CreateSaleInput) { in.Currency = &currency }, domain.ErrInvalidCurrency},
		{"missing date", func(in *CreateSaleInput) { in.OccurredAt = time.Time{} }, domain.ErrOccurredAtNeeded},
		{"unknown client", func(in *CreateSaleInput) { in.ClientID = uuid.New() }, domain.ErrClientNotFound},
		{"unknown service", func(in *CreateSaleInput) { in.ServiceID = uuid.New() }, domain.ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSaleFixture()
			in := f.input(10000)
			tt.mutate(&in)

			_, err := f.svc.CreateSale(context.Background(), in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.sales.Sales)
			assert.Empty(t, f.publisher.Events)
		})
	}
}

func TestSaleService_CreateSale_LowercaseCurrency(t *testing.T) {
	f := newSaleFixture()
	in := f.input(100)
	in.Currency = strPtr(" eur ")

	sale, err := f.svc.CreateSale(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "EUR", sale.Currency)
}

func TestSaleService_UpdateSale(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	in := f.input(20000)
	override := int64(500)
	in.CommissionAmountCentsOverride = &override
	created, err := f.svc.CreateSale(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(500), created.CommissionCents())

	half := decimal.RequireFromString("0.5")
	updated, err := f.svc.UpdateSale(ctx, created.ID, domain.SaleUpdate{IsSplit: boolPtr(true), SplitRatio: &half})
	require.NoError(t, err)
	assert.Equal(t, int64(250), updated.CommissionCents())

	cleared, err := f.svc.UpdateSale(ctx, created.ID, domain.SaleUpdate{ClearOverride: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.CommissionAmountCentsOverride)
	assert.Equal(t, int64(350), cleared.CommissionCents()) // 20000 * 3.5 % * 0.5

	assert.Equal(t, []string{"sale.created", "sale.updated", "sale.updated"}, f.publisher.Types())
}

func TestSaleService_UpdateSale_References(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	created, err := f.svc.CreateSale(ctx, f.input(1000))
	require.NoError(t, err)

	unknown := uuid.New()
	_, err = f.svc.UpdateSale(ctx, created.ID, domain.SaleUpdate{ServiceID: &unknown})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)

	// A sale whose client was deleted stays editable
	delete(f.clients.Clients, f.clientID)
	amount := int64(2000)
	updated, err := f.svc.UpdateSale(ctx, created.ID, domain.SaleUpdate{AmountCents: &amount})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), updated.AmountCents)

	_, err = f.svc.UpdateSale(ctx, uuid.New(), domain.SaleUpdate{})
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestSaleService_GetSales_Filters(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		in := f.input(int64(day * 100))
		in.OccurredAt = time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC)
		_, err := f.svc.CreateSale(ctx, in)
		require.NoError(t, err)
	}

	from := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC) // inclusive
	sales, err := f.svc.GetSales(ctx, domain.SaleListFilters{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, int64(300), sales[0].AmountCents, "most recent first")

	other := uuid.New()
	sales, err = f.svc.GetSales(ctx, domain.SaleListFilters{ClientID: &other})
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestSaleService_DeleteSale(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	created, err := f.svc.CreateSale(ctx, f.input(1000))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSale(ctx, created.ID))
	assert.ErrorIs(t, f.svc.DeleteSale(ctx, created.ID), domain.ErrSaleNotFound)
	assert.Equal(t, []string{"sale.created", "sale.deleted"}, f.publisher.Types())
}
