package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockProspectRepository is a mock implementation of domain.ProspectRepository
type MockProspectRepository struct {
	Prospects map[uuid.UUID]*domain.Prospect
	CreateFn  func(prospect *domain.Prospect) (*domain.Prospect, error)
	ListFn    func(filters domain.ContactFilters) ([]*domain.Prospect, error)
}

// NewMockProspectRepository creates a new MockProspectRepository
func NewMockProspectRepository() *MockProspectRepository {
	return &MockProspectRepository{
		Prospects: make(map[uuid.UUID]*domain.Prospect),
	}
}

// Create stores a prospect under a fresh ID
func (m *MockProspectRepository) Create(ctx context.Context, prospect *domain.Prospect) (*domain.Prospect, error) {
	if m.CreateFn != nil {
		return m.CreateFn(prospect)
	}
	prospect.ID = uuid.New()
	prospect.CreatedAt = time.Now()
	prospect.UpdatedAt = prospect.CreatedAt
	m.Prospects[prospect.ID] = prospect
	return prospect, nil
}

// GetByID retrieves a prospect by ID
func (m *MockProspectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Prospect, error) {
	prospect, ok := m.Prospects[id]
	if !ok {
		return nil, domain.ErrProspectNotFound
	}
	copied := *prospect
	return &copied, nil
}

// List returns prospects matching filters, newest first
func (m *MockProspectRepository) List(ctx context.Context, filters domain.ContactFilters) ([]*domain.Prospect, error) {
	if m.ListFn != nil {
		return m.ListFn(filters)
	}
	result := make([]*domain.Prospect, 0)
	for _, p := range m.Prospects {
		if filters.Archived != nil && p.IsArchived != *filters.Archived {
			continue
		}
		phone := p.Phone
		if !matchesQuery(filters.Query, p.FirstName, p.LastName, &phone, p.Profession, p.RecommendedBy) {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// Update replaces a stored prospect
func (m *MockProspectRepository) Update(ctx context.Context, prospect *domain.Prospect) (*domain.Prospect, error) {
	if _, ok := m.Prospects[prospect.ID]; !ok {
		return nil, domain.ErrProspectNotFound
	}
	prospect.UpdatedAt = time.Now()
	m.Prospects[prospect.ID] = prospect
	return prospect, nil
}

// Delete removes a prospect
func (m *MockProspectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.Prospects[id]; !ok {
		return domain.ErrProspectNotFound
	}
	delete(m.Prospects, id)
	return nil
}

// AddProspect adds a prospect to the mock repository (helper for tests)
func (m *MockProspectRepository) AddProspect(prospect *domain.Prospect) {
	m.Prospects[prospect.ID] = prospect
}

// MockClientRepository is a mock implementation of domain.ClientRepository
type MockClientRepository struct {
	Clients    map[uuid.UUID]*domain.Client
	CreateFn   func(client *domain.Client) (*domain.Client, error)
	GetByIDsFn func(ids []uuid.UUID) ([]*domain.Client, error)
}

// NewMockClientRepository creates a new MockClientRepository
func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		Clients: make(map[uuid.UUID]*domain.Client),
	}
}

// Create stores a client under a fresh ID
func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if m.CreateFn != nil {
		return m.CreateFn(client)
	}
	client.ID = uuid.New()
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt
	m.Clients[client.ID] = client
	return client, nil
}

// GetByID retrieves a client by ID
func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, ok := m.Clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	copied := *client
	return &copied, nil
}

// GetByIDs returns the known clients among ids
func (m *MockClientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Client, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ids)
	}
	result := make([]*domain.Client, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.Clients[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

// List returns clients matching filters, newest first
func (m *MockClientRepository) List(ctx context.Context, filters domain.ContactFilters) ([]*domain.Client, error) {
	result := make([]*domain.Client, 0)
	for _, c := range m.Clients {
		if filters.Archived != nil && c.IsArchived != *filters.Archived {
			continue
		}
		if !matchesQuery(filters.Query, c.FirstName, c.LastName, c.Phone, c.Profession, c.RecommendedBy) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// Update replaces a stored client
func (m *MockClientRepository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if _, ok := m.Clients[client.ID]; !ok {
		return nil, domain.ErrClientNotFound
	}
	client.UpdatedAt = time.Now()
	m.Clients[client.ID] = client
	return client, nil
}

// Delete removes a client
func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.Clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(m.Clients, id)
	return nil
}

// AddClient adds a client to the mock repository (helper for tests)
func (m *MockClientRepository) AddClient(client *domain.Client) {
	m.Clients[client.ID] = client
}

// MockServiceRepository is a mock implementation of domain.ServiceRepository
type MockServiceRepository struct {
	Services   map[uuid.UUID]*domain.Service
	GetByIDsFn func(ids []uuid.UUID) ([]*domain.Service, error)
}

// NewMockServiceRepository creates a new MockServiceRepository
func NewMockServiceRepository() *MockServiceRepository {
	return &MockServiceRepository{
		Services: make(map[uuid.UUID]*domain.Service),
	}
}

// Create stores a service under a fresh ID
func (m *MockServiceRepository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	service.ID = uuid.New()
	service.CreatedAt = time.Now()
	service.UpdatedAt = service.CreatedAt
	m.Services[service.ID] = service
	return service, nil
}

// GetByID retrieves a service by ID
func (m *MockServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	service, ok := m.Services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	copied := *service
	return &copied, nil
}

// GetByIDs returns the known services among ids
func (m *MockServiceRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Service, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ids)
	}
	result := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := m.Services[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

// List returns services matching filters ordered by name
func (m *MockServiceRepository) List(ctx context.Context, filters domain.ServiceFilters) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0)
	for _, s := range m.Services {
		if filters.Active != nil && s.IsActive != *filters.Active {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update replaces a stored service
func (m *MockServiceRepository) Update(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	if _, ok := m.Services[service.ID]; !ok {
		return nil, domain.ErrServiceNotFound
	}
	service.UpdatedAt = time.Now()
	m.Services[service.ID] = service
	return service, nil
}

// Delete removes a service
func (m *MockServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.Services[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(m.Services, id)
	return nil
}

// AddService adds a service to the mock repository (helper for tests)
func (m *MockServiceRepository) AddService(service *domain.Service) {
	m.Services[service.ID] = service
}

// MockSaleRepository is a mock implementation of domain.SaleRepository
type MockSaleRepository struct {
	Sales         map[uuid.UUID]*domain.Sale
	ListInRangeFn func(filter domain.SaleFilter) ([]*domain.Sale, error)
	// LastFilter records the filter of the most recent ListInRange call
	LastFilter *domain.SaleFilter
}

// NewMockSaleRepository creates a new MockSaleRepository
func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		Sales: make(map[uuid.UUID]*domain.Sale),
	}
}

// Create stores a sale under a fresh ID
func (m *MockSaleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	sale.ID = uuid.New()
	sale.CreatedAt = time.Now()
	sale.UpdatedAt = sale.CreatedAt
	m.Sales[sale.ID] = sale
	return sale, nil
}

// GetByID retrieves a sale by ID
func (m *MockSaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	sale, ok := m.Sales[id]
	if !ok {
		return nil, domain.ErrSaleNotFound
	}
	copied := *sale
	return &copied, nil
}

// List returns sales matching filters, most recent first
func (m *MockSaleRepository) List(ctx context.Context, filters domain.SaleListFilters) ([]*domain.Sale, error) {
	result := make([]*domain.Sale, 0)
	for _, s := range m.Sales {
		if filters.ClientID != nil && s.ClientID != *filters.ClientID {
			continue
		}
		if filters.ServiceID != nil && s.ServiceID != *filters.ServiceID {
			continue
		}
		if filters.From != nil && s.OccurredAt.Before(*filters.From) {
			continue
		}
		if filters.To != nil && s.OccurredAt.After(*filters.To) {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OccurredAt.After(result[j].OccurredAt) })
	return result, nil
}

// ListInRange returns sales in [Start, End) matching the equality filters, oldest first
func (m *MockSaleRepository) ListInRange(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	recorded := filter
	m.LastFilter = &recorded
	if m.ListInRangeFn != nil {
		return m.ListInRangeFn(filter)
	}
	result := make([]*domain.Sale, 0)
	for _, s := range m.Sales {
		if !filter.Start.IsZero() && s.OccurredAt.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && !s.OccurredAt.Before(filter.End) {
			continue
		}
		if filter.ServiceID != nil && s.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.ClientID != nil && s.ClientID != *filter.ClientID {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OccurredAt.Before(result[j].OccurredAt) })
	return result, nil
}

// Update replaces a stored sale
func (m *MockSaleRepository) Update(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	if _, ok := m.Sales[sale.ID]; !ok {
		return nil, domain.ErrSaleNotFound
	}
	sale.UpdatedAt = time.Now()
	m.Sales[sale.ID] = sale
	return sale, nil
}

// Delete removes a sale
func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.Sales[id]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(m.Sales, id)
	return nil
}

// AddSale adds a sale to the mock repository (helper for tests)
func (m *MockSaleRepository) AddSale(sale *domain.Sale) {
	m.Sales[sale.ID] = sale
}

// MockSnapshotReader serves dashboard snapshots from the mock repositories
type MockSnapshotReader struct {
	Sales    *MockSaleRepository
	Services *MockServiceRepository
	Clients  *MockClientRepository
	// Err, when set, fails the snapshot before fn runs
	Err   error
	Reads int
}

// NewMockSnapshotReader creates a snapshot reader over the given repositories
func NewMockSnapshotReader(sales *MockSaleRepository, services *MockServiceRepository, clients *MockClientRepository) *MockSnapshotReader {
	return &MockSnapshotReader{Sales: sales, Services: services, Clients: clients}
}

// ReadSnapshot runs fn against the mock repositories
func (m *MockSnapshotReader) ReadSnapshot(ctx context.Context, fn func(src domain.DashboardSource) error) error {
	m.Reads++
	if m.Err != nil {
		return m.Err
	}
	return fn(mockDashboardSource{m})
}

type mockDashboardSource struct {
	r *MockSnapshotReader
}

func (s mockDashboardSource) ListSales(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	return s.r.Sales.ListInRange(ctx, filter)
}

func (s mockDashboardSource) GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Service, error) {
	return s.r.Services.GetByIDs(ctx, ids)
}

func (s mockDashboardSource) GetClientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Client, error) {
	return s.r.Clients.GetByIDs(ctx, ids)
}

// MockReportStore is a mock implementation of domain.ReportStore
type MockReportStore struct {
	Objects  map[string][]byte
	UploadFn func(key string, data []byte) error
}

// NewMockReportStore creates a new MockReportStore
func NewMockReportStore() *MockReportStore {
	return &MockReportStore{Objects: make(map[string][]byte)}
}

// Upload stores data under key
func (m *MockReportStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if m.UploadFn != nil {
		return m.UploadFn(key, data)
	}
	m.Objects[key] = data
	return nil
}

// GeneratePresignedURL returns a fake signed URL for key
func (m *MockReportStore) GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://reports.example.test/" + key + "?expires=" + expiry.String(), nil
}

// PublishedEvent is an event captured by MockEventPublisher
type PublishedEvent struct {
	Event websocket.Event
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	Events []PublishedEvent
	mu     sync.Mutex
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{Events: make([]PublishedEvent, 0)}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Event: event})
}

// Types returns the types of the recorded events in publish order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}

func matchesQuery(q, firstName, lastName string, optional ...*string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	fields := []string{firstName, lastName}
	for _, f := range optional {
		if f != nil {
			fields = append(fields, *f)
		}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
