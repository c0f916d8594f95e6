package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/service"
	"github.com/dafibh/mandataire/mandataire-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceHandler() (*ServiceHandler, *testutil.MockServiceRepository) {
	repo := testutil.NewMockServiceRepository()
	return NewServiceHandler(service.NewCatalogService(repo)), repo
}

func TestCreateService_DefaultsToActive(t *testing.T) {
	h, _ := newServiceHandler()

	c, rec := newTestContext(http.MethodPost, "/api/v1/services", `{"name": "Assurance emprunteur"}`)
	require.NoError(t, h.CreateService(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var response ServiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Assurance emprunteur", response.Name)
	assert.True(t, response.IsActive)
}

func TestCreateService_MissingName(t *testing.T) {
	h, _ := newServiceHandler()

	c, rec := newTestContext(http.MethodPost, "/api/v1/services", `{"description": "no name"}`)
	require.NoError(t, h.CreateService(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"name"}, problemFields(decodeProblem(t, rec)))
}

func TestGetServices_ActiveFilter(t *testing.T) {
	h, repo := newServiceHandler()
	repo.AddService(&domain.Service{ID: uuid.New(), Name: "Crédit immobilier", IsActive: true})
	repo.AddService(&domain.Service{ID: uuid.New(), Name: "Ancienne offre", IsActive: false})

	c, rec := newTestContext(http.MethodGet, "/api/v1/services?active=true", "")
	require.NoError(t, h.GetServices(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response []ServiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "Crédit immobilier", response[0].Name)
}

func TestUpdateService_Deactivate(t *testing.T) {
	h, repo := newServiceHandler()
	id := uuid.New()
	repo.AddService(&domain.Service{ID: id, Name: "Prévoyance", IsActive: true})

	c, rec := newTestContext(http.MethodPut, "/", `{"isActive": false}`)
	require.NoError(t, h.UpdateService(withID(c, id.String())))
	require.Equal(t, http.StatusOK, rec.Code)

	var response ServiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.IsActive)
	assert.Equal(t, "Prévoyance", response.Name)
}

func TestDeleteService_NotFound(t *testing.T) {
	h, _ := newServiceHandler()

	c, rec := newTestContext(http.MethodDelete, "/", "")
	require.NoError(t, h.DeleteService(withID(c, uuid.NewString())))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
