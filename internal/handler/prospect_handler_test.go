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

func newProspectHandler() (*ProspectHandler, *testutil.MockProspectRepository) {
	repo := testutil.NewMockProspectRepository()
	return NewProspectHandler(service.NewProspectService(repo, "FR")), repo
}

func TestCreateProspect_Success(t *testing.T) {
	h, repo := newProspectHandler()

	c, rec := newTestContext(http.MethodPost, "/api/v1/prospects",
		`{"firstName": " Claire ", "lastName": "Durand", "phone": "06 12 34 56 78", "recommendedBy": "Alice Martin"}`)
	require.NoError(t, h.CreateProspect(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var response ProspectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Claire", response.FirstName)
	assert.Equal(t, "+33612345678", response.Phone)
	require.NotNil(t, response.RecommendedBy)
	assert.Equal(t, "Alice Martin", *response.RecommendedBy)
	assert.False(t, response.IsArchived)
	assert.Len(t, repo.Prospects, 1)
}

func TestCreateProspect_MissingFields(t *testing.T) {
	h, repo := newProspectHandler()

	c, rec := newTestContext(http.MethodPost, "/api/v1/prospects", `{"firstName": "Claire"}`)
	require.NoError(t, h.CreateProspect(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.ElementsMatch(t, []string{"lastName", "phone"}, problemFields(decodeProblem(t, rec)))
	assert.Empty(t, repo.Prospects)
}

func TestCreateProspect_InvalidPhone(t *testing.T) {
	h, _ := newProspectHandler()

	c, rec := newTestContext(http.MethodPost, "/api/v1/prospects",
		`{"firstName": "Claire", "lastName": "Durand", "phone": "12"}`)
	require.NoError(t, h.CreateProspect(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"phone"}, problemFields(decodeProblem(t, rec)))
}

func TestCreateProspect_BlankName(t *testing.T) {
	h, _ := newProspectHandler()

	c, rec := newTestContext(http.MethodPost, "/api/v1/prospects",
		`{"firstName": "   ", "lastName": "Durand", "phone": "0612345678"}`)
	require.NoError(t, h.CreateProspect(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"name"}, problemFields(decodeProblem(t, rec)))
}

func TestCreateProspect_MalformedBody(t *testing.T) {
	h, _ := newProspectHandler()

	c, rec := newTestContext(http.MethodPost, "/api/v1/prospects", `{"firstName": `)
	require.NoError(t, h.CreateProspect(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProspects_ArchivedFilter(t *testing.T) {
	h, repo := newProspectHandler()
	repo.AddProspect(&domain.Prospect{ID: uuid.New(), FirstName: "Active", LastName: "One", Phone: "+33612345678"})
	repo.AddProspect(&domain.Prospect{ID: uuid.New(), FirstName: "Archived", LastName: "Two", Phone: "+33612345679", IsArchived: true})

	c, rec := newTestContext(http.MethodGet, "/api/v1/prospects?archived=true", "")
	require.NoError(t, h.GetProspects(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response []ProspectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "Archived", response[0].FirstName)
}

func TestGetProspects_InvalidArchivedFlag(t *testing.T) {
	h, _ := newProspectHandler()

	c, rec := newTestContext(http.MethodGet, "/api/v1/prospects?archived=maybe", "")
	require.NoError(t, h.GetProspects(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProspect_NotFoundAndInvalidID(t *testing.T) {
	h, _ := newProspectHandler()

	c, rec := newTestContext(http.MethodGet, "/", "")
	require.NoError(t, h.GetProspect(withID(c, uuid.NewString())))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/", "")
	require.NoError(t, h.GetProspect(withID(c, "not-a-uuid")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProspect_Archive(t *testing.T) {
	h, repo := newProspectHandler()
	id := uuid.New()
	repo.AddProspect(&domain.Prospect{ID: id, FirstName: "Claire", LastName: "Durand", Phone: "+33612345678"})

	c, rec := newTestContext(http.MethodPut, "/", `{"isArchived": true}`)
	require.NoError(t, h.UpdateProspect(withID(c, id.String())))
	require.Equal(t, http.StatusOK, rec.Code)

	var response ProspectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.IsArchived)
	assert.Equal(t, "Claire", response.FirstName)
	assert.True(t, repo.Prospects[id].IsArchived)
}

func TestDeleteProspect(t *testing.T) {
	h, repo := newProspectHandler()
	id := uuid.New()
	repo.AddProspect(&domain.Prospect{ID: id, FirstName: "Claire", LastName: "Durand", Phone: "+33612345678"})

	c, rec := newTestContext(http.MethodDelete, "/", "")
	require.NoError(t, h.DeleteProspect(withID(c, id.String())))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.Prospects)

	c, rec = newTestContext(http.MethodDelete, "/", "")
	require.NoError(t, h.DeleteProspect(withID(c, id.String())))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
