package service

import (
	"context"
	"strings"
	"testing"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService_CreateClient(t *testing.T) {
	repo := testutil.NewMockClientRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewClientService(repo, "FR")
	svc.SetEventPublisher(publisher)

	client, err := svc.CreateClient(context.Background(), CreateClientInput{
		FirstName: "Jean",
		LastName:  "Moulin",
		Notes:     strPtr("  Rappeler en juin "),
	})
	require.NoError(t, err)

	assert.Nil(t, client.Phone, "phone is optional")
	assert.Equal(t, "Rappeler en juin", *client.Notes)
	assert.Equal(t, "Jean Moulin", client.FullName())
	assert.Equal(t, []string{"client.created"}, publisher.Types())
}

func TestClientService_CreateClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateClientInput
		wantErr error
	}{
		{"missing last name", CreateClientInput{FirstName: "Jean"}, domain.ErrNameRequired},
		{"name too long", CreateClientInput{FirstName: strings.Repeat("a", domain.MaxNameLength+1), LastName: "Moulin"}, domain.ErrNameTooLong},
		{"invalid phone", CreateClientInput{FirstName: "Jean", LastName: "Moulin", Phone: strPtr("not a phone")}, domain.ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewClientService(testutil.NewMockClientRepository(), "FR")
			_, err := svc.CreateClient(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientService_UpdateClient_ClearsPhone(t *testing.T) {
	repo := testutil.NewMockClientRepository()
	svc := NewClientService(repo, "FR")

	id := uuid.New()
	repo.AddClient(&domain.Client{ID: id, FirstName: "Jean", LastName: "Moulin", Phone: strPtr("+33612345678")})

	updated, err := svc.UpdateClient(context.Background(), id, domain.ClientUpdate{Phone: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Phone)
}

func TestClientService_DeleteClient(t *testing.T) {
	repo := testutil.NewMockClientRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewClientService(repo, "FR")
	svc.SetEventPublisher(publisher)

	assert.ErrorIs(t, svc.DeleteClient(context.Background(), uuid.New()), domain.ErrClientNotFound)
	assert.Empty(t, publisher.Events)

	id := uuid.New()
	repo.AddClient(&domain.Client{ID: id, FirstName: "Jean", LastName: "Moulin"})
	require.NoError(t, svc.DeleteClient(context.Background(), id))
	assert.Equal(t, []string{"client.deleted"}, publisher.Types())
}
