// Package biz implements the business logic for BrokerGPT: client and
// carrier management, policy tracking, the chat assistant, and company
// research.
package biz

import (
	"context"

	"github.com/kart-io/brokergpt/internal/brokergpt/store"
	"github.com/kart-io/brokergpt/internal/model"
)

// ClientService handles client business logic.
type ClientService struct {
	storage *store.Facade
}

// NewClientService creates a new ClientService.
func NewClientService(storage *store.Facade) *ClientService {
	return &ClientService{storage: storage}
}

// List lists all clients.
func (s *ClientService) List(ctx context.Context) []*model.Client {
	return s.storage.ListClients(ctx)
}

// Get retrieves a client; nil when it does not exist.
func (s *ClientService) Get(ctx context.Context, id uint64) *model.Client {
	return s.storage.GetClient(ctx, id)
}

// Create creates a new client.
func (s *ClientService) Create(ctx context.Context, client *model.Client) *model.Client {
	return s.storage.CreateClient(ctx, client)
}

// Update patches an existing client; nil when it does not exist.
func (s *ClientService) Update(ctx context.Context, id uint64, patch *model.Client) *model.Client {
	return s.storage.UpdateClient(ctx, id, patch)
}

// Delete deletes a client, reporting whether anything was removed.
func (s *ClientService) Delete(ctx context.Context, id uint64) bool {
	return s.storage.DeleteClient(ctx, id)
}

// FindByName finds a client by partial, case-insensitive name match.
func (s *ClientService) FindByName(ctx context.Context, name string) *model.Client {
	return s.storage.FindClientByName(ctx, name)
}
