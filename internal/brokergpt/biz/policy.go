package biz

import (
	"context"

	"github.com/kart-io/brokergpt/internal/brokergpt/store"
	"github.com/kart-io/brokergpt/internal/model"
)

// PolicyService handles policy business logic.
type PolicyService struct {
	storage *store.Facade
}

// NewPolicyService creates a new PolicyService.
func NewPolicyService(storage *store.Facade) *PolicyService {
	return &PolicyService{storage: storage}
}

// List lists all policies.
func (s *PolicyService) List(ctx context.Context) []*model.Policy {
	return s.storage.ListPolicies(ctx)
}

// ListByClient lists the policies referencing a client.
func (s *PolicyService) ListByClient(ctx context.Context, clientID uint64) []*model.Policy {
	return s.storage.ListPoliciesByClient(ctx, clientID)
}

// Get retrieves a policy; nil when it does not exist.
func (s *PolicyService) Get(ctx context.Context, id uint64) *model.Policy {
	return s.storage.GetPolicy(ctx, id)
}

// Create creates a new policy.
func (s *PolicyService) Create(ctx context.Context, policy *model.Policy) *model.Policy {
	return s.storage.CreatePolicy(ctx, policy)
}

// Update patches an existing policy; nil when it does not exist.
func (s *PolicyService) Update(ctx context.Context, id uint64, patch *model.Policy) *model.Policy {
	return s.storage.UpdatePolicy(ctx, id, patch)
}

// Delete deletes a policy, reporting whether anything was removed.
func (s *PolicyService) Delete(ctx context.Context, id uint64) bool {
	return s.storage.DeletePolicy(ctx, id)
}
