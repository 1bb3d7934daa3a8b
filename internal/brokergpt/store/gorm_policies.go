package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kart-io/brokergpt/internal/model"
)

type gormPolicies struct {
	db *gorm.DB
}

// List returns every policy.
func (s *gormPolicies) List(ctx context.Context) ([]*model.Policy, error) {
	var policies []*model.Policy
	if err := s.db.WithContext(ctx).Order("id").Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

// ListByClient returns the policies referencing a client. The reference is
// not validated; an unknown client simply yields an empty list.
func (s *gormPolicies) ListByClient(ctx context.Context, clientID uint64) ([]*model.Policy, error) {
	var policies []*model.Policy
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id").Find(&policies).Error
	if err != nil {
		return nil, err
	}
	return policies, nil
}

// Get retrieves a policy by id. Returns (nil, nil) when absent.
func (s *gormPolicies) Get(ctx context.Context, id uint64) (*model.Policy, error) {
	var policy model.Policy
	if err := s.db.WithContext(ctx).First(&policy, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &policy, nil
}

// Create inserts a new policy.
func (s *gormPolicies) Create(ctx context.Context, policy *model.Policy) error {
	return s.db.WithContext(ctx).Create(policy).Error
}

// Update merges the non-zero fields of patch into an existing policy.
func (s *gormPolicies) Update(ctx context.Context, id uint64, patch *model.Policy) (*model.Policy, error) {
	existing, err := s.Get(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	patch.ID = 0
	patch.CreatedAt = 0
	if err := s.db.WithContext(ctx).Model(existing).Updates(patch).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a policy by id.
func (s *gormPolicies) Delete(ctx context.Context, id uint64) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&model.Policy{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
