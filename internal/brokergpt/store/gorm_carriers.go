package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kart-io/brokergpt/internal/model"
)

type gormCarriers struct {
	db *gorm.DB
}

// List returns every carrier.
func (s *gormCarriers) List(ctx context.Context) ([]*model.Carrier, error) {
	var carriers []*model.Carrier
	if err := s.db.WithContext(ctx).Order("id").Find(&carriers).Error; err != nil {
		return nil, err
	}
	return carriers, nil
}

// Get retrieves a carrier by id. Returns (nil, nil) when absent.
func (s *gormCarriers) Get(ctx context.Context, id uint64) (*model.Carrier, error) {
	var carrier model.Carrier
	if err := s.db.WithContext(ctx).First(&carrier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &carrier, nil
}

// Create inserts a new carrier.
func (s *gormCarriers) Create(ctx context.Context, carrier *model.Carrier) error {
	return s.db.WithContext(ctx).Create(carrier).Error
}

// Update merges the non-zero fields of patch into an existing carrier.
func (s *gormCarriers) Update(ctx context.Context, id uint64, patch *model.Carrier) (*model.Carrier, error) {
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

// Delete removes a carrier by id.
func (s *gormCarriers) Delete(ctx context.Context, id uint64) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&model.Carrier{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindByRiskProfile returns the carriers whose risk appetite admits the
// profile. The appetite lives in a schemaless JSON column, so the whole
// table is fetched and filtered in application code rather than in SQL.
func (s *gormCarriers) FindByRiskProfile(ctx context.Context, q RiskProfileQuery) ([]*model.Carrier, error) {
	carriers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterCarriersByProfile(carriers, q), nil
}
