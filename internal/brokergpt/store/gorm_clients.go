package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kart-io/brokergpt/internal/model"
)

type gormClients struct {
	db *gorm.DB
}

// List returns every client.
func (s *gormClients) List(ctx context.Context) ([]*model.Client, error) {
	var clients []*model.Client
	if err := s.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Get retrieves a client by id. Returns (nil, nil) when absent.
func (s *gormClients) Get(ctx context.Context, id uint64) (*model.Client, error) {
	var client model.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// Create inserts a new client and fills in the generated id and timestamp.
func (s *gormClients) Create(ctx context.Context, client *model.Client) error {
	return s.db.WithContext(ctx).Create(client).Error
}

// Update merges the non-zero fields of patch into an existing client and
// returns the stored row. Returns (nil, nil) when the client does not exist.
func (s *gormClients) Update(ctx context.Context, id uint64, patch *model.Client) (*model.Client, error) {
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

// Delete removes a client by id and reports whether a row was deleted.
func (s *gormClients) Delete(ctx context.Context, id uint64) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&model.Client{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindByName finds the first client whose name matches case-insensitively,
// allowing a partial match. Returns (nil, nil) when nothing matches.
func (s *gormClients) FindByName(ctx context.Context, name string) (*model.Client, error) {
	var client model.Client
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("id").
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}
