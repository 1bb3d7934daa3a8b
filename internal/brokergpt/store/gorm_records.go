package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kart-io/brokergpt/internal/model"
)

type gormRecordTypes struct {
	db *gorm.DB
}

func (s *gormRecordTypes) List(ctx context.Context) ([]*model.RecordType, error) {
	var types []*model.RecordType
	if err := s.db.WithContext(ctx).Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *gormRecordTypes) Get(ctx context.Context, id uint64) (*model.RecordType, error) {
	var rt model.RecordType
	if err := s.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (s *gormRecordTypes) Create(ctx context.Context, rt *model.RecordType) error {
	return s.db.WithContext(ctx).Create(rt).Error
}

type gormClientRecords struct {
	db *gorm.DB
}

// ListByClient returns the detail records attached to a client.
func (s *gormClientRecords) ListByClient(ctx context.Context, clientID uint64) ([]*model.ClientRecord, error) {
	var records []*model.ClientRecord
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *gormClientRecords) Get(ctx context.Context, id uint64) (*model.ClientRecord, error) {
	var record model.ClientRecord
	if err := s.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *gormClientRecords) Create(ctx context.Context, record *model.ClientRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *gormClientRecords) Update(ctx context.Context, id uint64, patch *model.ClientRecord) (*model.ClientRecord, error) {
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

func (s *gormClientRecords) Delete(ctx context.Context, id uint64) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&model.ClientRecord{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
