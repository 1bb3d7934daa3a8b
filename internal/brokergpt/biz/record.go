package biz

import (
	"context"

	"github.com/kart-io/brokergpt/internal/brokergpt/store"
	"github.com/kart-io/brokergpt/internal/model"
)

// RecordService handles record types and per-client detail records.
type RecordService struct {
	storage *store.Facade
}

// NewRecordService creates a new RecordService.
func NewRecordService(storage *store.Facade) *RecordService {
	return &RecordService{storage: storage}
}

// ListTypes lists the record type vocabulary.
func (s *RecordService) ListTypes(ctx context.Context) []*model.RecordType {
	return s.storage.ListRecordTypes(ctx)
}

// GetType retrieves a record type; nil when it does not exist.
func (s *RecordService) GetType(ctx context.Context, id uint64) *model.RecordType {
	return s.storage.GetRecordType(ctx, id)
}

// CreateType adds a record type to the vocabulary.
func (s *RecordService) CreateType(ctx context.Context, rt *model.RecordType) *model.RecordType {
	return s.storage.CreateRecordType(ctx, rt)
}

// ListByClient lists the detail records attached to a client.
func (s *RecordService) ListByClient(ctx context.Context, clientID uint64) []*model.ClientRecord {
	return s.storage.ListClientRecords(ctx, clientID)
}

// Get retrieves a client record; nil when it does not exist.
func (s *RecordService) Get(ctx context.Context, id uint64) *model.ClientRecord {
	return s.storage.GetClientRecord(ctx, id)
}

// Create attaches a new detail record to a client.
func (s *RecordService) Create(ctx context.Context, record *model.ClientRecord) *model.ClientRecord {
	return s.storage.CreateClientRecord(ctx, record)
}

// Update patches an existing client record; nil when it does not exist.
func (s *RecordService) Update(ctx context.Context, id uint64, patch *model.ClientRecord) *model.ClientRecord {
	return s.storage.UpdateClientRecord(ctx, id, patch)
}

// Delete deletes a client record, reporting whether anything was removed.
func (s *RecordService) Delete(ctx context.Context, id uint64) bool {
	return s.storage.DeleteClientRecord(ctx, id)
}
