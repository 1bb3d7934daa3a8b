package store

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/kart-io/brokergpt/internal/model"
)

// datastore implements Factory over a gorm database handle. This is the
// primary store: errors from the driver propagate to the caller unmodified,
// the facade decides what to do with them.
type datastore struct {
	db *gorm.DB

	mu       sync.Mutex
	migrated bool
}

// NewGormFactory creates the primary store factory over db. The pool may
// still be unreachable at this point; the schema is synchronized on the
// first successful Ping.
func NewGormFactory(db *gorm.DB) Factory {
	return &datastore{db: db}
}

// AutoMigrate migrates the database schema for all entities.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Client{},
		&model.Carrier{},
		&model.Policy{},
		&model.ChatMessage{},
		&model.RecordType{},
		&model.ClientRecord{},
	)
}

func (ds *datastore) Clients() ClientStore             { return &gormClients{ds.db} }
func (ds *datastore) Carriers() CarrierStore           { return &gormCarriers{ds.db} }
func (ds *datastore) Policies() PolicyStore            { return &gormPolicies{ds.db} }
func (ds *datastore) ChatMessages() ChatMessageStore   { return &gormChatMessages{ds.db} }
func (ds *datastore) RecordTypes() RecordTypeStore     { return &gormRecordTypes{ds.db} }
func (ds *datastore) ClientRecords() ClientRecordStore { return &gormClientRecords{ds.db} }

// Ping probes the backend and migrates the schema on the first success.
// Migration failures leave the probe failed so a later attempt retries it.
func (ds *datastore) Ping(ctx context.Context) error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.migrated {
		return nil
	}
	if err := AutoMigrate(ds.db); err != nil {
		return err
	}
	ds.migrated = true
	return nil
}

// Close closes the underlying connection pool.
func (ds *datastore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
