// Package store provides the storage layer for BrokerGPT: a gorm-backed
// primary store, an in-memory fallback store, and the facade that hides
// which of the two answered.
package store

import (
	"context"

	"github.com/kart-io/brokergpt/internal/model"
)

// Factory creates per-entity stores over one backend. Ping probes the
// backend for the health endpoint; request paths never call it and find out
// whether the backend answers by asking it.
type Factory interface {
	Clients() ClientStore
	Carriers() CarrierStore
	Policies() PolicyStore
	ChatMessages() ChatMessageStore
	RecordTypes() RecordTypeStore
	ClientRecords() ClientRecordStore
	Ping(ctx context.Context) error
	Close() error
}

// RiskProfileQuery is the input to carrier matching. Zero values mean the
// dimension is not constrained.
type RiskProfileQuery struct {
	Industry    string `json:"industry"`
	CompanySize int    `json:"companySize"`
}

// ClientStore defines client storage. Get-style methods return (nil, nil)
// when the record does not exist; an error always means the backend failed.
type ClientStore interface {
	List(ctx context.Context) ([]*model.Client, error)
	Get(ctx context.Context, id uint64) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, id uint64, patch *model.Client) (*model.Client, error)
	Delete(ctx context.Context, id uint64) (bool, error)
	FindByName(ctx context.Context, name string) (*model.Client, error)
}

// CarrierStore defines carrier storage.
type CarrierStore interface {
	List(ctx context.Context) ([]*model.Carrier, error)
	Get(ctx context.Context, id uint64) (*model.Carrier, error)
	Create(ctx context.Context, carrier *model.Carrier) error
	Update(ctx context.Context, id uint64, patch *model.Carrier) (*model.Carrier, error)
	Delete(ctx context.Context, id uint64) (bool, error)
	FindByRiskProfile(ctx context.Context, q RiskProfileQuery) ([]*model.Carrier, error)
}

// PolicyStore defines policy storage.
type PolicyStore interface {
	List(ctx context.Context) ([]*model.Policy, error)
	ListByClient(ctx context.Context, clientID uint64) ([]*model.Policy, error)
	Get(ctx context.Context, id uint64) (*model.Policy, error)
	Create(ctx context.Context, policy *model.Policy) error
	Update(ctx context.Context, id uint64, patch *model.Policy) (*model.Policy, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}

// ChatMessageStore defines chat message storage. Messages are append-only.
// A nil clientID selects the conversation not tied to any client.
type ChatMessageStore interface {
	ListByClient(ctx context.Context, clientID *uint64) ([]*model.ChatMessage, error)
	Create(ctx context.Context, msg *model.ChatMessage) error
}

// RecordTypeStore defines record type storage.
type RecordTypeStore interface {
	List(ctx context.Context) ([]*model.RecordType, error)
	Get(ctx context.Context, id uint64) (*model.RecordType, error)
	Create(ctx context.Context, rt *model.RecordType) error
}

// ClientRecordStore defines client record storage.
type ClientRecordStore interface {
	ListByClient(ctx context.Context, clientID uint64) ([]*model.ClientRecord, error)
	Get(ctx context.Context, id uint64) (*model.ClientRecord, error)
	Create(ctx context.Context, record *model.ClientRecord) error
	Update(ctx context.Context, id uint64, patch *model.ClientRecord) (*model.ClientRecord, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}
