package store

import (
	"context"

	"github.com/kart-io/logger"

	"github.com/kart-io/brokergpt/internal/model"
)

// Facade is the storage surface the rest of the application talks to. It
// routes every operation to the primary backend when one is live and falls
// back to the in-memory backend when the primary is absent or errors.
//
// The facade never returns an error. Failures are logged and absorbed:
// reads degrade to the fallback's answer, writes land in the fallback, a
// missing record is a nil pointer or a false, never an error. Callers can
// therefore not distinguish a degraded answer from a healthy one, which is
// the intended behavior.
//
// Ids are assigned independently by whichever backend serves a write, so a
// record created during an outage may share an id with a different record
// in the database. The two id spaces are not reconciled.
type Facade struct {
	primary  func() Factory
	fallback Factory
}

// NewFacade builds a facade over a primary source and a fallback backend.
// primary is consulted on every call; it returns nil when no primary is
// configured (nil is allowed for the function itself too), and a non-nil
// factory may still be unreachable, in which case its per-call errors route
// the operation to the fallback. The health state plays no part here: the
// primary is re-attempted on every call for the life of the process.
func NewFacade(primary func() Factory, fallback Factory) *Facade {
	if primary == nil {
		primary = func() Factory { return nil }
	}
	return &Facade{primary: primary, fallback: fallback}
}

func (f *Facade) failover(op string, err error) {
	logger.Warnw("primary store failed, serving from fallback", "op", op, "error", err)
}

// Clients

func (f *Facade) ListClients(ctx context.Context) []*model.Client {
	if p := f.primary(); p != nil {
		out, err := p.Clients().List(ctx)
		if err == nil {
			return out
		}
		f.failover("clients.list", err)
	}
	out, _ := f.fallback.Clients().List(ctx)
	return out
}

func (f *Facade) GetClient(ctx context.Context, id uint64) *model.Client {
	if p := f.primary(); p != nil {
		out, err := p.Clients().Get(ctx, id)
		if err == nil {
			return out
		}
		f.failover("clients.get", err)
	}
	out, _ := f.fallback.Clients().Get(ctx, id)
	return out
}

func (f *Facade) CreateClient(ctx context.Context, client *model.Client) *model.Client {
	if p := f.primary(); p != nil {
		err := p.Clients().Create(ctx, client)
		if err == nil {
			return client
		}
		f.failover("clients.create", err)
	}
	_ = f.fallback.Clients().Create(ctx, client)
	return client
}

func (f *Facade) UpdateClient(ctx context.Context, id uint64, patch *model.Client) *model.Client {
	if p := f.primary(); p != nil {
		out, err := p.Clients().Update(ctx, id, patch)
		if err == nil {
			return out
		}
		f.failover("clients.update", err)
	}
	out, _ := f.fallback.Clients().Update(ctx, id, patch)
	return out
}

func (f *Facade) DeleteClient(ctx context.Context, id uint64) bool {
	if p := f.primary(); p != nil {
		ok, err := p.Clients().Delete(ctx, id)
		if err == nil {
			return ok
		}
		f.failover("clients.delete", err)
	}
	ok, _ := f.fallback.Clients().Delete(ctx, id)
	return ok
}

func (f *Facade) FindClientByName(ctx context.Context, name string) *model.Client {
	if p := f.primary(); p != nil {
		out, err := p.Clients().FindByName(ctx, name)
		if err == nil {
			return out
		}
		f.failover("clients.find_by_name", err)
	}
	out, _ := f.fallback.Clients().FindByName(ctx, name)
	return out
}

// Carriers

func (f *Facade) ListCarriers(ctx context.Context) []*model.Carrier {
	if p := f.primary(); p != nil {
		out, err := p.Carriers().List(ctx)
		if err == nil {
			return out
		}
		f.failover("carriers.list", err)
	}
	out, _ := f.fallback.Carriers().List(ctx)
	return out
}

func (f *Facade) GetCarrier(ctx context.Context, id uint64) *model.Carrier {
	if p := f.primary(); p != nil {
		out, err := p.Carriers().Get(ctx, id)
		if err == nil {
			return out
		}
		f.failover("carriers.get", err)
	}
	out, _ := f.fallback.Carriers().Get(ctx, id)
	return out
}

func (f *Facade) CreateCarrier(ctx context.Context, carrier *model.Carrier) *model.Carrier {
	if p := f.primary(); p != nil {
		err := p.Carriers().Create(ctx, carrier)
		if err == nil {
			return carrier
		}
		f.failover("carriers.create", err)
	}
	_ = f.fallback.Carriers().Create(ctx, carrier)
	return carrier
}

func (f *Facade) UpdateCarrier(ctx context.Context, id uint64, patch *model.Carrier) *model.Carrier {
	if p := f.primary(); p != nil {
		out, err := p.Carriers().Update(ctx, id, patch)
		if err == nil {
			return out
		}
		f.failover("carriers.update", err)
	}
	out, _ := f.fallback.Carriers().Update(ctx, id, patch)
	return out
}

func (f *Facade) DeleteCarrier(ctx context.Context, id uint64) bool {
	if p := f.primary(); p != nil {
		ok, err := p.Carriers().Delete(ctx, id)
		if err == nil {
			return ok
		}
		f.failover("carriers.delete", err)
	}
	ok, _ := f.fallback.Carriers().Delete(ctx, id)
	return ok
}

func (f *Facade) FindCarriersByRiskProfile(ctx context.Context, q RiskProfileQuery) []*model.Carrier {
	if p := f.primary(); p != nil {
		out, err := p.Carriers().FindByRiskProfile(ctx, q)
		if err == nil {
			return out
		}
		f.failover("carriers.find_by_risk_profile", err)
	}
	out, _ := f.fallback.Carriers().FindByRiskProfile(ctx, q)
	return out
}

// Policies

func (f *Facade) ListPolicies(ctx context.Context) []*model.Policy {
	if p := f.primary(); p != nil {
		out, err := p.Policies().List(ctx)
		if err == nil {
			return out
		}
		f.failover("policies.list", err)
	}
	out, _ := f.fallback.Policies().List(ctx)
	return out
}

func (f *Facade) ListPoliciesByClient(ctx context.Context, clientID uint64) []*model.Policy {
	if p := f.primary(); p != nil {
		out, err := p.Policies().ListByClient(ctx, clientID)
		if err == nil {
			return out
		}
		f.failover("policies.list_by_client", err)
	}
	out, _ := f.fallback.Policies().ListByClient(ctx, clientID)
	return out
}

func (f *Facade) GetPolicy(ctx context.Context, id uint64) *model.Policy {
	if p := f.primary(); p != nil {
		out, err := p.Policies().Get(ctx, id)
		if err == nil {
			return out
		}
		f.failover("policies.get", err)
	}
	out, _ := f.fallback.Policies().Get(ctx, id)
	return out
}

func (f *Facade) CreatePolicy(ctx context.Context, policy *model.Policy) *model.Policy {
	if p := f.primary(); p != nil {
		err := p.Policies().Create(ctx, policy)
		if err == nil {
			return policy
		}
		f.failover("policies.create", err)
	}
	_ = f.fallback.Policies().Create(ctx, policy)
	return policy
}

func (f *Facade) UpdatePolicy(ctx context.Context, id uint64, patch *model.Policy) *model.Policy {
	if p := f.primary(); p != nil {
		out, err := p.Policies().Update(ctx, id, patch)
		if err == nil {
			return out
		}
		f.failover("policies.update", err)
	}
	out, _ := f.fallback.Policies().Update(ctx, id, patch)
	return out
}

func (f *Facade) DeletePolicy(ctx context.Context, id uint64) bool {
	if p := f.primary(); p != nil {
		ok, err := p.Policies().Delete(ctx, id)
		if err == nil {
			return ok
		}
		f.failover("policies.delete", err)
	}
	ok, _ := f.fallback.Policies().Delete(ctx, id)
	return ok
}

// Chat messages

func (f *Facade) ListChatMessages(ctx context.Context, clientID *uint64) []*model.ChatMessage {
	if p := f.primary(); p != nil {
		out, err := p.ChatMessages().ListByClient(ctx, clientID)
		if err == nil {
			return out
		}
		f.failover("chat_messages.list", err)
	}
	out, _ := f.fallback.ChatMessages().ListByClient(ctx, clientID)
	return out
}

func (f *Facade) CreateChatMessage(ctx context.Context, msg *model.ChatMessage) *model.ChatMessage {
	if p := f.primary(); p != nil {
		err := p.ChatMessages().Create(ctx, msg)
		if err == nil {
			return msg
		}
		f.failover("chat_messages.create", err)
	}
	_ = f.fallback.ChatMessages().Create(ctx, msg)
	return msg
}

// Record types

func (f *Facade) ListRecordTypes(ctx context.Context) []*model.RecordType {
	if p := f.primary(); p != nil {
		out, err := p.RecordTypes().List(ctx)
		if err == nil {
			return out
		}
		f.failover("record_types.list", err)
	}
	out, _ := f.fallback.RecordTypes().List(ctx)
	return out
}

func (f *Facade) GetRecordType(ctx context.Context, id uint64) *model.RecordType {
	if p := f.primary(); p != nil {
		out, err := p.RecordTypes().Get(ctx, id)
		if err == nil {
			return out
		}
		f.failover("record_types.get", err)
	}
	out, _ := f.fallback.RecordTypes().Get(ctx, id)
	return out
}

func (f *Facade) CreateRecordType(ctx context.Context, rt *model.RecordType) *model.RecordType {
	if p := f.primary(); p != nil {
		err := p.RecordTypes().Create(ctx, rt)
		if err == nil {
			return rt
		}
		f.failover("record_types.create", err)
	}
	_ = f.fallback.RecordTypes().Create(ctx, rt)
	return rt
}

// Client records

func (f *Facade) ListClientRecords(ctx context.Context, clientID uint64) []*model.ClientRecord {
	if p := f.primary(); p != nil {
		out, err := p.ClientRecords().ListByClient(ctx, clientID)
		if err == nil {
			return out
		}
		f.failover("client_records.list", err)
	}
	out, _ := f.fallback.ClientRecords().ListByClient(ctx, clientID)
	return out
}

func (f *Facade) GetClientRecord(ctx context.Context, id uint64) *model.ClientRecord {
	if p := f.primary(); p != nil {
		out, err := p.ClientRecords().Get(ctx, id)
		if err == nil {
			return out
		}
		f.failover("client_records.get", err)
	}
	out, _ := f.fallback.ClientRecords().Get(ctx, id)
	return out
}

func (f *Facade) CreateClientRecord(ctx context.Context, record *model.ClientRecord) *model.ClientRecord {
	if p := f.primary(); p != nil {
		err := p.ClientRecords().Create(ctx, record)
		if err == nil {
			return record
		}
		f.failover("client_records.create", err)
	}
	_ = f.fallback.ClientRecords().Create(ctx, record)
	return record
}

func (f *Facade) UpdateClientRecord(ctx context.Context, id uint64, patch *model.ClientRecord) *model.ClientRecord {
	if p := f.primary(); p != nil {
		out, err := p.ClientRecords().Update(ctx, id, patch)
		if err == nil {
			return out
		}
		f.failover("client_records.update", err)
	}
	out, _ := f.fallback.ClientRecords().Update(ctx, id, patch)
	return out
}

func (f *Facade) DeleteClientRecord(ctx context.Context, id uint64) bool {
	if p := f.primary(); p != nil {
		ok, err := p.ClientRecords().Delete(ctx, id)
		if err == nil {
			return ok
		}
		f.failover("client_records.delete", err)
	}
	ok, _ := f.fallback.ClientRecords().Delete(ctx, id)
	return ok
}
