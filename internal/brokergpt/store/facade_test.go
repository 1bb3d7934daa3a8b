package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/brokergpt/internal/model"
)

var errBackendDown = errors.New("connection refused")

// failingFactory simulates a primary backend whose every call fails.
type failingFactory struct{ err error }

func (f *failingFactory) Clients() ClientStore             { return &failingClients{f.err} }
func (f *failingFactory) Carriers() CarrierStore           { return &failingCarriers{f.err} }
func (f *failingFactory) Policies() PolicyStore            { return &failingPolicies{f.err} }
func (f *failingFactory) ChatMessages() ChatMessageStore   { return &failingChat{f.err} }
func (f *failingFactory) RecordTypes() RecordTypeStore     { return &failingRecordTypes{f.err} }
func (f *failingFactory) ClientRecords() ClientRecordStore { return &failingClientRecords{f.err} }
func (f *failingFactory) Ping(context.Context) error       { return f.err }
func (f *failingFactory) Close() error                     { return nil }

type failingClients struct{ err error }

func (s *failingClients) List(context.Context) ([]*model.Client, error) { return nil, s.err }
func (s *failingClients) Get(context.Context, uint64) (*model.Client, error) {
	return nil, s.err
}
func (s *failingClients) Create(context.Context, *model.Client) error { return s.err }
func (s *failingClients) Update(context.Context, uint64, *model.Client) (*model.Client, error) {
	return nil, s.err
}
func (s *failingClients) Delete(context.Context, uint64) (bool, error) { return false, s.err }
func (s *failingClients) FindByName(context.Context, string) (*model.Client, error) {
	return nil, s.err
}

type failingCarriers struct{ err error }

func (s *failingCarriers) List(context.Context) ([]*model.Carrier, error) { return nil, s.err }
func (s *failingCarriers) Get(context.Context, uint64) (*model.Carrier, error) {
	return nil, s.err
}
func (s *failingCarriers) Create(context.Context, *model.Carrier) error { return s.err }
func (s *failingCarriers) Update(context.Context, uint64, *model.Carrier) (*model.Carrier, error) {
	return nil, s.err
}
func (s *failingCarriers) Delete(context.Context, uint64) (bool, error) { return false, s.err }
func (s *failingCarriers) FindByRiskProfile(context.Context, RiskProfileQuery) ([]*model.Carrier, error) {
	return nil, s.err
}

type failingPolicies struct{ err error }

func (s *failingPolicies) List(context.Context) ([]*model.Policy, error) { return nil, s.err }
func (s *failingPolicies) ListByClient(context.Context, uint64) ([]*model.Policy, error) {
	return nil, s.err
}
func (s *failingPolicies) Get(context.Context, uint64) (*model.Policy, error) { return nil, s.err }
func (s *failingPolicies) Create(context.Context, *model.Policy) error        { return s.err }
func (s *failingPolicies) Update(context.Context, uint64, *model.Policy) (*model.Policy, error) {
	return nil, s.err
}
func (s *failingPolicies) Delete(context.Context, uint64) (bool, error) { return false, s.err }

type failingChat struct{ err error }

func (s *failingChat) ListByClient(context.Context, *uint64) ([]*model.ChatMessage, error) {
	return nil, s.err
}
func (s *failingChat) Create(context.Context, *model.ChatMessage) error { return s.err }

type failingRecordTypes struct{ err error }

func (s *failingRecordTypes) List(context.Context) ([]*model.RecordType, error) { return nil, s.err }
func (s *failingRecordTypes) Get(context.Context, uint64) (*model.RecordType, error) {
	return nil, s.err
}
func (s *failingRecordTypes) Create(context.Context, *model.RecordType) error { return s.err }

type failingClientRecords struct{ err error }

func (s *failingClientRecords) ListByClient(context.Context, uint64) ([]*model.ClientRecord, error) {
	return nil, s.err
}
func (s *failingClientRecords) Get(context.Context, uint64) (*model.ClientRecord, error) {
	return nil, s.err
}
func (s *failingClientRecords) Create(context.Context, *model.ClientRecord) error { return s.err }
func (s *failingClientRecords) Update(context.Context, uint64, *model.ClientRecord) (*model.ClientRecord, error) {
	return nil, s.err
}
func (s *failingClientRecords) Delete(context.Context, uint64) (bool, error) {
	return false, s.err
}

func newFailingFacade() *Facade {
	primary := &failingFactory{err: errBackendDown}
	return NewFacade(func() Factory { return primary }, NewMemoryFactory())
}

func newOfflineFacade() *Facade {
	return NewFacade(nil, NewMemoryFactory())
}

func TestFacadeFallbackTransparency(t *testing.T) {
	ctx := context.Background()
	facade := newFailingFacade()

	clients := facade.ListClients(ctx)
	require.NotEmpty(t, clients, "failing primary must still yield seeded data")

	carriers := facade.ListCarriers(ctx)
	require.NotEmpty(t, carriers)

	client := facade.GetClient(ctx, clients[0].ID)
	require.NotNil(t, client)
	assert.Equal(t, clients[0].Name, client.Name)
}

// Every public facade operation must return a normal value when the primary
// fails on every call. A panic or a zero-value surprise here breaks the
// degraded mode the whole application leans on.
func TestFacadeNeverPropagatesBackendFailure(t *testing.T) {
	ctx := context.Background()
	facade := newFailingFacade()

	assert.NotPanics(t, func() {
		facade.ListClients(ctx)
		facade.GetClient(ctx, 1)
		facade.CreateClient(ctx, &model.Client{Name: "Acme Co"})
		facade.UpdateClient(ctx, 1, &model.Client{City: "Victoria"})
		facade.DeleteClient(ctx, 1)
		facade.FindClientByName(ctx, "acme")

		facade.ListCarriers(ctx)
		facade.GetCarrier(ctx, 1)
		facade.CreateCarrier(ctx, &model.Carrier{Name: "Test Mutual"})
		facade.UpdateCarrier(ctx, 1, &model.Carrier{Website: "https://example.com"})
		facade.DeleteCarrier(ctx, 1)
		facade.FindCarriersByRiskProfile(ctx, RiskProfileQuery{Industry: "Retail"})

		facade.ListPolicies(ctx)
		facade.ListPoliciesByClient(ctx, 1)
		facade.GetPolicy(ctx, 1)
		facade.CreatePolicy(ctx, &model.Policy{ClientID: 1, CarrierID: 1})
		facade.UpdatePolicy(ctx, 1, &model.Policy{Status: "lapsed"})
		facade.DeletePolicy(ctx, 1)

		clientID := uint64(1)
		facade.ListChatMessages(ctx, &clientID)
		facade.CreateChatMessage(ctx, &model.ChatMessage{Role: model.ChatRoleUser, Content: "hi"})

		facade.ListRecordTypes(ctx)
		facade.GetRecordType(ctx, 1)
		facade.CreateRecordType(ctx, &model.RecordType{Name: "Auto"})

		facade.ListClientRecords(ctx, 1)
		facade.GetClientRecord(ctx, 1)
		facade.CreateClientRecord(ctx, &model.ClientRecord{ClientID: 1, Type: "Revenue"})
		facade.UpdateClientRecord(ctx, 1, &model.ClientRecord{Value: "123"})
		facade.DeleteClientRecord(ctx, 1)
	})
}

func TestFacadeReadYourWriteOnFallback(t *testing.T) {
	ctx := context.Background()
	facade := newFailingFacade()

	created := facade.CreateClient(ctx, &model.Client{Name: "Granville Optics"})
	require.NotNil(t, created)
	require.NotZero(t, created.ID)

	got := facade.GetClient(ctx, created.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Granville Optics", got.Name)

	all := facade.ListClients(ctx)
	found := false
	for _, c := range all {
		if c.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found, "created client must appear in the listing")
}

func TestFacadeIdempotentDelete(t *testing.T) {
	ctx := context.Background()
	facade := newOfflineFacade()

	created := facade.CreateClient(ctx, &model.Client{Name: "Short Lived Ltd."})
	require.NotZero(t, created.ID)

	assert.True(t, facade.DeleteClient(ctx, created.ID))
	assert.False(t, facade.DeleteClient(ctx, created.ID))
	assert.Nil(t, facade.GetClient(ctx, created.ID))

	assert.False(t, facade.DeleteClient(ctx, 424242), "never-existing id deletes to false")
}

// No remote store configured: create goes to the fallback, gets the next
// fallback id, and is visible to a subsequent list.
func TestFacadeCreateWithNoPrimaryConfigured(t *testing.T) {
	ctx := context.Background()
	facade := newOfflineFacade()

	before := facade.ListClients(ctx)
	maxID := uint64(0)
	for _, c := range before {
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	created := facade.CreateClient(ctx, &model.Client{Name: "Acme Co"})
	require.NotNil(t, created)
	assert.Equal(t, maxID+1, created.ID)
	assert.Equal(t, "Acme Co", created.Name)
	assert.NotZero(t, created.CreatedAt)

	after := facade.ListClients(ctx)
	assert.Len(t, after, len(before)+1)
}

// Updating an id absent from both stores returns nil and creates nothing.
func TestFacadeUpdateMissingCreatesNothing(t *testing.T) {
	ctx := context.Background()
	facade := newFailingFacade()

	before := len(facade.ListClients(ctx))
	updated := facade.UpdateClient(ctx, 999, &model.Client{Name: "Ghost Inc."})
	assert.Nil(t, updated)
	assert.Len(t, facade.ListClients(ctx), before)
	assert.Nil(t, facade.GetClient(ctx, 999))
}

// An empty transcript reads as an empty slice, not a failure.
func TestFacadeEmptyChatTranscript(t *testing.T) {
	ctx := context.Background()
	facade := newOfflineFacade()

	clientID := uint64(5)
	messages := facade.ListChatMessages(ctx, &clientID)
	assert.Empty(t, messages)
}

// Sequential client record creates receive strictly increasing ids and list
// back in creation order.
func TestFacadeClientRecordOrdering(t *testing.T) {
	ctx := context.Background()
	facade := newOfflineFacade()

	values := []string{"100", "200", "300", "400", "500"}
	var ids []uint64
	for _, v := range values {
		rec := facade.CreateClientRecord(ctx, &model.ClientRecord{
			ClientID: 2,
			Type:     "Revenue",
			Value:    v,
		})
		require.NotNil(t, rec)
		ids = append(ids, rec.ID)
	}
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1], "ids must be strictly increasing")
	}

	records := facade.ListClientRecords(ctx, 2)
	require.Len(t, records, len(values))
	for i, rec := range records {
		assert.Equal(t, ids[i], rec.ID)
		assert.Equal(t, values[i], rec.Value)
	}
}

func TestFacadeFallsBackPerOperation(t *testing.T) {
	ctx := context.Background()

	// Primary that only fails reads but accepts nothing: every answer must
	// still come back shaped like a healthy one.
	facade := NewFacade(func() Factory { return &failingFactory{err: errBackendDown} }, NewMemoryFactory())

	carriers := facade.FindCarriersByRiskProfile(ctx, RiskProfileQuery{Industry: "Retail"})
	for _, c := range carriers {
		industries := c.AcceptedIndustries()
		if len(industries) > 0 {
			assert.Contains(t, industries, "Retail")
		}
	}
}
