package store

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kart-io/brokergpt/internal/model"
)

func newSQLiteFactory(t *testing.T) Factory {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return NewGormFactory(db)
}

func TestGormClientsCRUD(t *testing.T) {
	ctx := context.Background()
	f := newSQLiteFactory(t)
	clients := f.Clients()

	missing, err := clients.Get(ctx, 1)
	require.NoError(t, err, "absence is not an error")
	assert.Nil(t, missing)

	c := &model.Client{
		Name:         "Acme Co",
		City:         "Vancouver",
		BusinessType: "Retail",
		Employees:    12,
		RiskProfile:  model.JSONMap{"industry": "Retail"},
	}
	require.NoError(t, clients.Create(ctx, c))
	require.NotZero(t, c.ID)
	assert.NotZero(t, c.CreatedAt)

	got, err := clients.Get(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme Co", got.Name)
	assert.Equal(t, "Retail", got.RiskProfile["industry"])

	updated, err := clients.Update(ctx, c.ID, &model.Client{City: "Victoria"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Victoria", updated.City)
	assert.Equal(t, "Acme Co", updated.Name, "untouched fields survive a patch")

	none, err := clients.Update(ctx, 999, &model.Client{Name: "Ghost"})
	require.NoError(t, err)
	assert.Nil(t, none)

	ok, err := clients.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = clients.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok, "second delete reports nothing removed")
}

func TestGormFindClientByName(t *testing.T) {
	ctx := context.Background()
	f := newSQLiteFactory(t)
	clients := f.Clients()

	require.NoError(t, clients.Create(ctx, &model.Client{Name: "Maple Ridge Contracting Ltd."}))
	require.NoError(t, clients.Create(ctx, &model.Client{Name: "Harbourview Bistro Inc."}))

	got, err := clients.FindByName(ctx, "harbourview")
	require.NoError(t, err)
	require.NotNil(t, got, "match is case-insensitive and partial")
	assert.Equal(t, "Harbourview Bistro Inc.", got.Name)

	none, err := clients.FindByName(ctx, "no such client")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGormPoliciesByClient(t *testing.T) {
	ctx := context.Background()
	f := newSQLiteFactory(t)
	policies := f.Policies()

	require.NoError(t, policies.Create(ctx, &model.Policy{ClientID: 1, CarrierID: 1, PolicyType: "CGL"}))
	require.NoError(t, policies.Create(ctx, &model.Policy{ClientID: 2, CarrierID: 1, PolicyType: "Property"}))
	require.NoError(t, policies.Create(ctx, &model.Policy{ClientID: 1, CarrierID: 2, PolicyType: "Auto"}))

	mine, err := policies.ListByClient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	// References are not validated; an unknown client is just empty.
	orphan, err := policies.ListByClient(ctx, 77)
	require.NoError(t, err)
	assert.Empty(t, orphan)
}

func TestGormChatMessagesOrdering(t *testing.T) {
	ctx := context.Background()
	f := newSQLiteFactory(t)
	chat := f.ChatMessages()

	clientID := uint64(1)
	contents := []string{"hello", "hi there", "what carriers fit a bakery?"}
	roles := []string{model.ChatRoleUser, model.ChatRoleAssistant, model.ChatRoleUser}
	for i := range contents {
		require.NoError(t, chat.Create(ctx, &model.ChatMessage{
			ClientID: &clientID,
			Role:     roles[i],
			Content:  contents[i],
		}))
	}

	// Message for another client must not leak into the transcript.
	other := uint64(2)
	require.NoError(t, chat.Create(ctx, &model.ChatMessage{ClientID: &other, Role: model.ChatRoleUser, Content: "unrelated"}))

	transcript, err := chat.ListByClient(ctx, &clientID)
	require.NoError(t, err)
	require.Len(t, transcript, 3)
	for i, msg := range transcript {
		assert.Equal(t, contents[i], msg.Content)
		assert.Equal(t, roles[i], msg.Role)
	}

	empty, err := chat.ListByClient(ctx, &other)
	require.NoError(t, err)
	assert.Len(t, empty, 1)
}

func TestGormClientRecords(t *testing.T) {
	ctx := context.Background()
	f := newSQLiteFactory(t)
	records := f.ClientRecords()

	rec := &model.ClientRecord{ClientID: 1, Type: "Revenue", Value: "1000000", Date: "2026-01-01"}
	require.NoError(t, records.Create(ctx, rec))
	require.NotZero(t, rec.ID)

	updated, err := records.Update(ctx, rec.ID, &model.ClientRecord{Value: "1250000"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "1250000", updated.Value)
	assert.Equal(t, "Revenue", updated.Type)

	ok, err := records.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := records.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestGormRecordTypes(t *testing.T) {
	ctx := context.Background()
	f := newSQLiteFactory(t)
	types := f.RecordTypes()

	require.NoError(t, types.Create(ctx, &model.RecordType{Name: "Property"}))
	require.NoError(t, types.Create(ctx, &model.RecordType{Name: "Revenue"}))

	all, err := types.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
