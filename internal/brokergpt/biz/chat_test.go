package biz

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/brokergpt/internal/brokergpt/store"
	"github.com/kart-io/brokergpt/internal/model"
	"github.com/kart-io/brokergpt/pkg/llm"
	"github.com/kart-io/brokergpt/pkg/utils/httpclient"
	"github.com/kart-io/brokergpt/pkg/utils/json"
)

// stubProvider scripts the provider's behavior and records what it saw.
type stubProvider struct {
	reply    string
	err      error
	calls    int
	lastSeen []llm.Message
	jsonOut  string
}

func (p *stubProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	p.calls++
	p.lastSeen = messages
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	p.calls++
	return p.reply, p.err
}

func (p *stubProvider) GenerateJSON(ctx context.Context, prompt, systemPrompt string, out interface{}) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	if p.jsonOut == "" {
		return errors.New("no scripted JSON")
	}
	return json.Unmarshal([]byte(p.jsonOut), out)
}

func (p *stubProvider) Name() string { return "stub" }

func newOfflineStorage() *store.Facade {
	return store.NewFacade(nil, store.NewMemoryFactory())
}

func TestChatSendPersistsBothSides(t *testing.T) {
	ctx := context.Background()
	storage := newOfflineStorage()
	provider := &stubProvider{reply: "A bakery usually starts with a CGL and property package."}
	svc := NewChatService(storage, provider, nil, nil)

	clientID := uint64(1)
	reply := svc.Send(ctx, &clientID, "what coverage does a bakery need?")
	require.NotNil(t, reply)
	assert.Equal(t, model.ChatRoleAssistant, reply.Role)
	assert.Equal(t, provider.reply, reply.Content)

	transcript := svc.Transcript(ctx, &clientID)
	require.Len(t, transcript, 2)
	assert.Equal(t, model.ChatRoleUser, transcript[0].Role)
	assert.Equal(t, "what coverage does a bakery need?", transcript[0].Content)
	assert.Equal(t, model.ChatRoleAssistant, transcript[1].Role)
}

// The user's message must already be in the transcript when the provider is
// called: the history handed to the provider ends with it.
func TestChatUserMessagePersistedBeforeProviderCall(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{reply: "noted"}
	svc := NewChatService(newOfflineStorage(), provider, nil, nil)

	svc.Send(ctx, nil, "remember this")

	require.NotEmpty(t, provider.lastSeen)
	last := provider.lastSeen[len(provider.lastSeen)-1]
	assert.Equal(t, llm.RoleUser, last.Role)
	assert.Equal(t, "remember this", last.Content)
	assert.Equal(t, llm.RoleSystem, provider.lastSeen[0].Role)
}

func TestChatProviderFailureYieldsApology(t *testing.T) {
	ctx := context.Background()
	storage := newOfflineStorage()
	provider := &stubProvider{err: errors.New("upstream exploded")}
	svc := NewChatService(storage, provider, nil, nil)

	reply := svc.Send(ctx, nil, "hello?")
	require.NotNil(t, reply)
	assert.Equal(t, assistantApology, reply.Content)

	// The apology is part of the record, not just the HTTP response.
	transcript := svc.Transcript(ctx, nil)
	require.Len(t, transcript, 2)
	assert.Equal(t, assistantApology, transcript[1].Content)
}

func TestChatRateLimitTripsCooldown(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{err: &httpclient.StatusError{Code: http.StatusTooManyRequests}}
	svc := NewChatService(newOfflineStorage(), provider, nil, &ChatServiceConfig{CooldownWindow: time.Hour})

	first := svc.Send(ctx, nil, "first")
	assert.Equal(t, assistantApology, first.Content)
	assert.Equal(t, 1, provider.calls, "a rate-limited call is not retried")

	// While cooling down the provider is not called at all.
	second := svc.Send(ctx, nil, "second")
	assert.Equal(t, assistantApology, second.Content)
	assert.Equal(t, 1, provider.calls)
}

func TestChatNoProviderConfigured(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(newOfflineStorage(), nil, nil, nil)

	reply := svc.Send(ctx, nil, "anyone home?")
	require.NotNil(t, reply)
	assert.Equal(t, assistantApology, reply.Content)
}

func TestChatExtractProfile(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{
		jsonOut: `{"name":"Acme Bakery Ltd.","city":"Vancouver","province":"BC","businessType":"Food Services","annualRevenue":900000,"employees":9,"industry":"Hospitality"}`,
	}
	svc := NewChatService(newOfflineStorage(), provider, nil, nil)

	client, err := svc.ExtractProfile(ctx, "Acme Bakery in Vancouver, 9 staff, about 900k revenue")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "Acme Bakery Ltd.", client.Name)
	assert.Equal(t, 9, client.Employees)
	assert.Equal(t, "Hospitality", client.RiskProfile["industry"])
}
