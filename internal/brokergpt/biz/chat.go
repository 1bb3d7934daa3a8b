package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/brokergpt/internal/brokergpt/store"
	"github.com/kart-io/brokergpt/internal/model"
	"github.com/kart-io/brokergpt/pkg/llm"
	"github.com/kart-io/brokergpt/pkg/llm/resilience"
	"github.com/kart-io/brokergpt/pkg/utils/httpclient"
)

// assistantApology is returned verbatim whenever the provider cannot answer.
// The user's message is already persisted by then, so nothing is lost.
const assistantApology = "I'm sorry, I'm having trouble responding right now. Please try again in a moment."

const assistantSystemPrompt = "You are BrokerGPT, an assistant for commercial insurance brokers. " +
	"You help with client intake, carrier selection, and coverage questions. " +
	"Answer concisely and never invent policy details."

// historyLimit caps how many prior messages are replayed to the provider.
const historyLimit = 20

// ChatServiceConfig configures the chat assistant.
type ChatServiceConfig struct {
	// CooldownWindow is how long the provider is left alone after a
	// rate-limit or timeout.
	CooldownWindow time.Duration
}

// DefaultChatServiceConfig returns the default chat configuration.
func DefaultChatServiceConfig() *ChatServiceConfig {
	return &ChatServiceConfig{CooldownWindow: time.Minute}
}

// ChatService runs the chat assistant. Every user message is persisted
// before the provider is called, and every assistant reply (including the
// apology) is persisted before it is returned, so the transcript always
// reflects what the user saw, in order.
type ChatService struct {
	storage  *store.Facade
	provider llm.ChatProvider
	cache    *ReplyCache
	cooldown *resilience.Cooldown
	retry    *resilience.RetryConfig
}

// NewChatService creates a chat service. provider may be nil, in which case
// every message receives the apology reply. cache may be nil to disable
// reply caching.
func NewChatService(storage *store.Facade, provider llm.ChatProvider, cache *ReplyCache, config *ChatServiceConfig) *ChatService {
	if config == nil {
		config = DefaultChatServiceConfig()
	}
	if cache == nil {
		cache = NewReplyCache(nil, nil)
	}
	retry := resilience.DefaultRetryConfig()
	retry.RetryableErrors = func(err error) bool {
		// A rate-limited provider gets a cool-down, not a hammering.
		return !httpclient.IsRateLimited(err)
	}
	return &ChatService{
		storage:  storage,
		provider: provider,
		cache:    cache,
		cooldown: resilience.NewCooldown(config.CooldownWindow),
		retry:    retry,
	}
}

// Transcript returns a conversation in creation order.
func (s *ChatService) Transcript(ctx context.Context, clientID *uint64) []*model.ChatMessage {
	return s.storage.ListChatMessages(ctx, clientID)
}

// Send records the user's message, obtains an assistant reply, records the
// reply, and returns it. Send never fails: when the provider is down,
// cooling down, or unconfigured, the reply is a static apology.
func (s *ChatService) Send(ctx context.Context, clientID *uint64, content string) *model.ChatMessage {
	s.storage.CreateChatMessage(ctx, &model.ChatMessage{
		ClientID: clientID,
		Role:     model.ChatRoleUser,
		Content:  content,
	})

	reply := s.reply(ctx, clientID, content)

	return s.storage.CreateChatMessage(ctx, &model.ChatMessage{
		ClientID: clientID,
		Role:     model.ChatRoleAssistant,
		Content:  reply,
	})
}

func (s *ChatService) reply(ctx context.Context, clientID *uint64, content string) string {
	if s.provider == nil {
		return assistantApology
	}
	if s.cooldown.Active() {
		logger.Debugw("assistant cooling down, replying with apology")
		return assistantApology
	}
	if cached, ok := s.cache.Get(ctx, clientID, content); ok {
		return cached
	}

	messages := s.buildMessages(ctx, clientID)

	var reply string
	err := resilience.RetryWithBackoff(ctx, s.retry, func() error {
		var callErr error
		reply, callErr = s.provider.Chat(ctx, messages)
		return callErr
	})
	if err != nil {
		if httpclient.IsRateLimited(err) || errors.Is(err, context.DeadlineExceeded) {
			s.cooldown.Trip()
		}
		logger.Warnw("assistant reply failed", "error", err)
		return assistantApology
	}

	s.cache.Set(ctx, clientID, content, reply)
	return reply
}

// buildMessages assembles the system prompt, the client's profile when the
// conversation is scoped to one, and the recent transcript. The transcript
// already contains the user's newest message.
func (s *ChatService) buildMessages(ctx context.Context, clientID *uint64) []llm.Message {
	system := assistantSystemPrompt
	if clientID != nil {
		if summary := s.clientContext(ctx, *clientID); summary != "" {
			system += "\n\nCurrent client:\n" + summary
		}
	}

	history := s.storage.ListChatMessages(ctx, clientID)
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	for _, msg := range history {
		role := llm.RoleUser
		if msg.Role == model.ChatRoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}
	return messages
}

func (s *ChatService) clientContext(ctx context.Context, clientID uint64) string {
	client := s.storage.GetClient(ctx, clientID)
	if client == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s, %s), business type %q, %d employees, annual revenue %d.",
		client.Name, client.City, client.Province, client.BusinessType,
		client.Employees, client.AnnualRevenue)

	records := s.storage.ListClientRecords(ctx, clientID)
	for _, r := range records {
		fmt.Fprintf(&sb, "\n- %s: %s (%s)", r.Type, r.Value, r.Description)
	}
	return sb.String()
}

// extractedProfile is the JSON shape the provider fills during intake.
type extractedProfile struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	BusinessType  string `json:"businessType"`
	AnnualRevenue int64  `json:"annualRevenue"`
	Employees     int    `json:"employees"`
	Industry      string `json:"industry"`
}

// ExtractProfile turns free text (an email, a call note) into a draft
// client. The draft is not persisted; the caller decides whether to keep it.
func (s *ChatService) ExtractProfile(ctx context.Context, text string) (*model.Client, error) {
	if s.provider == nil {
		return nil, errors.New("no language-model provider configured")
	}

	prompt := "Extract the company profile from the following text. " +
		"Use empty strings and zeros for anything not mentioned. " +
		`Respond with JSON: {"name":"","address":"","city":"","province":"","postalCode":"","phone":"","email":"","businessType":"","annualRevenue":0,"employees":0,"industry":""}` +
		"\n\nText:\n" + text

	var profile extractedProfile
	err := resilience.RetryWithBackoff(ctx, s.retry, func() error {
		return s.provider.GenerateJSON(ctx, prompt,
			"You extract structured company data for an insurance brokerage.", &profile)
	})
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		Name:          profile.Name,
		Address:       profile.Address,
		City:          profile.City,
		Province:      profile.Province,
		PostalCode:    profile.PostalCode,
		Phone:         profile.Phone,
		Email:         profile.Email,
		BusinessType:  profile.BusinessType,
		AnnualRevenue: profile.AnnualRevenue,
		Employees:     profile.Employees,
	}
	if profile.Industry != "" {
		client.RiskProfile = model.JSONMap{"industry": profile.Industry}
	}
	return client, nil
}
