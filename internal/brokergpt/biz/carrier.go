package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/kart-io/logger"

	"github.com/kart-io/brokergpt/internal/brokergpt/store"
	"github.com/kart-io/brokergpt/internal/model"
	"github.com/kart-io/brokergpt/pkg/llm"
)

// CarrierService handles carrier business logic, including appetite-based
// carrier recommendation for a client.
type CarrierService struct {
	storage  *store.Facade
	provider llm.ChatProvider
}

// NewCarrierService creates a new CarrierService. provider may be nil, in
// which case recommendations skip the ranking step.
func NewCarrierService(storage *store.Facade, provider llm.ChatProvider) *CarrierService {
	return &CarrierService{storage: storage, provider: provider}
}

// List lists all carriers.
func (s *CarrierService) List(ctx context.Context) []*model.Carrier {
	return s.storage.ListCarriers(ctx)
}

// Get retrieves a carrier; nil when it does not exist.
func (s *CarrierService) Get(ctx context.Context, id uint64) *model.Carrier {
	return s.storage.GetCarrier(ctx, id)
}

// Create creates a new carrier.
func (s *CarrierService) Create(ctx context.Context, carrier *model.Carrier) *model.Carrier {
	return s.storage.CreateCarrier(ctx, carrier)
}

// Update patches an existing carrier; nil when it does not exist.
func (s *CarrierService) Update(ctx context.Context, id uint64, patch *model.Carrier) *model.Carrier {
	return s.storage.UpdateCarrier(ctx, id, patch)
}

// Delete deletes a carrier, reporting whether anything was removed.
func (s *CarrierService) Delete(ctx context.Context, id uint64) bool {
	return s.storage.DeleteCarrier(ctx, id)
}

// Match returns the carriers whose declared appetite admits the profile.
func (s *CarrierService) Match(ctx context.Context, q store.RiskProfileQuery) []*model.Carrier {
	return s.storage.FindCarriersByRiskProfile(ctx, q)
}

// Recommend returns appetite-matched carriers for a client, best fit first.
// When a language-model provider is configured the matched set is reordered
// by it; any provider failure keeps the unranked appetite ordering instead
// of failing the request.
func (s *CarrierService) Recommend(ctx context.Context, clientID uint64) []*model.Carrier {
	client := s.storage.GetClient(ctx, clientID)
	if client == nil {
		return nil
	}

	q := store.RiskProfileQuery{CompanySize: client.Employees}
	if industry, ok := client.RiskProfile["industry"].(string); ok && industry != "" {
		q.Industry = industry
	} else {
		q.Industry = client.BusinessType
	}

	matched := s.storage.FindCarriersByRiskProfile(ctx, q)
	if len(matched) < 2 || s.provider == nil {
		return matched
	}

	ranked, err := s.rank(ctx, client, matched)
	if err != nil {
		logger.Warnw("carrier ranking degraded to appetite order", "client_id", clientID, "error", err)
		return matched
	}
	return ranked
}

type rankResult struct {
	CarrierIDs []uint64 `json:"carrierIds"`
}

func (s *CarrierService) rank(ctx context.Context, client *model.Client, carriers []*model.Carrier) ([]*model.Carrier, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Client: %s, business type %q, %d employees, annual revenue %d.\n",
		client.Name, client.BusinessType, client.Employees, client.AnnualRevenue)
	sb.WriteString("Candidate carriers:\n")
	for _, c := range carriers {
		fmt.Fprintf(&sb, "- id=%d name=%q specialties=%s regions=%s premium_range=%d-%d\n",
			c.ID, c.Name, strings.Join(c.Specialties, ","), strings.Join(c.Regions, ","),
			c.MinPremium, c.MaxPremium)
	}
	sb.WriteString("Order the candidate carrier ids from best to worst fit for this client. ")
	sb.WriteString(`Respond with JSON: {"carrierIds": [..]}.`)

	var result rankResult
	err := s.provider.GenerateJSON(ctx, sb.String(),
		"You are an experienced commercial insurance broker matching clients to carriers.",
		&result)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*model.Carrier, len(carriers))
	for _, c := range carriers {
		byID[c.ID] = c
	}

	ranked := make([]*model.Carrier, 0, len(carriers))
	for _, id := range result.CarrierIDs {
		if c, ok := byID[id]; ok {
			ranked = append(ranked, c)
			delete(byID, id)
		}
	}
	// Carriers the model dropped or hallucinated away still belong in the
	// answer; append them in appetite order.
	for _, c := range carriers {
		if _, ok := byID[c.ID]; ok {
			ranked = append(ranked, c)
		}
	}
	return ranked, nil
}
