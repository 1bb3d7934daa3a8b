package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/brokergpt/internal/model"
)

func TestCarrierAcceptsProfile(t *testing.T) {
	constructionOnly := &model.Carrier{
		Name: "Dominion Mutual",
		RiskAppetite: model.JSONMap{
			"industries": []any{"Construction", "Transportation"},
		},
	}
	retailFriendly := &model.Carrier{
		Name: "Pacific Crest Insurance",
		RiskAppetite: model.JSONMap{
			"industries": []any{"Retail", "Hospitality"},
		},
	}
	unrestricted := &model.Carrier{
		Name:         "Northgate Underwriters",
		RiskAppetite: model.JSONMap{"company_size": map[string]any{"max": 50}},
	}

	tests := []struct {
		name    string
		carrier *model.Carrier
		query   RiskProfileQuery
		want    bool
	}{
		{"declared industries exclude retail", constructionOnly, RiskProfileQuery{Industry: "Retail"}, false},
		{"declared industries include retail", retailFriendly, RiskProfileQuery{Industry: "Retail"}, true},
		{"no industry declaration accepts anything", unrestricted, RiskProfileQuery{Industry: "Retail"}, true},
		{"size under declared max", unrestricted, RiskProfileQuery{CompanySize: 40}, true},
		{"size over declared max", unrestricted, RiskProfileQuery{CompanySize: 80}, false},
		{"no size declaration accepts any size", constructionOnly, RiskProfileQuery{Industry: "Construction", CompanySize: 10_000}, true},
		{"empty query accepts everything", constructionOnly, RiskProfileQuery{}, true},
		{"both dimensions must pass", unrestricted, RiskProfileQuery{Industry: "Retail", CompanySize: 80}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CarrierAcceptsProfile(tt.carrier, tt.query))
		})
	}
}

// Both backends run the same predicate; a retail profile must select the
// same carriers from the database-backed store and the in-memory store.
func TestRiskFilterEquivalenceAcrossBackends(t *testing.T) {
	ctx := context.Background()

	primary := newSQLiteFactory(t)
	fallback := NewMemoryFactory()

	seeded, err := fallback.Carriers().List(ctx)
	require.NoError(t, err)
	for _, c := range seeded {
		cp := *c
		cp.ID = 0
		cp.CreatedAt = 0
		require.NoError(t, primary.Carriers().Create(ctx, &cp))
	}

	queries := []RiskProfileQuery{
		{Industry: "Retail"},
		{Industry: "Construction"},
		{Industry: "Transportation", CompanySize: 64},
		{CompanySize: 100},
		{},
	}
	for _, q := range queries {
		fromPrimary, err := primary.Carriers().FindByRiskProfile(ctx, q)
		require.NoError(t, err)
		fromFallback, err := fallback.Carriers().FindByRiskProfile(ctx, q)
		require.NoError(t, err)

		names := func(cs []*model.Carrier) []string {
			out := make([]string, 0, len(cs))
			for _, c := range cs {
				out = append(out, c.Name)
			}
			return out
		}
		assert.Equal(t, names(fromFallback), names(fromPrimary), "query %+v", q)
	}
}

func TestRiskFilterDocumentedExample(t *testing.T) {
	ctx := context.Background()
	fallback := NewMemoryFactory()

	matched, err := fallback.Carriers().FindByRiskProfile(ctx, RiskProfileQuery{Industry: "Retail"})
	require.NoError(t, err)

	var names []string
	for _, c := range matched {
		names = append(names, c.Name)
	}
	assert.NotContains(t, names, "Dominion Mutual")
	assert.Contains(t, names, "Pacific Crest Insurance")
	assert.Contains(t, names, "Northgate Underwriters")
}
