package biz

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/brokergpt/internal/brokergpt/store"
)

func TestCarrierRecommendFiltersByAppetite(t *testing.T) {
	ctx := context.Background()
	svc := NewCarrierService(newOfflineStorage(), nil)

	// Seeded client 1 is a construction firm; the retail-only carrier must
	// not be recommended.
	recommended := svc.Recommend(ctx, 1)
	require.NotEmpty(t, recommended)
	for _, c := range recommended {
		assert.NotEqual(t, "Pacific Crest Insurance", c.Name)
	}
}

func TestCarrierRecommendUnknownClient(t *testing.T) {
	ctx := context.Background()
	svc := NewCarrierService(newOfflineStorage(), nil)

	assert.Nil(t, svc.Recommend(ctx, 999))
}

func TestCarrierRecommendRanksWithProvider(t *testing.T) {
	ctx := context.Background()
	storage := newOfflineStorage()

	matched := NewCarrierService(storage, nil).Recommend(ctx, 1)
	require.GreaterOrEqual(t, len(matched), 2)

	// Script the provider to reverse the appetite ordering.
	reversed := `{"carrierIds":[`
	for i := len(matched) - 1; i >= 0; i-- {
		if i < len(matched)-1 {
			reversed += ","
		}
		reversed += strconv.FormatUint(matched[i].ID, 10)
	}
	reversed += `]}`

	provider := &stubProvider{jsonOut: reversed}
	ranked := NewCarrierService(storage, provider).Recommend(ctx, 1)
	require.Len(t, ranked, len(matched))
	assert.Equal(t, matched[len(matched)-1].ID, ranked[0].ID)
}

func TestCarrierRecommendDegradesOnProviderFailure(t *testing.T) {
	ctx := context.Background()
	storage := newOfflineStorage()
	provider := &stubProvider{err: errors.New("model unavailable")}

	matched := NewCarrierService(storage, nil).Recommend(ctx, 1)
	ranked := NewCarrierService(storage, provider).Recommend(ctx, 1)

	require.Len(t, ranked, len(matched))
	for i := range matched {
		assert.Equal(t, matched[i].ID, ranked[i].ID, "failure keeps appetite order")
	}
}

func TestCarrierMatch(t *testing.T) {
	ctx := context.Background()
	svc := NewCarrierService(newOfflineStorage(), nil)

	retail := svc.Match(ctx, store.RiskProfileQuery{Industry: "Retail"})
	var names []string
	for _, c := range retail {
		names = append(names, c.Name)
	}
	assert.NotContains(t, names, "Dominion Mutual")
	assert.Contains(t, names, "Pacific Crest Insurance")
}
