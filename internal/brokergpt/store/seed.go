package store

import (
	"context"

	"github.com/kart-io/brokergpt/internal/model"
)

// seedMemory loads the demo dataset into a fresh memory backend. The ids are
// fixed so the UI and the tests can reference them; Create bumps each
// counter past the highest seeded id.
func seedMemory(f *memoryFactory) {
	ctx := context.Background()

	clients := []*model.Client{
		{
			ID:            1,
			Name:          "Maple Ridge Contracting Ltd.",
			Address:       "4510 Lougheed Hwy",
			City:          "Burnaby",
			Province:      "BC",
			PostalCode:    "V5C 3Z9",
			Phone:         "604-555-0134",
			Email:         "office@mapleridgecontracting.ca",
			BusinessType:  "Construction",
			AnnualRevenue: 4_200_000,
			Employees:     38,
			RiskProfile: model.JSONMap{
				"industry":       "Construction",
				"hazards":        []any{"heavy equipment", "working at heights"},
				"safetyMeasures": []any{"site orientations", "fall protection plan"},
			},
		},
		{
			ID:            2,
			Name:          "Harbourview Bistro Inc.",
			Address:       "221 Water St",
			City:          "Vancouver",
			Province:      "BC",
			PostalCode:    "V6B 1B4",
			Phone:         "604-555-0177",
			Email:         "manager@harbourviewbistro.ca",
			BusinessType:  "Hospitality",
			AnnualRevenue: 1_150_000,
			Employees:     22,
			RiskProfile: model.JSONMap{
				"industry": "Hospitality",
				"hazards":  []any{"commercial kitchen", "liquor service"},
			},
		},
		{
			ID:            3,
			Name:          "Cedar Sound Logistics",
			Address:       "88 Annacis Pkwy",
			City:          "Delta",
			Province:      "BC",
			PostalCode:    "V3M 6W5",
			Phone:         "604-555-0102",
			Email:         "dispatch@cedarsound.ca",
			BusinessType:  "Transportation",
			AnnualRevenue: 7_800_000,
			Employees:     64,
			RiskProfile: model.JSONMap{
				"industry": "Transportation",
				"hazards":  []any{"long-haul routes", "cargo handling"},
			},
		},
	}
	for _, c := range clients {
		_ = f.clients.Create(ctx, c)
	}

	carriers := []*model.Carrier{
		{
			ID:           1,
			Name:         "Dominion Mutual",
			ContactEmail: "underwriting@dominionmutual.ca",
			ContactPhone: "1-800-555-0190",
			Website:      "https://www.dominionmutual.ca",
			Specialties:  model.StringList{"commercial property", "fleet"},
			RiskAppetite: model.JSONMap{
				"industries": []any{"Construction", "Transportation"},
			},
			MinPremium:    5_000,
			MaxPremium:    500_000,
			Regions:       model.StringList{"BC", "AB"},
			BusinessTypes: model.StringList{"Construction", "Transportation"},
		},
		{
			ID:           2,
			Name:         "Pacific Crest Insurance",
			ContactEmail: "brokers@pacificcrest.ca",
			ContactPhone: "1-888-555-0142",
			Website:      "https://www.pacificcrest.ca",
			Specialties:  model.StringList{"retail", "hospitality", "general liability"},
			RiskAppetite: model.JSONMap{
				"industries": []any{"Retail", "Hospitality", "Professional Services"},
			},
			MinPremium:    1_200,
			MaxPremium:    150_000,
			Regions:       model.StringList{"BC"},
			BusinessTypes: model.StringList{"Retail", "Hospitality"},
		},
		{
			ID:           3,
			Name:         "Northgate Underwriters",
			ContactEmail: "submissions@northgateuw.com",
			ContactPhone: "1-877-555-0168",
			Website:      "https://www.northgateuw.com",
			Specialties:  model.StringList{"small business package"},
			RiskAppetite: model.JSONMap{
				"company_size": map[string]any{"max": 50},
			},
			MinPremium:    800,
			MaxPremium:    60_000,
			Regions:       model.StringList{"BC", "AB", "SK", "MB"},
			BusinessTypes: model.StringList{},
		},
	}
	for _, c := range carriers {
		_ = f.carriers.Create(ctx, c)
	}

	recordTypes := []*model.RecordType{
		{ID: 1, Name: "Property", Description: "Building and contents values"},
		{ID: 2, Name: "Revenue", Description: "Reported annual revenue"},
		{ID: 3, Name: "CGL", Description: "Commercial general liability limits"},
		{ID: 4, Name: "Employees", Description: "Headcount on record"},
	}
	for _, rt := range recordTypes {
		_ = f.recordTypes.Create(ctx, rt)
	}

	records := []*model.ClientRecord{
		{ID: 1, ClientID: 1, Type: "Property", Description: "Shop and yard, Burnaby", Value: "1850000", Date: "2026-01-15"},
		{ID: 2, ClientID: 1, Type: "Revenue", Description: "FY2025 reported", Value: "4200000", Date: "2026-02-01"},
		{ID: 3, ClientID: 1, Type: "CGL", Description: "Per-occurrence limit", Value: "5000000", Date: "2026-01-15"},
		{ID: 4, ClientID: 1, Type: "Employees", Description: "Including seasonal hires", Value: "38", Date: "2026-02-01"},
	}
	for _, r := range records {
		_ = f.clientRecords.Create(ctx, r)
	}

	policies := []*model.Policy{
		{
			ID:         1,
			ClientID:   1,
			CarrierID:  1,
			PolicyType: "Commercial Property",
			StartDate:  "2026-03-01",
			EndDate:    "2027-03-01",
			Premium:    18_400,
			Status:     "active",
			CoverageLimits: model.JSONMap{
				"building": 1_850_000,
				"contents": 400_000,
			},
		},
		{
			ID:         2,
			ClientID:   2,
			CarrierID:  2,
			PolicyType: "CGL",
			StartDate:  "2026-05-15",
			EndDate:    "2027-05-15",
			Premium:    3_900,
			Status:     "active",
			CoverageLimits: model.JSONMap{
				"per_occurrence": 2_000_000,
				"aggregate":      4_000_000,
			},
		},
	}
	for _, p := range policies {
		_ = f.policies.Create(ctx, p)
	}
}
