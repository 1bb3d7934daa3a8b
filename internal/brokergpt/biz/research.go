package biz

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/kart-io/logger"
	"github.com/panjf2000/ants/v2"

	"github.com/kart-io/brokergpt/internal/model"
	"github.com/kart-io/brokergpt/pkg/llm"
	"github.com/kart-io/brokergpt/pkg/llm/resilience"
	"github.com/kart-io/brokergpt/pkg/search"
)

const (
	// researchPages caps how many search hits are fetched per lookup.
	researchPages = 4
	// researchPageLimit truncates each fetched page before prompting.
	researchPageLimit = 4000
)

// ResearchService builds a draft client profile from public web data: it
// searches for the company, fetches the top hits concurrently, and has the
// language model distill them into a profile.
type ResearchService struct {
	searcher search.Provider
	provider llm.ChatProvider
	workers  int
}

// NewResearchService creates a research service. workers bounds the
// concurrent page fetches per lookup.
func NewResearchService(searcher search.Provider, provider llm.ChatProvider, workers int) *ResearchService {
	if workers <= 0 {
		workers = researchPages
	}
	return &ResearchService{searcher: searcher, provider: provider, workers: workers}
}

// Research looks up a company by name and returns a draft client. The draft
// is not persisted. Individual page fetches may fail without failing the
// lookup; the whole lookup fails only when nothing useful was gathered or a
// required provider is missing.
func (s *ResearchService) Research(ctx context.Context, companyName string) (*model.Client, error) {
	if s.searcher == nil || s.provider == nil {
		return nil, errors.New("research requires both a search and a language-model provider")
	}

	results, err := s.searcher.Search(ctx, companyName+" company")
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.New("no search results for " + companyName)
	}
	if len(results) > researchPages {
		results = results[:researchPages]
	}

	pages := s.fetchPages(ctx, results)
	if len(pages) == 0 {
		return nil, errors.New("no pages could be fetched for " + companyName)
	}

	return s.extract(ctx, companyName, results, pages)
}

func (s *ResearchService) fetchPages(ctx context.Context, results []search.Result) []string {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		pool = nil
	}
	if pool != nil {
		defer pool.Release()
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	pages := make([]string, 0, len(results))

	for _, r := range results {
		r := r
		wg.Add(1)
		task := func() {
			defer wg.Done()
			body, fetchErr := s.searcher.Fetch(ctx, r.URL)
			if fetchErr != nil {
				logger.Debugw("research page fetch failed", "url", r.URL, "error", fetchErr)
				return
			}
			if len(body) > researchPageLimit {
				body = body[:researchPageLimit]
			}
			mu.Lock()
			pages = append(pages, body)
			mu.Unlock()
		}
		if pool != nil {
			if submitErr := pool.Submit(task); submitErr != nil {
				wg.Done()
			}
		} else {
			go task()
		}
	}
	wg.Wait()

	return pages
}

func (s *ResearchService) extract(ctx context.Context, companyName string, results []search.Result, pages []string) (*model.Client, error) {
	var sb strings.Builder
	sb.WriteString("Company: " + companyName + "\n\nSearch snippets:\n")
	for _, r := range results {
		sb.WriteString("- " + r.Title + ": " + r.Snippet + "\n")
	}
	sb.WriteString("\nPage excerpts:\n")
	for _, p := range pages {
		sb.WriteString(p)
		sb.WriteString("\n---\n")
	}
	sb.WriteString("\nExtract the company's profile. Use empty strings and zeros for anything not found. ")
	sb.WriteString(`Respond with JSON: {"name":"","address":"","city":"","province":"","postalCode":"","phone":"","email":"","businessType":"","annualRevenue":0,"employees":0,"industry":""}`)

	var profile extractedProfile
	err := resilience.RetryWithBackoff(ctx, resilience.DefaultRetryConfig(), func() error {
		return s.provider.GenerateJSON(ctx, sb.String(),
			"You research companies for an insurance brokerage.", &profile)
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
	if client.Name == "" {
		client.Name = companyName
	}
	if profile.Industry != "" {
		client.RiskProfile = model.JSONMap{"industry": profile.Industry}
	}
	return client, nil
}
