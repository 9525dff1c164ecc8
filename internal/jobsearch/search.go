package jobsearch

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/resume"
)

const (
	// DefaultLocation is the hard-coded fallback when neither the request
	// nor the profile names a location.
	DefaultLocation = "United States"

	// Only the first three planner queries are searched.
	maxSearchQueries = 3

	defaultResultsWanted = 15
	defaultHoursOld      = 72
)

// Searcher runs planner queries against the provider, fanning out one
// worker per query and merging results in query order with first-occurrence
// de-duplication by posting id.
type Searcher struct {
	provider      Provider
	rules         []CountryRule
	resultsWanted int
	hoursOld      int
	logger        *zap.Logger
}

func NewSearcher(provider Provider, rules []CountryRule, resultsWanted, hoursOld int, logger *zap.Logger) *Searcher {
	if rules == nil {
		rules = DefaultCountryRules()
	}
	if resultsWanted <= 0 {
		resultsWanted = defaultResultsWanted
	}
	if hoursOld <= 0 {
		hoursOld = defaultHoursOld
	}
	return &Searcher{
		provider:      provider,
		rules:         rules,
		resultsWanted: resultsWanted,
		hoursOld:      hoursOld,
		logger:        logger,
	}
}

// ResolveLocation picks the search location: explicit preference, then the
// profile's first preferred location, then the built-in default.
func ResolveLocation(preference string, profile *resume.Profile) string {
	if loc := strings.TrimSpace(preference); loc != "" {
		return loc
	}
	if profile != nil && len(profile.PreferredLocations) > 0 {
		if loc := strings.TrimSpace(profile.PreferredLocations[0]); loc != "" {
			return loc
		}
	}
	return DefaultLocation
}

type queryResult struct {
	jobs []map[string]any
	err  error
}

// Run searches the provider with up to three queries. A failed query is
// returned as an error string and never aborts the remaining queries; the
// merged list preserves query order, keeps the first occurrence of each
// posting id, and drops rows without an id.
func (s *Searcher) Run(ctx context.Context, queries []string, location string, profile *resume.Profile) ([]map[string]any, []string) {
	if len(queries) > maxSearchQueries {
		queries = queries[:maxSearchQueries]
	}

	resolved := ResolveLocation(location, profile)
	country := DetectCountry(s.rules, resolved)

	s.logger.Info("searching jobs",
		zap.Int("queries", len(queries)),
		zap.String("location", resolved),
		zap.String("country", country),
	)

	results := make([]queryResult, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = queryResult{err: fmt.Errorf("search worker panic: %v", r)}
				}
			}()

			jobs, err := s.provider.Search(ctx, Request{
				Query:         query,
				Location:      resolved,
				ResultsWanted: s.resultsWanted,
				HoursOld:      s.hoursOld,
				Country:       country,
			})
			results[i] = queryResult{jobs: jobs, err: err}
		}(i, query)
	}
	wg.Wait()

	var errs []string
	seen := make(map[string]struct{})
	merged := make([]map[string]any, 0)

	for i, result := range results {
		if result.err != nil {
			s.logger.Warn("search query failed",
				zap.String("query", queries[i]),
				zap.Error(result.err),
			)
			errs = append(errs, fmt.Sprintf("Search failed for '%s': %v", queries[i], result.err))
			continue
		}

		s.logger.Debug("search query finished",
			zap.String("query", queries[i]),
			zap.Int("jobs", len(result.jobs)),
		)

		for _, job := range result.jobs {
			id := PostingID(job)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, job)
		}
	}

	s.logger.Info("job search finished", zap.Int("unique_jobs", len(merged)))

	return merged, errs
}
