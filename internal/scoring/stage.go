package scoring

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/jobsearch"
	"github.com/tarinagarwal/RRC2025/internal/resume"
)

const defaultWorkers = 4

// Stage scores every found posting against the profile. This is the most
// expensive step of a run (one similarity computation and up to two model
// calls per posting) and the most failure-tolerant: no single posting's
// failure blocks its siblings.
type Stage struct {
	extractor *Extractor
	scorer    *Scorer
	analyzer  *Analyzer
	workers   int
	logger    *zap.Logger
}

func NewStage(extractor *Extractor, scorer *Scorer, analyzer *Analyzer, workers int, logger *zap.Logger) *Stage {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Stage{
		extractor: extractor,
		scorer:    scorer,
		analyzer:  analyzer,
		workers:   workers,
		logger:    logger,
	}
}

type postingResult struct {
	match *Match
	errs  []string
}

// ScoreAll fans postings out over a bounded worker pool and merges the
// matches back in discovery order before sorting by score. Worker failures
// are converted to error strings at the worker boundary.
func (s *Stage) ScoreAll(ctx context.Context, profile *resume.Profile, jobs []map[string]any) ([]*Match, []string) {
	if profile == nil || len(jobs) == 0 {
		return []*Match{}, nil
	}

	s.logger.Info("scoring jobs", zap.Int("count", len(jobs)), zap.Int("workers", s.workers))

	results := make([]postingResult, len(jobs))
	sem := make(chan struct{}, s.workers)

	var wg sync.WaitGroup
	for i, raw := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, raw map[string]any) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					results[i] = postingResult{errs: []string{fmt.Sprintf("Scoring worker panic: %v", r)}}
				}
			}()

			results[i] = s.scoreOne(ctx, profile, raw)
		}(i, raw)
	}
	wg.Wait()

	matches := make([]*Match, 0, len(jobs))
	var errs []string
	for _, result := range results {
		errs = append(errs, result.errs...)
		if result.match != nil {
			matches = append(matches, result.match)
		}
	}

	SortMatches(matches)

	s.logger.Info("scoring finished",
		zap.Int("matches", len(matches)),
		zap.Int("degraded", len(errs)),
	)

	return matches, errs
}

func (s *Stage) scoreOne(ctx context.Context, profile *resume.Profile, raw map[string]any) postingResult {
	var errs []string

	posting, err := jobsearch.DecodePosting(raw)
	if err != nil {
		return postingResult{errs: []string{fmt.Sprintf("Skipping malformed posting '%s': %v", jobsearch.PostingID(raw), err)}}
	}

	reqs := s.extractor.Extract(ctx, posting)

	breakdown, err := s.scorer.Score(ctx, profile, posting, reqs)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Similarity scoring degraded for '%s': %v", posting.ID, err))
	}

	analysis, err := s.analyzer.Analyze(ctx, profile, posting, reqs)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Match analysis failed for '%s': %v", posting.ID, err))
	}

	return postingResult{match: newMatch(posting, breakdown, analysis), errs: errs}
}
