package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/ai"
	"github.com/tarinagarwal/RRC2025/internal/resume"
)

const (
	// GenericQuery is the final fallback when a profile yields nothing to
	// search for.
	GenericQuery = "software engineer"

	maxQueries = 5
)

const plannerPrompt = `You are a job search expert. Given a candidate's profile, generate optimal search queries.

Create 3-5 search queries that will find the best matching jobs. Consider:
- Their target roles
- Technical skills (use industry-standard terms)
- Experience level (junior/mid/senior)
- Any specializations

Return ONLY a JSON array of search query strings. Example:
["senior python developer", "backend engineer python", "software engineer AWS"]

Profile:
- Target roles: %s
- Technical skills: %s
- Tools: %s
- Years of experience: %d
- Summary: %s`

// Planner turns a profile into a small set of provider search strings.
// It never fails past this stage: every failure degrades to the profile's
// target roles or the generic query.
type Planner struct {
	generator ai.Generator
	logger    *zap.Logger
}

func NewPlanner(generator ai.Generator, logger *zap.Logger) *Planner {
	return &Planner{generator: generator, logger: logger}
}

// Plan returns 1-5 distinct queries. The second return value carries the
// degradation reason when the model path failed and a fallback was used.
func (p *Planner) Plan(ctx context.Context, profile *resume.Profile) ([]string, error) {
	if profile == nil {
		return []string{GenericQuery}, nil
	}
	if len(profile.TargetRoles) == 0 && len(profile.Skills.Technical) == 0 {
		return []string{GenericQuery}, nil
	}

	roles := strings.Join(profile.TargetRoles, ", ")
	if roles == "" {
		roles = "software developer"
	}

	prompt := fmt.Sprintf(plannerPrompt,
		roles,
		strings.Join(head(profile.Skills.Technical, 10), ", "),
		strings.Join(head(profile.Skills.Tools, 10), ", "),
		profile.YearsOfExperience,
		clip(profile.Summary, 500),
	)

	response, err := p.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return fallbackQueries(profile), ai.Unreachable("query planning", err)
	}

	arr, ok := ai.ExtractJSONArray(response)
	if !ok {
		return fallbackQueries(profile), ai.Unparseable("query planning", fmt.Errorf("no JSON array in response"))
	}

	var queries []string
	if err := json.Unmarshal([]byte(arr), &queries); err != nil {
		return fallbackQueries(profile), ai.Unparseable("query planning", err)
	}

	queries = distinct(queries)
	if len(queries) == 0 {
		return fallbackQueries(profile), ai.Unparseable("query planning", fmt.Errorf("model returned no queries"))
	}
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}

	p.logger.Debug("planned search queries", zap.Strings("queries", queries))

	return queries, nil
}

func fallbackQueries(profile *resume.Profile) []string {
	if len(profile.TargetRoles) > 0 {
		return head(profile.TargetRoles, 3)
	}
	return []string{GenericQuery}
}

func head(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func distinct(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		key := strings.ToLower(q)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out
}
