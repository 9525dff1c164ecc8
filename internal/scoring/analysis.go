package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tarinagarwal/RRC2025/internal/ai"
	"github.com/tarinagarwal/RRC2025/internal/jobsearch"
	"github.com/tarinagarwal/RRC2025/internal/resume"
)

// Analysis is the qualitative half of a match: the model's view of which
// skills line up and which are missing. List order is the model's output
// order; entries are not de-duplicated.
type Analysis struct {
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	MatchReasons   []string `json:"match_reasons"`
}

const analysisPrompt = `Analyze how well this candidate matches the job.

Provide:
1. matching_skills: skills the candidate has that match the job
2. missing_skills: important skills the job needs that candidate lacks
3. match_reasons: 2-3 bullet points on why they're a good/bad fit

Return as JSON.

CANDIDATE PROFILE:
Skills: %s
Experience: %d years
Education: %s

JOB REQUIREMENTS:
Title: %s
Required Skills: %s
Experience needed: %d years
Description: %s`

const maxAnalysisDescriptionChars = 1000

// Analyzer obtains the qualitative matching/missing-skills breakdown. On any
// failure it returns empty lists so the quantitative scores can stand alone.
type Analyzer struct {
	generator ai.Generator
}

func NewAnalyzer(generator ai.Generator) *Analyzer {
	return &Analyzer{generator: generator}
}

func (a *Analyzer) Analyze(ctx context.Context, profile *resume.Profile, posting *jobsearch.Posting, reqs *Requirements) (*Analysis, error) {
	description := posting.Description
	if len(description) > maxAnalysisDescriptionChars {
		description = description[:maxAnalysisDescriptionChars]
	}

	prompt := fmt.Sprintf(analysisPrompt,
		strings.Join(headList(profile.Skills.Technical, 15), ", "),
		profile.YearsOfExperience,
		profile.FirstDegree(),
		posting.Title,
		strings.Join(headList(reqs.RequiredSkills, 10), ", "),
		reqs.ExperienceYears,
		description,
	)

	response, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return emptyAnalysis(), ai.Unreachable("match analysis", err)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(ai.ExtractJSONObject(response)), &analysis); err != nil {
		return emptyAnalysis(), ai.Unparseable("match analysis", err)
	}

	if analysis.MatchingSkills == nil {
		analysis.MatchingSkills = []string{}
	}
	if analysis.MissingSkills == nil {
		analysis.MissingSkills = []string{}
	}
	if analysis.MatchReasons == nil {
		analysis.MatchReasons = []string{}
	}

	return &analysis, nil
}

func emptyAnalysis() *Analysis {
	return &Analysis{
		MatchingSkills: []string{},
		MissingSkills:  []string{},
		MatchReasons:   []string{},
	}
}

func headList(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
