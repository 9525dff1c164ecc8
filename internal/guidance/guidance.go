// Package guidance turns the aggregate scored results into career advice:
// skill gaps, a learning plan, resume edits and salary insights.
package guidance

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/ai"
	"github.com/tarinagarwal/RRC2025/internal/resume"
	"github.com/tarinagarwal/RRC2025/internal/scoring"
)

// LearningRecommendation is one structured entry of the learning plan.
type LearningRecommendation struct {
	Skill         string `json:"skill"`
	Resource      string `json:"resource"`
	Platform      string `json:"platform"`
	EstimatedTime string `json:"estimated_time"`
}

// Guidance is the advice produced at the end of a run. When model-backed
// generation fails it still carries the locally computed skill gaps.
type Guidance struct {
	SkillGaps               []string                 `json:"skill_gaps"`
	LearningRecommendations []LearningRecommendation `json:"learning_recommendations"`
	ResumeImprovements      []string                 `json:"resume_improvements"`
	CareerPaths             []string                 `json:"career_paths"`
	InterviewTips           []string                 `json:"interview_tips"`
	SalaryInsights          string                   `json:"salary_insights"`
}

const (
	maxSkillGaps     = 10
	maxPromptMatches = 5
)

const guidancePrompt = `You are an expert career coach. Analyze the candidate's profile and job search results to provide actionable guidance.

You MUST respond with ONLY a valid JSON object (no markdown, no explanation, just JSON) with these fields:
{
  "skill_gaps": ["skill1", "skill2", ...],
  "learning_recommendations": [{"skill": "...", "resource": "...", "platform": "...", "estimated_time": "..."}],
  "resume_improvements": ["suggestion1", "suggestion2", ...],
  "career_paths": ["path1", "path2", "path3"],
  "interview_tips": ["tip1", "tip2", ...],
  "salary_insights": "Brief insight on salary expectations"
}

Be specific and actionable. Reference actual skills and job titles from the data.

CANDIDATE PROFILE:
Name: %s
Years of Experience: %d
Current Skills: %s
Education: %s
Target Roles: %s

JOB SEARCH RESULTS:
Total jobs found: %d
Average match score: %.0f%%

TOP MATCHING JOBS:
%s

COMMONLY MISSING SKILLS (from job matches):
%s

Respond with ONLY the JSON object, no other text.`

// Coach generates the career guidance from the scored result set.
type Coach struct {
	generator ai.Generator
	logger    *zap.Logger
}

func NewCoach(generator ai.Generator, logger *zap.Logger) *Coach {
	return &Coach{generator: generator, logger: logger}
}

// Generate asks the model for structured guidance over the top matches. On
// any failure it falls back to a guidance object holding only the
// frequency-based skill gaps, so guidance is never absent when the stage
// runs. The error then carries the degradation reason.
func (c *Coach) Generate(ctx context.Context, profile *resume.Profile, matches []*scoring.Match) (*Guidance, error) {
	if profile == nil {
		return empty(), nil
	}

	topMissing := TopMissingSkills(matches, maxSkillGaps)

	prompt := fmt.Sprintf(guidancePrompt,
		profile.Contact.Name,
		profile.YearsOfExperience,
		strings.Join(headList(profile.Skills.Technical, 15), ", "),
		profile.FirstDegree(),
		strings.Join(profile.TargetRoles, ", "),
		len(matches),
		averageScore(matches)*100,
		formatTopMatches(matches),
		strings.Join(topMissing, ", "),
	)

	response, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return fallback(topMissing), ai.Unreachable("career guidance", err)
	}

	var parsed Guidance
	if err := json.Unmarshal([]byte(ai.ExtractJSONObject(response)), &parsed); err != nil {
		return fallback(topMissing), ai.Unparseable("career guidance", err)
	}

	if parsed.SkillGaps == nil {
		parsed.SkillGaps = topMissing
	}
	normalize(&parsed)

	c.logger.Debug("career guidance generated",
		zap.Int("skill_gaps", len(parsed.SkillGaps)),
		zap.Int("learning_recommendations", len(parsed.LearningRecommendations)),
	)

	return &parsed, nil
}

// TopMissingSkills aggregates missing skills across all matches by
// frequency, breaking ties by first-seen order, and returns at most n.
func TopMissingSkills(matches []*scoring.Match, n int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, match := range matches {
		for _, skill := range match.MissingSkills {
			if _, ok := counts[skill]; !ok {
				firstSeen[skill] = order
				order++
			}
			counts[skill]++
		}
	}

	skills := make([]string, 0, len(counts))
	for skill := range counts {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool {
		if counts[skills[i]] != counts[skills[j]] {
			return counts[skills[i]] > counts[skills[j]]
		}
		return firstSeen[skills[i]] < firstSeen[skills[j]]
	})

	if len(skills) > n {
		skills = skills[:n]
	}
	return skills
}

func averageScore(matches []*scoring.Match) float64 {
	if len(matches) == 0 {
		return 0
	}
	var sum float64
	for _, match := range matches {
		sum += match.OverallScore
	}
	return sum / float64(len(matches))
}

func formatTopMatches(matches []*scoring.Match) string {
	top := matches
	if len(top) > maxPromptMatches {
		top = top[:maxPromptMatches]
	}

	var b strings.Builder
	for i, match := range top {
		fmt.Fprintf(&b, "\n%d. %s at %s\n", i+1, match.Title, match.Company)
		fmt.Fprintf(&b, "   Match Score: %.0f%%\n", match.OverallScore*100)
		fmt.Fprintf(&b, "   Matching Skills: %s\n", strings.Join(headList(match.MatchingSkills, 5), ", "))
		fmt.Fprintf(&b, "   Missing Skills: %s\n", strings.Join(headList(match.MissingSkills, 5), ", "))
	}
	return b.String()
}

func fallback(skillGaps []string) *Guidance {
	g := empty()
	g.SkillGaps = skillGaps
	return g
}

func empty() *Guidance {
	return &Guidance{
		SkillGaps:               []string{},
		LearningRecommendations: []LearningRecommendation{},
		ResumeImprovements:      []string{},
		CareerPaths:             []string{},
		InterviewTips:           []string{},
	}
}

func normalize(g *Guidance) {
	if g.LearningRecommendations == nil {
		g.LearningRecommendations = []LearningRecommendation{}
	}
	if g.ResumeImprovements == nil {
		g.ResumeImprovements = []string{}
	}
	if g.CareerPaths == nil {
		g.CareerPaths = []string{}
	}
	if g.InterviewTips == nil {
		g.InterviewTips = []string{}
	}
}

func headList(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
