package scoring

import (
	"sort"

	"github.com/tarinagarwal/RRC2025/internal/jobsearch"
)

// Match joins a posting with its score breakdown and qualitative analysis.
// Matches are immutable once created.
type Match struct {
	JobID       string   `json:"job_id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	URL         string   `json:"job_url"`
	Description string   `json:"description"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	JobType     string   `json:"job_type"`

	OverallScore    float64 `json:"overall_score"`
	TechnicalScore  float64 `json:"technical_score"`
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`
	LocationScore   float64 `json:"location_score"`

	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	MatchReasons   []string `json:"match_reasons"`
}

const maxStoredDescriptionChars = 500

func newMatch(posting *jobsearch.Posting, breakdown Breakdown, analysis *Analysis) *Match {
	description := posting.Description
	if len(description) > maxStoredDescriptionChars {
		description = description[:maxStoredDescriptionChars]
	}

	return &Match{
		JobID:           posting.ID,
		Title:           posting.Title,
		Company:         posting.Company,
		Location:        posting.Location,
		URL:             posting.URL,
		Description:     description,
		SalaryMin:       posting.SalaryMin,
		SalaryMax:       posting.SalaryMax,
		JobType:         posting.JobType,
		OverallScore:    breakdown.Overall,
		TechnicalScore:  breakdown.Technical,
		ExperienceScore: breakdown.Experience,
		EducationScore:  breakdown.Education,
		LocationScore:   breakdown.Location,
		MatchingSkills:  analysis.MatchingSkills,
		MissingSkills:   analysis.MissingSkills,
		MatchReasons:    analysis.MatchReasons,
	}
}

// SortMatches orders matches by descending overall score. Ties keep their
// original discovery order.
func SortMatches(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].OverallScore > matches[j].OverallScore
	})
}
