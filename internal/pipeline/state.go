// Package pipeline sequences the job-matching stages: resume parsing,
// profile enhancement, query planning, job search, scoring and career
// guidance. The orchestrator is the only place that advances state between
// stages.
package pipeline

import (
	"github.com/tarinagarwal/RRC2025/internal/guidance"
	"github.com/tarinagarwal/RRC2025/internal/resume"
	"github.com/tarinagarwal/RRC2025/internal/scoring"
)

// Step names the pipeline states. Transitions are strictly linear; the
// terminal error step is entered only when resume parsing itself fails.
type Step string

const (
	StepStart             Step = "start"
	StepResumeParsed      Step = "resume_parsed"
	StepProfileEnhanced   Step = "profile_enhanced"
	StepQueriesGenerated  Step = "queries_generated"
	StepJobsSearched      Step = "jobs_searched"
	StepJobsScored        Step = "jobs_scored"
	StepGuidanceGenerated Step = "guidance_generated"
	StepError             Step = "error"
)

// Request is the public contract of a pipeline run.
type Request struct {
	ResumePath string `json:"resume_path"`
	Location   string `json:"location"`
	Remote     bool   `json:"remote"`
	MinSalary  int    `json:"min_salary"`
}

// State is threaded through every stage. Each stage mutates a disjoint
// subset of its fields; no stage deletes what an earlier stage wrote. The
// error list is the only failure signal for degraded stages.
type State struct {
	Request Request `json:"search_preferences"`

	ResumeRaw map[string]any  `json:"-"`
	Profile   *resume.Profile `json:"profile"`

	SearchQueries []string         `json:"search_queries"`
	JobsFound     []map[string]any `json:"-"`
	TotalJobs     int              `json:"total_jobs_found"`

	Matches    []*scoring.Match `json:"all_matches"`
	TopMatches []*scoring.Match `json:"top_matches"`

	Guidance *guidance.Guidance `json:"career_guidance"`

	CurrentStep Step     `json:"current_step"`
	Errors      []string `json:"errors"`
}

func newState(req Request) *State {
	return &State{
		Request:       req,
		SearchQueries: []string{},
		JobsFound:     []map[string]any{},
		Matches:       []*scoring.Match{},
		TopMatches:    []*scoring.Match{},
		CurrentStep:   StepStart,
		Errors:        []string{},
	}
}

// AddError appends a degraded-failure message to the shared error log.
func (s *State) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}
