package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/guidance"
	"github.com/tarinagarwal/RRC2025/internal/jobsearch"
	"github.com/tarinagarwal/RRC2025/internal/resume"
	"github.com/tarinagarwal/RRC2025/internal/scoring"
)

const topMatchCount = 10

// Progress is pushed to the optional callback as stages advance. The HTTP
// server forwards these to clients; the CLI logs them.
type Progress struct {
	Step    Step   `json:"step"`
	Percent int    `json:"progress"`
	Message string `json:"message"`
}

// ProgressFunc receives progress updates during a run.
type ProgressFunc func(Progress)

// Deps aggregates the stage dependencies of the pipeline.
type Deps struct {
	Parser   resume.Parser
	Enhancer *resume.Enhancer
	Planner  *jobsearch.Planner
	Searcher *jobsearch.Searcher
	Scoring  *scoring.Stage
	Coach    *guidance.Coach
	Logger   *zap.Logger
}

// Pipeline runs the stages in a fixed linear order against one mutable
// state. No stage is retried; every stage is called exactly once per run.
type Pipeline struct {
	deps       Deps
	onProgress ProgressFunc
}

func New(deps Deps) *Pipeline {
	return &Pipeline{deps: deps}
}

// OnProgress installs the progress callback. Must be set before Run.
func (p *Pipeline) OnProgress(fn ProgressFunc) {
	p.onProgress = fn
}

// Run executes the full pipeline. Only a resume-parse failure aborts the
// run (terminal error step, no matches or guidance); every other failure
// degrades into the state's error log and the run continues with fallback
// data.
func (p *Pipeline) Run(ctx context.Context, req Request) *State {
	log := p.deps.Logger
	state := newState(req)

	p.emit(state, 5, "Initializing job matcher...")

	// Stage 1: resume parsing. The only fatal stage.
	raw, err := p.deps.Parser.Parse(ctx, req.ResumePath)
	if err != nil {
		return p.fail(state, fmt.Sprintf("Resume parsing failed: %v", err))
	}
	if msg, flagged := resume.ParseError(raw); flagged {
		return p.fail(state, msg)
	}

	state.ResumeRaw = raw
	state.CurrentStep = StepResumeParsed
	p.emit(state, 25, "Resume parsed! Enhancing profile...")

	// Stage 2: profile enhancement. Degrades to the base profile.
	profile, err := p.deps.Enhancer.Enhance(ctx, raw)
	if err != nil {
		state.AddError(fmt.Sprintf("Profile enhancement failed: %v", err))
		log.Warn("profile enhancement degraded", zap.Error(err))
	}
	state.Profile = profile
	state.CurrentStep = StepProfileEnhanced
	p.emit(state, 35, "Profile enhanced with AI analysis!")

	// Stage 3: query planning. Degrades to target roles or the generic query.
	queries, err := p.deps.Planner.Plan(ctx, profile)
	if err != nil {
		state.AddError(fmt.Sprintf("Query generation failed: %v", err))
		log.Warn("query planning degraded", zap.Error(err))
	}
	state.SearchQueries = queries
	state.CurrentStep = StepQueriesGenerated
	p.emit(state, 50, fmt.Sprintf("Generated %d search queries!", len(queries)))

	// Stage 4: job search. Per-query failures degrade; the merged list keeps
	// the first occurrence of every posting id.
	jobs, searchErrs := p.deps.Searcher.Run(ctx, queries, req.Location, profile)
	for _, msg := range searchErrs {
		state.AddError(msg)
	}
	state.JobsFound = jobs
	state.TotalJobs = len(jobs)
	state.CurrentStep = StepJobsSearched
	p.emit(state, 65, fmt.Sprintf("Found %d jobs! Now scoring...", len(jobs)))

	// Stage 5: scoring. Per-posting failures never block siblings.
	matches, scoreErrs := p.deps.Scoring.ScoreAll(ctx, profile, jobs)
	for _, msg := range scoreErrs {
		state.AddError(msg)
	}
	state.Matches = matches
	state.TopMatches = matches
	if len(state.TopMatches) > topMatchCount {
		state.TopMatches = state.TopMatches[:topMatchCount]
	}
	state.CurrentStep = StepJobsScored
	p.emit(state, 85, "Jobs scored! Generating career guidance...")

	// Stage 6: guidance. Falls back to frequency-based skill gaps.
	g, err := p.deps.Coach.Generate(ctx, profile, matches)
	if err != nil {
		state.AddError(fmt.Sprintf("Career guidance failed: %v", err))
		log.Warn("career guidance degraded", zap.Error(err))
	}
	state.Guidance = g
	state.CurrentStep = StepGuidanceGenerated
	p.emit(state, 100, "Analysis complete!")

	return state
}

func (p *Pipeline) fail(state *State, msg string) *State {
	state.AddError(msg)
	state.CurrentStep = StepError
	p.deps.Logger.Error("pipeline aborted", zap.String("reason", msg))
	if p.onProgress != nil {
		p.onProgress(Progress{Step: StepError, Percent: 0, Message: msg})
	}
	return state
}

func (p *Pipeline) emit(state *State, percent int, message string) {
	p.deps.Logger.Info(message, zap.String("step", string(state.CurrentStep)))
	if p.onProgress != nil {
		p.onProgress(Progress{Step: state.CurrentStep, Percent: percent, Message: message})
	}
}
