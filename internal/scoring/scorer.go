package scoring

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/jobsearch"
	"github.com/tarinagarwal/RRC2025/internal/resume"
)

// Weights are the fixed factors of the overall score. They must sum to 1.0
// for the score to stay nominally in [0,1], but the formula never
// re-normalizes: compatibility with historical results takes precedence.
type Weights struct {
	Technical  float64 `mapstructure:"technical"`
	Experience float64 `mapstructure:"experience"`
	Education  float64 `mapstructure:"education"`
	Soft       float64 `mapstructure:"soft"`
	Location   float64 `mapstructure:"location"`
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		Technical:  0.40,
		Experience: 0.25,
		Education:  0.15,
		Soft:       0.10,
		Location:   0.10,
	}
}

const (
	// Soft skills are not scored yet; a neutral constant fills the term.
	softSkillPlaceholder = 0.5

	// Education scoring is not differentiated by degree yet.
	educationBaseline = 0.8

	neutralTechnicalScore = 0.5
)

// Breakdown holds the per-factor sub-scores and the weighted overall score,
// all rounded to two decimals. Overall is deliberately not clamped: a
// similarity above 1.0 flows straight into it.
type Breakdown struct {
	Technical  float64 `json:"technical_score"`
	Experience float64 `json:"experience_score"`
	Education  float64 `json:"education_score"`
	Location   float64 `json:"location_score"`
	Overall    float64 `json:"overall_score"`
}

// Scorer computes a Breakdown for one posting against the candidate profile.
type Scorer struct {
	similarity *SkillSimilarity
	weights    Weights
	logger     *zap.Logger
}

func NewScorer(similarity *SkillSimilarity, weights Weights, logger *zap.Logger) *Scorer {
	return &Scorer{similarity: similarity, weights: weights, logger: logger}
}

// Score combines the similarity, experience-gap, education and location
// signals. A failed similarity call falls back to the neutral technical
// score and is reported through the returned error while the rest of the
// breakdown stands.
func (s *Scorer) Score(ctx context.Context, profile *resume.Profile, posting *jobsearch.Posting, reqs *Requirements) (Breakdown, error) {
	var degraded error

	technical := neutralTechnicalScore
	candidateSkills := profile.CandidateSkills()
	if len(candidateSkills) > 0 && len(reqs.RequiredSkills) > 0 {
		overlap, err := s.similarity.Overlap(ctx, reqs.RequiredSkills, candidateSkills)
		if err != nil {
			s.logger.Warn("skill similarity failed",
				zap.String("job_id", posting.ID),
				zap.Error(err),
			)
			degraded = err
		} else {
			technical = overlap
		}
	}

	experience := experienceScore(profile.YearsOfExperience, reqs.ExperienceYears)
	location := locationScore(profile, posting, reqs)

	overall := technical*s.weights.Technical +
		experience*s.weights.Experience +
		educationBaseline*s.weights.Education +
		location*s.weights.Location +
		softSkillPlaceholder*s.weights.Soft

	return Breakdown{
		Technical:  round2(technical),
		Experience: round2(experience),
		Education:  round2(educationBaseline),
		Location:   round2(location),
		Overall:    round2(overall),
	}, degraded
}

func experienceScore(candidateYears, requiredYears int) float64 {
	switch {
	case requiredYears == 0:
		// No stated floor reads as a good sign, not a perfect one.
		return 0.8
	case candidateYears >= requiredYears:
		return 1.0
	case candidateYears >= requiredYears-2:
		return 0.7
	default:
		return math.Max(0.3, float64(candidateYears)/float64(requiredYears))
	}
}

func locationScore(profile *resume.Profile, posting *jobsearch.Posting, reqs *Requirements) float64 {
	jobLocation := strings.ToLower(posting.Location)
	isRemote := posting.IsRemote || reqs.IsRemote

	if isRemote && profile.IsRemotePreferred {
		return 1.0
	}
	for _, preferred := range profile.PreferredLocations {
		if preferred != "" && strings.Contains(jobLocation, strings.ToLower(preferred)) {
			return 1.0
		}
	}
	if isRemote {
		return 0.9
	}
	return 0.6
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
