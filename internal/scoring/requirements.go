package scoring

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/ai"
	"github.com/tarinagarwal/RRC2025/internal/jobsearch"
)

// Requirements is the structured view of a posting's free-text description,
// derived lazily at most once per posting per run. ExperienceYears of 0
// means "unspecified, treat as no floor".
type Requirements struct {
	RequiredSkills    []string `json:"required_skills"`
	ExperienceYears   int      `json:"experience_years"`
	EducationRequired string   `json:"education_required"`
	IsRemote          bool     `json:"is_remote"`
}

const (
	// Descriptions shorter than this carry too little signal to be worth a
	// model call.
	minDescriptionChars = 50

	// Only the head of long descriptions is sent for extraction.
	maxDescriptionChars = 2000
)

const extractionPrompt = `Extract required skills from this job description.
Return JSON with:
- required_skills: list of technical skills/technologies required
- experience_years: estimated years required (int, 0 if not specified)
- education_required: degree level if mentioned (e.g., "Bachelor's", "Master's", "")
- is_remote: bool if remote work mentioned

Job: %s at %s

Description:
%s`

// Extractor derives Requirements from postings via the language model.
// Every failure degrades silently to a "no requirements known" record; the
// quantitative scoring still runs on it.
type Extractor struct {
	generator ai.Generator
	logger    *zap.Logger
}

func NewExtractor(generator ai.Generator, logger *zap.Logger) *Extractor {
	return &Extractor{generator: generator, logger: logger}
}

// Extract returns the posting's structured requirements. Postings with an
// absent or sub-50-character description short-circuit without an external
// call, keeping the posting's own remote flag.
func (e *Extractor) Extract(ctx context.Context, posting *jobsearch.Posting) *Requirements {
	description := posting.Description
	if len(description) < minDescriptionChars {
		return &Requirements{
			RequiredSkills: []string{},
			IsRemote:       posting.IsRemote,
		}
	}

	if len(description) > maxDescriptionChars {
		description = description[:maxDescriptionChars]
	}

	prompt := fmt.Sprintf(extractionPrompt, posting.Title, posting.Company, description)

	response, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		e.logger.Debug("requirement extraction failed",
			zap.String("job_id", posting.ID),
			zap.Error(err),
		)
		return emptyRequirements()
	}

	var reqs Requirements
	if err := json.Unmarshal([]byte(ai.ExtractJSONObject(response)), &reqs); err != nil {
		e.logger.Debug("requirement extraction returned unparseable JSON",
			zap.String("job_id", posting.ID),
			zap.Error(err),
		)
		return emptyRequirements()
	}

	if reqs.RequiredSkills == nil {
		reqs.RequiredSkills = []string{}
	}
	if reqs.ExperienceYears < 0 {
		reqs.ExperienceYears = 0
	}

	return &reqs
}

func emptyRequirements() *Requirements {
	return &Requirements{RequiredSkills: []string{}}
}
