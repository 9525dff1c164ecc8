package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/jobsearch"
)

func TestExtractShortDescriptionSkipsModel(t *testing.T) {
	gen := &stubGenerator{}
	extractor := NewExtractor(gen, zap.NewNop())

	posting := &jobsearch.Posting{
		ID:          "j1",
		Description: "Too short.",
		IsRemote:    true,
	}

	reqs := extractor.Extract(context.Background(), posting)

	assert.Equal(t, 0, gen.calls)
	assert.NotNil(t, reqs.RequiredSkills)
	assert.Empty(t, reqs.RequiredSkills)
	// The posting's own remote flag survives the short-circuit.
	assert.True(t, reqs.IsRemote)
}

func TestExtractGeneratorFailureDegradesSilently(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	extractor := NewExtractor(gen, zap.NewNop())

	posting := &jobsearch.Posting{
		ID:          "j1",
		Description: strings.Repeat("We need a senior Go engineer. ", 5),
		IsRemote:    true,
	}

	reqs := extractor.Extract(context.Background(), posting)

	assert.Equal(t, 1, gen.calls)
	assert.Empty(t, reqs.RequiredSkills)
	assert.False(t, reqs.IsRemote)
	assert.Equal(t, 0, reqs.ExperienceYears)
}

func TestExtractParsesFencedResponse(t *testing.T) {
	gen := &stubGenerator{
		response: "```json\n{\"required_skills\": [\"go\", \"kubernetes\"], \"experience_years\": 3, \"education_required\": \"Bachelor's\", \"is_remote\": true}\n```",
	}
	extractor := NewExtractor(gen, zap.NewNop())

	posting := &jobsearch.Posting{
		ID:          "j1",
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: strings.Repeat("Build and run Go services in Kubernetes. ", 3),
	}

	reqs := extractor.Extract(context.Background(), posting)

	require.Equal(t, []string{"go", "kubernetes"}, reqs.RequiredSkills)
	assert.Equal(t, 3, reqs.ExperienceYears)
	assert.Equal(t, "Bachelor's", reqs.EducationRequired)
	assert.True(t, reqs.IsRemote)
}

func TestExtractClampsNegativeYears(t *testing.T) {
	gen := &stubGenerator{response: `{"required_skills": ["go"], "experience_years": -2}`}
	extractor := NewExtractor(gen, zap.NewNop())

	posting := &jobsearch.Posting{
		ID:          "j1",
		Description: strings.Repeat("Looking for a Go developer to join us. ", 3),
	}

	reqs := extractor.Extract(context.Background(), posting)
	assert.Equal(t, 0, reqs.ExperienceYears)
}

func TestExtractTruncatesLongDescriptions(t *testing.T) {
	gen := &stubGenerator{response: `{"required_skills": []}`}
	extractor := NewExtractor(gen, zap.NewNop())

	posting := &jobsearch.Posting{
		ID:          "j1",
		Description: strings.Repeat("x", 2500) + "ZZZTAIL",
	}

	extractor.Extract(context.Background(), posting)

	require.Len(t, gen.prompts, 1)
	assert.NotContains(t, gen.prompts[0], "ZZZTAIL")
}
