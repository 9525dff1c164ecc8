package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStage(gen *stubGenerator, embedder *stubEmbedder) *Stage {
	logger := zap.NewNop()
	return NewStage(
		NewExtractor(gen, logger),
		NewScorer(NewSkillSimilarity(embedder), DefaultWeights(), logger),
		NewAnalyzer(gen),
		2,
		logger,
	)
}

func TestScoreAllNilProfile(t *testing.T) {
	stage := newTestStage(&stubGenerator{}, &stubEmbedder{})

	matches, errs := stage.ScoreAll(context.Background(), nil, []map[string]any{{"id": "j1"}})

	assert.Empty(t, matches)
	assert.Empty(t, errs)
}

func TestScoreAllSkipsMalformedPosting(t *testing.T) {
	stage := newTestStage(&stubGenerator{response: "{}"}, &stubEmbedder{vec: []float32{1}})

	jobs := []map[string]any{
		{"id": "bad", "min_amount": "not-a-number"},
	}

	matches, errs := stage.ScoreAll(context.Background(), testProfile(), jobs)

	assert.Empty(t, matches)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "malformed posting 'bad'")
}

func TestScoreAllSortsByOverallScore(t *testing.T) {
	gen := &stubGenerator{
		response: `{"matching_skills": ["go"], "missing_skills": ["kubernetes"], "match_reasons": ["good stack fit"]}`,
	}
	stage := newTestStage(gen, &stubEmbedder{vec: []float32{1}})

	// Short descriptions skip requirement extraction, so the remote flag is
	// the only difference: 1.0 vs 0.6 on the location factor.
	jobs := []map[string]any{
		{"id": "onsite", "title": "Engineer", "description": "short"},
		{"id": "remote", "title": "Engineer", "description": "short", "is_remote": true},
	}

	matches, errs := stage.ScoreAll(context.Background(), testProfile(), jobs)

	require.Len(t, matches, 2)
	assert.Empty(t, errs)
	assert.Equal(t, "remote", matches[0].JobID)
	assert.Equal(t, "onsite", matches[1].JobID)
	assert.Greater(t, matches[0].OverallScore, matches[1].OverallScore)
	assert.Equal(t, []string{"kubernetes"}, matches[0].MissingSkills)
}

func TestScoreAllAnalysisFailureDegrades(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	stage := newTestStage(gen, &stubEmbedder{vec: []float32{1}})

	jobs := []map[string]any{
		{"id": "j1", "title": "Engineer", "description": "short"},
	}

	matches, errs := stage.ScoreAll(context.Background(), testProfile(), jobs)

	require.Len(t, matches, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Match analysis failed for 'j1'")
	assert.Empty(t, matches[0].MatchingSkills)
}

func TestScoreAllTruncatesStoredDescription(t *testing.T) {
	gen := &stubGenerator{response: "{}"}
	stage := newTestStage(gen, &stubEmbedder{vec: []float32{1}})

	jobs := []map[string]any{
		{"id": "j1", "title": "Engineer", "description": strings.Repeat("y", 600)},
	}

	matches, _ := stage.ScoreAll(context.Background(), testProfile(), jobs)

	require.Len(t, matches, 1)
	assert.Len(t, matches[0].Description, 500)
}
