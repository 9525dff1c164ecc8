// Package scoring derives structured requirements from postings and scores
// them against a candidate profile with fixed multi-factor weights.
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tarinagarwal/RRC2025/internal/ai"
)

// SkillSimilarity scores the semantic overlap between two skill sets using
// the external embedding provider. The cosine value is passed through
// unclamped; callers treat it as if it were in [0,1].
type SkillSimilarity struct {
	embedder ai.Embedder
}

func NewSkillSimilarity(embedder ai.Embedder) *SkillSimilarity {
	return &SkillSimilarity{embedder: embedder}
}

// Overlap embeds both skill lists as space-joined texts and returns their
// cosine similarity.
func (s *SkillSimilarity) Overlap(ctx context.Context, jobSkills, candidateSkills []string) (float64, error) {
	jobVec, err := s.embedder.Embed(ctx, strings.Join(jobSkills, " "))
	if err != nil {
		return 0, fmt.Errorf("embed job skills: %w", err)
	}

	candidateVec, err := s.embedder.Embed(ctx, strings.Join(candidateSkills, " "))
	if err != nil {
		return 0, fmt.Errorf("embed candidate skills: %w", err)
	}

	return cosine(jobVec, candidateVec), nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
