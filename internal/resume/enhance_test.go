package resume

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/ai"
)

type stubGenerator struct {
	mu       sync.Mutex
	response string
	err      error
}

func (s *stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string { return "stub-model" }

func rawResumeFixture() map[string]any {
	return map[string]any{
		"contact": map[string]any{
			"name":  "Jordan Lee",
			"email": "jordan@example.com",
			"socials": map[string]any{
				"linkedin": "linkedin.com/in/jordan",
				"github":   "github.com/jordan",
			},
		},
		"summary": "Backend developer.",
		"skills": map[string]any{
			"technical": []any{"go", "python"},
			"tools":     []any{"docker"},
			"languages": []any{"english"},
		},
		"education": []any{
			map[string]any{"degree": "B.Tech", "institution": "IIT"},
		},
	}
}

func TestBaseProfile(t *testing.T) {
	profile, err := BaseProfile(rawResumeFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Contact.Name != "Jordan Lee" {
		t.Errorf("name = %q", profile.Contact.Name)
	}
	if profile.Contact.LinkedIn != "linkedin.com/in/jordan" {
		t.Errorf("linkedin = %q", profile.Contact.LinkedIn)
	}
	if profile.Contact.GitHub != "github.com/jordan" {
		t.Errorf("github = %q", profile.Contact.GitHub)
	}
	if len(profile.Skills.Technical) != 2 {
		t.Errorf("technical skills = %v", profile.Skills.Technical)
	}
	if profile.FirstDegree() != "B.Tech" {
		t.Errorf("degree = %q", profile.FirstDegree())
	}
}

func TestCandidateSkillsUnion(t *testing.T) {
	profile, err := BaseProfile(rawResumeFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	skills := profile.CandidateSkills()
	want := []string{"go", "python", "docker", "english"}
	if len(skills) != len(want) {
		t.Fatalf("skills = %v, want %v", skills, want)
	}
	for i := range want {
		if skills[i] != want[i] {
			t.Errorf("skills[%d] = %q, want %q", i, skills[i], want[i])
		}
	}
}

func TestFirstDegreeFallback(t *testing.T) {
	profile := &Profile{}
	if got := profile.FirstDegree(); got != "Not specified" {
		t.Errorf("got %q", got)
	}
}

func TestEnhanceAppliesDerivedFields(t *testing.T) {
	gen := &stubGenerator{
		response: "```json\n{\"years_of_experience\": 4, \"target_roles\": [\"backend developer\"], \"preferred_locations\": [\"Berlin\"], \"is_remote_preferred\": true}\n```",
	}
	enhancer := NewEnhancer(gen, zap.NewNop())

	profile, err := enhancer.Enhance(context.Background(), rawResumeFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.YearsOfExperience != 4 {
		t.Errorf("years = %d", profile.YearsOfExperience)
	}
	if len(profile.TargetRoles) != 1 || profile.TargetRoles[0] != "backend developer" {
		t.Errorf("target roles = %v", profile.TargetRoles)
	}
	if !profile.IsRemotePreferred {
		t.Error("expected remote preference")
	}
}

func TestEnhanceClampsNegativeYears(t *testing.T) {
	gen := &stubGenerator{response: `{"years_of_experience": -3}`}
	enhancer := NewEnhancer(gen, zap.NewNop())

	profile, err := enhancer.Enhance(context.Background(), rawResumeFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.YearsOfExperience != 0 {
		t.Errorf("years = %d", profile.YearsOfExperience)
	}
}

func TestEnhanceDegradesToBaseProfile(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	enhancer := NewEnhancer(gen, zap.NewNop())

	profile, err := enhancer.Enhance(context.Background(), rawResumeFixture())
	if err == nil {
		t.Fatal("expected a degradation error")
	}

	var callErr *ai.CallErr
	if !errors.As(err, &callErr) || callErr.Kind != ai.KindUnreachable {
		t.Errorf("expected unreachable call error, got %v", err)
	}

	// The base profile is still usable without the derived fields.
	if profile == nil || profile.Contact.Name != "Jordan Lee" {
		t.Fatalf("base profile missing: %+v", profile)
	}
	if profile.YearsOfExperience != 0 || len(profile.TargetRoles) != 0 {
		t.Errorf("derived fields should be zero: %+v", profile)
	}
}

func TestParseError(t *testing.T) {
	if _, flagged := ParseError(map[string]any{"contact": map[string]any{}}); flagged {
		t.Error("clean resume flagged as error")
	}

	msg, flagged := ParseError(map[string]any{"error": "could not read PDF"})
	if !flagged || msg != "could not read PDF" {
		t.Errorf("got %q, %v", msg, flagged)
	}

	msg, flagged = ParseError(map[string]any{"error": ""})
	if !flagged || msg != "resume parsing failed" {
		t.Errorf("empty error message: got %q, %v", msg, flagged)
	}
}
