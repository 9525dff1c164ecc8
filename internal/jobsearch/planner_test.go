package jobsearch

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/ai"
	"github.com/tarinagarwal/RRC2025/internal/resume"
)

type stubGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (s *stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string { return "stub-model" }

func plannerProfile() *resume.Profile {
	return &resume.Profile{
		TargetRoles: []string{"Backend Developer", "Platform Engineer", "SRE", "DevOps Engineer"},
		Skills: resume.Skills{
			Technical: []string{"go", "kubernetes"},
		},
		YearsOfExperience: 4,
	}
}

func TestPlanNilProfileUsesGenericQuery(t *testing.T) {
	gen := &stubGenerator{}
	planner := NewPlanner(gen, zap.NewNop())

	queries, err := planner.Plan(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(queries, []string{GenericQuery}) {
		t.Errorf("queries = %v", queries)
	}
	if gen.calls != 0 {
		t.Errorf("expected no model call, got %d", gen.calls)
	}
}

func TestPlanEmptyProfileUsesGenericQuery(t *testing.T) {
	planner := NewPlanner(&stubGenerator{}, zap.NewNop())

	queries, err := planner.Plan(context.Background(), &resume.Profile{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(queries, []string{GenericQuery}) {
		t.Errorf("queries = %v", queries)
	}
}

func TestPlanParsesAndDeduplicates(t *testing.T) {
	gen := &stubGenerator{
		response: "```json\n[\"go developer\", \"Go Developer\", \"platform engineer\", \"  \"]\n```",
	}
	planner := NewPlanner(gen, zap.NewNop())

	queries, err := planner.Plan(context.Background(), plannerProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"go developer", "platform engineer"}
	if !reflect.DeepEqual(queries, want) {
		t.Errorf("queries = %v, want %v", queries, want)
	}
}

func TestPlanCapsAtFiveQueries(t *testing.T) {
	gen := &stubGenerator{
		response: `["q1", "q2", "q3", "q4", "q5", "q6", "q7"]`,
	}
	planner := NewPlanner(gen, zap.NewNop())

	queries, err := planner.Plan(context.Background(), plannerProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 5 {
		t.Errorf("expected 5 queries, got %d", len(queries))
	}
}

func TestPlanFallsBackToTargetRoles(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	planner := NewPlanner(gen, zap.NewNop())

	queries, err := planner.Plan(context.Background(), plannerProfile())
	if err == nil {
		t.Fatal("expected a degradation error")
	}

	var callErr *ai.CallErr
	if !errors.As(err, &callErr) || callErr.Kind != ai.KindUnreachable {
		t.Errorf("expected unreachable call error, got %v", err)
	}

	// First three target roles only.
	want := []string{"Backend Developer", "Platform Engineer", "SRE"}
	if !reflect.DeepEqual(queries, want) {
		t.Errorf("queries = %v, want %v", queries, want)
	}
}

func TestPlanUnparseableResponseFallsBack(t *testing.T) {
	gen := &stubGenerator{response: "sorry, I cannot help with that"}
	planner := NewPlanner(gen, zap.NewNop())

	profile := &resume.Profile{
		Skills: resume.Skills{Technical: []string{"go"}},
	}

	queries, err := planner.Plan(context.Background(), profile)

	var callErr *ai.CallErr
	if !errors.As(err, &callErr) || callErr.Kind != ai.KindUnparseable {
		t.Errorf("expected unparseable call error, got %v", err)
	}
	// No target roles to fall back on: generic query.
	if !reflect.DeepEqual(queries, []string{GenericQuery}) {
		t.Errorf("queries = %v", queries)
	}
}
