package jobsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestClientSearch(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"jobs": []map[string]any{
				{"id": "j1", "title": "Backend Engineer"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())

	jobs, err := client.Search(context.Background(), Request{
		Query:         "go developer",
		Location:      "Berlin, Germany",
		ResultsWanted: 15,
		HoursOld:      72,
		Country:       "Germany",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(jobs) != 1 || PostingID(jobs[0]) != "j1" {
		t.Errorf("jobs = %v", jobs)
	}
	if got.Query != "go developer" || got.Country != "Germany" {
		t.Errorf("request = %+v", got)
	}
	// Default boards are filled in when the caller names none.
	if len(got.Sites) != 2 || got.Sites[0] != "indeed" || got.Sites[1] != "linkedin" {
		t.Errorf("sites = %v", got.Sites)
	}
}

func TestClientSearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "scrape failed", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())

	if _, err := client.Search(context.Background(), Request{Query: "go"}); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}
