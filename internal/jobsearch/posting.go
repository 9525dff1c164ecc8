// Package jobsearch plans search queries from a candidate profile and runs
// them against the external job-scraper service.
package jobsearch

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Posting is a single raw job posting decoded from the scraper's dict-like
// rows. Postings are read-only once ingested.
type Posting struct {
	ID          string   `json:"id" mapstructure:"id"`
	Title       string   `json:"title" mapstructure:"title"`
	Company     string   `json:"company" mapstructure:"company"`
	Location    string   `json:"location" mapstructure:"location"`
	URL         string   `json:"job_url" mapstructure:"job_url"`
	Description string   `json:"description" mapstructure:"description"`
	SalaryMin   *float64 `json:"min_amount" mapstructure:"min_amount"`
	SalaryMax   *float64 `json:"max_amount" mapstructure:"max_amount"`
	IsRemote    bool     `json:"is_remote" mapstructure:"is_remote"`
	JobType     string   `json:"job_type" mapstructure:"job_type"`
}

// DecodePosting converts one raw scraper row into a Posting. Scrapers are
// sloppy about types (numeric ids, string salaries), so decoding is weakly
// typed.
func DecodePosting(raw map[string]any) (*Posting, error) {
	var posting Posting
	cfg := &mapstructure.DecoderConfig{
		Result:           &posting,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode posting: %w", err)
	}
	return &posting, nil
}

// PostingID extracts the posting identifier from a raw row. Empty means the
// row cannot be de-duplicated and is dropped by the search stage.
func PostingID(raw map[string]any) string {
	v, ok := raw["id"]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}
