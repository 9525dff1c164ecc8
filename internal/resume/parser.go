package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Parser extracts a raw nested mapping (contact/summary/education/skills/
// experience/projects/certifications) from a resume file. An "error" key in
// the returned mapping marks a parse failure the pipeline must treat as
// fatal.
type Parser interface {
	Parse(ctx context.Context, path string) (map[string]any, error)
}

// ParseError reports whether the raw mapping is error-flagged and returns
// the message when it is.
func ParseError(raw map[string]any) (string, bool) {
	v, ok := raw["error"]
	if !ok {
		return "", false
	}
	msg := strings.TrimSpace(fmt.Sprintf("%v", v))
	if msg == "" {
		msg = "resume parsing failed"
	}
	return msg, true
}

// HTTPParser sends the resume file to the external resume-parser service and
// returns its JSON response as a raw mapping.
type HTTPParser struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *zap.Logger
}

const parsePath = "/api/parse"

func NewHTTPParser(baseURL string, logger *zap.Logger) *HTTPParser {
	return &HTTPParser{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			// Vision-based parsing of a multi-page PDF is slow.
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

func (p *HTTPParser) Parse(ctx context.Context, path string) (map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("resume file not found: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open resume: %w", err)
	}
	defer file.Close()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	field, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(field, file); err != nil {
		return nil, err
	}
	w.Close()

	url := p.BaseURL + parsePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	p.logger.Debug("parsing resume", zap.String("url", url), zap.String("file", path))

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resume parser request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resume parser: bad status: %s", resp.Status)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode resume parser response: %w", err)
	}

	return raw, nil
}
