package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/pipeline"
)

const maxUploadBytes = 16 << 20

// Server exposes the matching pipeline over HTTP. One run is active at a
// time; progress is pushed to subscribers over SSE.
type Server struct {
	pipe       *pipeline.Pipeline
	uploadsDir string
	logger     *zap.Logger

	mu      sync.Mutex
	status  runStatus
	subs    map[chan event]struct{}
	running bool
}

type runStatus struct {
	Status   string          `json:"status"`
	RunID    string          `json:"run_id,omitempty"`
	Step     pipeline.Step   `json:"step,omitempty"`
	Progress int             `json:"progress"`
	Message  string          `json:"message,omitempty"`
	Results  *pipeline.State `json:"results,omitempty"`
}

type event struct {
	name string
	data any
}

func New(pipe *pipeline.Pipeline, uploadsDir string, logger *zap.Logger) *Server {
	s := &Server{
		pipe:       pipe,
		uploadsDir: uploadsDir,
		logger:     logger,
		status:     runStatus{Status: "idle"},
		subs:       make(map[chan event]struct{}),
	}
	pipe.OnProgress(s.onProgress)
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/start", s.handleStart)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	return mux
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "only PDF resumes are accepted")
		return
	}

	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "cannot create uploads directory")
		return
	}

	name := uuid.NewString() + ".pdf"
	path := filepath.Join(s.uploadsDir, name)
	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot store upload")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, http.StatusInternalServerError, "cannot store upload")
		return
	}

	s.logger.Info("resume uploaded", zap.String("path", path))
	writeJSON(w, http.StatusOK, map[string]string{"resume_path": path})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.ResumePath == "" {
		writeError(w, http.StatusBadRequest, "resume_path is required")
		return
	}
	if _, err := os.Stat(req.ResumePath); err != nil {
		writeError(w, http.StatusBadRequest, "resume file not found")
		return
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "a run is already in progress")
		return
	}
	runID := uuid.NewString()
	s.running = true
	s.status = runStatus{Status: "running", RunID: runID, Step: pipeline.StepStart}
	s.mu.Unlock()

	go s.run(runID, req)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started", "run_id": runID})
}

func (s *Server) run(runID string, req pipeline.Request) {
	s.logger.Info("pipeline run started", zap.String("run_id", runID), zap.String("resume", req.ResumePath))

	state := s.pipe.Run(context.Background(), req)

	s.mu.Lock()
	s.running = false
	if state.CurrentStep == pipeline.StepError {
		s.status = runStatus{Status: "error", RunID: runID, Step: state.CurrentStep, Results: state}
	} else {
		s.status = runStatus{Status: "complete", RunID: runID, Step: state.CurrentStep, Progress: 100, Results: state}
	}
	done := s.status
	s.mu.Unlock()

	s.broadcast(event{name: done.Status, data: done})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := newSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ch := make(chan event, 16)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	current := s.status
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}()

	// Replay current status so late subscribers see where the run stands.
	if err := sse.writeEvent("status", current); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			if err := sse.writeEvent(ev.name, ev.data); err != nil {
				return
			}
			if ev.name == "complete" || ev.name == "error" {
				return
			}
		}
	}
}

func (s *Server) onProgress(p pipeline.Progress) {
	s.mu.Lock()
	s.status.Step = p.Step
	s.status.Progress = p.Percent
	s.status.Message = p.Message
	s.mu.Unlock()

	s.broadcast(event{name: "progress", data: p})
}

func (s *Server) broadcast(ev event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; drop rather than stall the run.
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
