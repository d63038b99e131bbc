package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/redline/internal/parser"
	"github.com/dgallion1/redline/internal/pipeline"
	"github.com/dgallion1/redline/internal/redline"
)

// handleCompare accepts two document uploads ("old", "new") plus optional
// comparison overrides and queues an async comparison job.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	// Limit total request size: two documents plus form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*2+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	oldName, oldData, err := s.readUpload(r, "old")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	newName, newData, err := s.readUpload(r, "new")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts, err := s.compareOptions(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := s.orchestrator.NewJob(oldName, newName)
	job.Options = opts
	job.SetInputs(oldData, newData)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":     job.ID,
		"status":     job.Status,
		"poll_url":   fmt.Sprintf("/api/compare/%s/status", job.ID),
		"result_url": fmt.Sprintf("/api/compare/%s/result", job.ID),
	})
}

func (s *Server) handleCompareStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleCompareResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	switch snap.Status {
	case pipeline.StatusCompleted:
	case pipeline.StatusFailed:
		jsonError(w, "job failed: "+strings.Join(snap.Progress.Errors, "; "), http.StatusConflict)
		return
	default:
		w.Header().Set("Retry-After", "2")
		jsonError(w, "job not finished: "+string(snap.Status), http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, job.ResultHTML())
}

// readUpload fetches one named file from the multipart form.
func (s *Server) readUpload(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("%s file is required: %s", field, err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		return "", nil, fmt.Errorf("unsupported file type for %s: %s", field, filepath.Ext(filename))
	}

	data, err := readLimited(file, s.cfg.MaxUploadBytes)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %s", field, err)
	}
	return filename, data, nil
}

func readLimited(f multipart.File, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", limit)
	}
	return data, nil
}

// compareOptions resolves per-request overrides on top of configured
// defaults into an immutable options value for the job.
func (s *Server) compareOptions(r *http.Request) (redline.Options, error) {
	opts := redline.DefaultOptions()
	opts.Profile = redline.Profile(s.cfg.DefaultProfile)
	opts.Strategy = redline.Strategy(s.cfg.DefaultStrategy)
	opts.SimilarityThreshold = s.cfg.DefaultSimilarityThreshold
	opts.DiffTimeout = s.cfg.DefaultDiffTimeout
	opts.MaxConcurrentDiff = s.cfg.MaxConcurrentDiff

	if v := r.FormValue("profile"); v != "" {
		switch redline.Profile(v) {
		case redline.ProfileLegal, redline.ProfileGeneric:
			opts.Profile = redline.Profile(v)
		default:
			return opts, fmt.Errorf("profile must be legal or generic, got %q", v)
		}
	}
	if v := r.FormValue("strategy"); v != "" {
		switch redline.Strategy(v) {
		case redline.StrategyToken, redline.StrategySemantic:
			opts.Strategy = redline.Strategy(v)
		default:
			return opts, fmt.Errorf("strategy must be token or semantic, got %q", v)
		}
	}
	if v := r.FormValue("similarity_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return opts, fmt.Errorf("similarity_threshold must be in [0,1], got %q", v)
		}
		opts.SimilarityThreshold = f
	}
	if v := r.FormValue("diff_timeout_seconds"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return opts, fmt.Errorf("diff_timeout_seconds must be positive, got %q", v)
		}
		opts.DiffTimeout = time.Duration(f * float64(time.Second))
	}
	if v := r.FormValue("drop_pattern"); v != "" {
		re, err := regexp.Compile(v)
		if err != nil {
			return opts, fmt.Errorf("drop_pattern: %s", err)
		}
		opts.DropPattern = re
	}
	return opts, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
