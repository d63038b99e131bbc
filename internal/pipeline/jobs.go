package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/redline/internal/redline"
)

// JobStatus represents the state of a comparison job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusComparing  JobStatus = "comparing"
	StatusRendering  JobStatus = "rendering"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single comparison run.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	OldFilename string `json:"old_filename"`
	NewFilename string `json:"new_filename"`

	// SHA-256 of the uploaded bytes, for clients verifying what was compared.
	OldSHA256 string `json:"old_sha256"`
	NewSHA256 string `json:"new_sha256"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Per-job comparison options resolved at submit time.
	Options redline.Options `json:"-"`

	// Internal: not serialized.
	oldData    []byte
	newData    []byte
	resultHTML string
	errors     []string
}

// Progress tracks comparison progress and outcome statistics.
type Progress struct {
	OldChunks     int      `json:"old_chunks"`
	NewChunks     int      `json:"new_chunks"`
	Pairs         int      `json:"pairs"`
	DegradedPairs int      `json:"degraded_pairs"`
	CharsInserted int      `json:"chars_inserted"`
	CharsDeleted  int      `json:"chars_deleted"`
	Errors        []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetInputs stores the raw bytes of both document versions and records
// their content hashes.
func (j *Job) SetInputs(oldData, newData []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.oldData = oldData
	j.newData = newData
	j.OldSHA256 = ContentHashHex(oldData)
	j.NewSHA256 = ContentHashHex(newData)
}

// Inputs returns the raw bytes of both document versions.
func (j *Job) Inputs() (oldData, newData []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.oldData, j.newData
}

// SetOutcome records comparison statistics and the rendered document, and
// releases the input bytes.
func (j *Job) SetOutcome(res *redline.Result, html string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	ins, del := res.Stats()
	j.Progress.OldChunks = res.OldChunks
	j.Progress.NewChunks = res.NewChunks
	j.Progress.Pairs = len(res.Pairs)
	j.Progress.DegradedPairs = res.Degraded
	j.Progress.CharsInserted = ins
	j.Progress.CharsDeleted = del
	j.resultHTML = html
	j.oldData = nil
	j.newData = nil
	j.UpdatedAt = time.Now()
}

// ResultHTML returns the rendered redline, or "" until the job completes.
func (j *Job) ResultHTML() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.resultHTML
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	OldFilename string    `json:"old_filename"`
	NewFilename string    `json:"new_filename"`
	OldSHA256   string    `json:"old_sha256"`
	NewSHA256   string    `json:"new_sha256"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	snap := JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		OldFilename: j.OldFilename,
		NewFilename: j.NewFilename,
		OldSHA256:   j.OldSHA256,
		NewSHA256:   j.NewSHA256,
		Progress:    j.Progress,
	}
	snap.Progress.Errors = errs
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
