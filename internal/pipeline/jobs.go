package pipeline

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

// JobStatus represents the state of a deck generation job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusFacts     JobStatus = "gathering_facts"
	StatusDrafting  JobStatus = "generating"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single deck generation.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	Topic string `json:"topic"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	// Format is the output extension, ".docx" or ".html".
	Format     string `json:"format"`
	OutputPath string `json:"output_path,omitempty"`

	NoWeb     bool   `json:"no_web"`
	FactsFile string `json:"-"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// Progress tracks generation progress.
type Progress struct {
	FactsGathered int      `json:"facts_gathered"`
	SlideCount    int      `json:"slide_count"`
	Errors        []string `json:"errors"`
}

// NewJob creates a queued job for a topic.
func NewJob(topic, format string, noWeb bool) *Job {
	now := time.Now()
	return &Job{
		ID:        JobID(topic, now),
		Topic:     topic,
		Status:    StatusQueued,
		Phase:     "queued",
		Format:    format,
		NoWeb:     noWeb,
		CreatedAt: now,
		UpdatedAt: now,
	}
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

// SetFacts records how many facts fed generation.
func (j *Job) SetFacts(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FactsGathered = n
	j.UpdatedAt = time.Now()
}

// SetSlideCount records how many slides the final deck carries.
func (j *Job) SetSlideCount(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.SlideCount = n
	j.UpdatedAt = time.Now()
}

// SetOutputPath records the rendered file location.
func (j *Job) SetOutputPath(path string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.OutputPath = path
	j.UpdatedAt = time.Now()
}

// Output returns the rendered file location, empty until rendering done.
func (j *Job) Output() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.OutputPath
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID         string    `json:"job_id"`
	Topic      string    `json:"topic"`
	Status     JobStatus `json:"status"`
	Phase      string    `json:"phase"`
	Format     string    `json:"format"`
	OutputPath string    `json:"output_path,omitempty"`
	Progress   Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:         j.ID,
		Topic:      j.Topic,
		Status:     j.Status,
		Phase:      j.Phase,
		Format:     j.Format,
		OutputPath: j.OutputPath,
		Progress: Progress{
			FactsGathered: j.Progress.FactsGathered,
			SlideCount:    j.Progress.SlideCount,
			Errors:        errs,
		},
	}
}

// JobID derives a stable identifier from the topic and submission time.
func JobID(topic string, at time.Time) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", topic, at.UnixNano())))
	return fmt.Sprintf("%x", h[:8])
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify turns a topic into a filesystem-safe filename stem.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	if s == "" {
		s = "deck"
	}
	return s
}
