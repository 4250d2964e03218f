// Package jobs records optimization requests handled by the server.
//
// Every POST to the optimize endpoint creates a [Job] that is updated when
// the pipeline finishes. Jobs can be looked up by ID afterwards, which lets
// clients fetch results and statistics of earlier requests.
//
// Storage backends implement [Store]:
//   - [MemoryStore]: In-memory storage for development/testing
//   - [FileStore]: JSON files in a directory, for single-host deployments
//   - [MongoStore]: MongoDB collection, for multi-instance deployments
//
// # Usage
//
//	store := jobs.NewMemoryStore()
//	job := jobs.New(docHash, jobs.DefaultTTL)
//	store.Set(ctx, job)
//
//	job.Finish(result.Text, &result.Stats)
//	store.Set(ctx, job)
//
//	job, err := store.Get(ctx, id)
//	if errors.Is(err, jobs.ErrNotFound) {
//	    // unknown or expired
//	}
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/pipeline"
)

// DefaultTTL is how long finished jobs are kept.
const DefaultTTL = 7 * 24 * time.Hour

// ErrNotFound is returned when a job does not exist or has expired.
var ErrNotFound = errors.New("job not found")

// Status is the lifecycle state of a job.
type Status string

// Job statuses.
const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job is one optimization request.
type Job struct {
	ID         string          `json:"id" bson:"_id"`
	Status     Status          `json:"status" bson:"status"`
	DocHash    string          `json:"doc_hash" bson:"doc_hash"`
	Formats    []string        `json:"formats,omitempty" bson:"formats,omitempty"`
	Stats      *pipeline.Stats `json:"stats,omitempty" bson:"stats,omitempty"`
	Output     string          `json:"output,omitempty" bson:"output,omitempty"`
	Error      string          `json:"error,omitempty" bson:"error,omitempty"`
	ErrorCode  string          `json:"error_code,omitempty" bson:"error_code,omitempty"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
	FinishedAt time.Time       `json:"finished_at,omitzero" bson:"finished_at,omitempty"`
	ExpiresAt  time.Time       `json:"expires_at" bson:"expires_at"`
}

// New creates a running job with a fresh ID.
func New(docHash string, ttl time.Duration) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusRunning,
		DocHash:   docHash,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Finish marks the job done.
func (j *Job) Finish(output string, stats *pipeline.Stats) {
	j.Status = StatusDone
	j.Output = output
	j.Stats = stats
	j.FinishedAt = time.Now().UTC()
}

// Fail marks the job failed with err.
func (j *Job) Fail(err error) {
	j.Status = StatusFailed
	j.Error = perrors.UserMessage(err)
	j.ErrorCode = string(perrors.GetCode(err))
	j.FinishedAt = time.Now().UTC()
}

// IsExpired returns true if the job has passed its expiry.
func (j *Job) IsExpired() bool {
	return time.Now().After(j.ExpiresAt)
}

// Store is the interface for job storage backends.
type Store interface {
	// Get retrieves a job by ID.
	// Returns an error wrapping ErrNotFound if the job doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Job, error)

	// Set creates or replaces a job.
	Set(ctx context.Context, job *Job) error

	// Delete removes a job. Deleting an unknown job is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit unexpired jobs, newest first.
	List(ctx context.Context, limit int) ([]*Job, error)

	// Cleanup removes expired jobs.
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

func notFound(id string) error {
	return perrors.Wrap(perrors.ErrCodeJobNotFound, ErrNotFound, "job %s", id)
}
