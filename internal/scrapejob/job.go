package scrapejob

import (
	"errors"
	"time"
)

// Job statuses. pending → in_progress → {completed, error}; terminal states
// are final, a fresh trigger always creates a new job.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

var (
	// ErrJobActive means a job is already pending or in progress; at most
	// one ingestion run may be active at a time.
	ErrJobActive = errors.New("a scraping job is already active")

	// ErrNotFound is returned when a job is not found.
	ErrNotFound = errors.New("scraping job not found")
)

// Job is the durable tracking entity for one end-to-end ingestion run.
type Job struct {
	ID             int64
	Status         string
	StartedAt      time.Time
	CompletedAt    *time.Time
	RecordsScraped *int
	RecordsSaved   *int
	ErrorMessage   *string
	ArtifactPath   *string
}
