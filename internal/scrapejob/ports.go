package scrapejob

import (
	"context"
)

// Repository owns job rows. Create performs the admission check and the
// insert in one transaction, so the single-active-job rule holds across
// process restarts rather than living in memory.
type Repository interface {
	Create(ctx context.Context) (Job, error)
	FindActive(ctx context.Context) (Job, error)
	GetByID(ctx context.Context, id int64) (Job, error)
	Latest(ctx context.Context) (Job, error)
	MarkInProgress(ctx context.Context, id int64) error
	MarkCompleted(ctx context.Context, id int64, scraped, saved int, artifactPath string) error
	MarkError(ctx context.Context, id int64, message string) error
}
