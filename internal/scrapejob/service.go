package scrapejob

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"bookscrape/internal/scraper"
)

// Crawler produces the record set for one run.
type Crawler interface {
	Run(ctx context.Context) ([]scraper.Record, error)
}

// Reconciler writes records into the catalog and reports how many stuck.
type Reconciler interface {
	Reconcile(ctx context.Context, records []scraper.Record) int
}

// Exporter writes the CSV artifact; false means no artifact was produced,
// which is not a run failure.
type Exporter interface {
	Export(records []scraper.Record, dest string) bool
}

// CatalogStats supplies the database section of the status response.
type CatalogStats interface {
	CountBooks(ctx context.Context) (int, error)
	CountCategories(ctx context.Context) (int, error)
}

// Enqueuer hands a job id to the background runner.
type Enqueuer interface {
	Enqueue(id int64) bool
}

// Service owns the job lifecycle: it is the only component that writes job
// rows, and the trigger/status contract the API layer consumes.
type Service struct {
	repo       Repository
	crawler    Crawler
	reconciler Reconciler
	exporter   Exporter
	stats      CatalogStats
	queue      Enqueuer
	exportPath string
	log        zerolog.Logger
}

func NewService(
	repo Repository,
	crawler Crawler,
	reconciler Reconciler,
	exporter Exporter,
	stats CatalogStats,
	queue Enqueuer,
	exportPath string,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		crawler:    crawler,
		reconciler: reconciler,
		exporter:   exporter,
		stats:      stats,
		queue:      queue,
		exportPath: exportPath,
		log:        log.With().Str("component", "scrapejob").Logger(),
	}
}

// TriggerResult mirrors the trigger response contract.
type TriggerResult struct {
	Status    string `json:"status"`
	JobID     int64  `json:"job_id"`
	JobStatus string `json:"job_status,omitempty"`
}

// Trigger creates a pending job and hands it to the background runner. It
// returns before the crawl runs. A second trigger while a job is active
// reports the existing job instead of creating a duplicate.
func (s *Service) Trigger(ctx context.Context) (TriggerResult, error) {
	job, err := s.repo.Create(ctx)
	if errors.Is(err, ErrJobActive) {
		active, aerr := s.repo.FindActive(ctx)
		if aerr != nil {
			return TriggerResult{}, aerr
		}
		return TriggerResult{
			Status:    "already_running",
			JobID:     active.ID,
			JobStatus: active.Status,
		}, nil
	}
	if err != nil {
		return TriggerResult{}, err
	}

	if !s.queue.Enqueue(job.ID) {
		// Release the admission slot so the next trigger is not blocked by a
		// job that will never run.
		if merr := s.repo.MarkError(ctx, job.ID, "job queue unavailable"); merr != nil {
			s.log.Error().Err(merr).Int64("job_id", job.ID).Msg("cannot fail unqueued job")
		}
		return TriggerResult{}, errors.New("job queue unavailable")
	}

	s.log.Info().Int64("job_id", job.ID).Msg("scraping job queued")
	return TriggerResult{Status: "started", JobID: job.ID, JobStatus: job.Status}, nil
}

// Run executes one ingestion end to end: crawl, reconcile, export, terminal
// state. It is invoked by the background runner, which has no caller to
// report to, so every failure lands in the job row instead of an error
// return.
func (s *Service) Run(ctx context.Context, jobID int64) {
	log := s.log.With().Int64("job_id", jobID).Logger()

	if err := s.repo.MarkInProgress(ctx, jobID); err != nil {
		log.Error().Err(err).Msg("cannot mark job in progress")
		return
	}
	log.Info().Msg("scraping job started")

	records, err := s.crawler.Run(ctx)
	if err != nil {
		s.fail(ctx, jobID, err.Error())
		return
	}
	if len(records) == 0 {
		s.fail(ctx, jobID, "no records collected during crawl")
		return
	}

	saved := s.reconciler.Reconcile(ctx, records)

	artifact := ""
	if s.exporter.Export(records, s.exportPath) {
		artifact = s.exportPath
	}

	if err := s.repo.MarkCompleted(ctx, jobID, len(records), saved, artifact); err != nil {
		log.Error().Err(err).Msg("cannot mark job completed")
		return
	}
	log.Info().
		Int("records_scraped", len(records)).
		Int("records_saved", saved).
		Msg("scraping job completed")
}

func (s *Service) fail(ctx context.Context, jobID int64, msg string) {
	s.log.Error().Int64("job_id", jobID).Str("reason", msg).Msg("scraping job failed")
	if err := s.repo.MarkError(ctx, jobID, msg); err != nil {
		s.log.Error().Err(err).Int64("job_id", jobID).Msg("cannot mark job failed")
	}
}

// DatabaseStats is the catalog summary in the status response.
type DatabaseStats struct {
	TotalRecords    int  `json:"total_records"`
	TotalCategories int  `json:"total_categories"`
	Populated       bool `json:"populated"`
}

// JobInfo is the job summary in the status response.
type JobInfo struct {
	JobID          int64   `json:"job_id"`
	Status         string  `json:"status"`
	StartedAt      string  `json:"started_at"`
	CompletedAt    *string `json:"completed_at"`
	RecordsScraped *int    `json:"records_scraped"`
	RecordsSaved   *int    `json:"records_saved"`
	ArtifactPath   *string `json:"artifact_path"`
	ErrorMessage   *string `json:"error_message"`
}

// StatusResponse is the full status payload.
type StatusResponse struct {
	Database DatabaseStats `json:"database"`
	LastJob  *JobInfo      `json:"last_job"`
}

// Status reports catalog totals plus the named job, or the most recently
// started one when jobID is nil. LastJob stays nil when no matching job
// exists.
func (s *Service) Status(ctx context.Context, jobID *int64) (StatusResponse, error) {
	totalBooks, err := s.stats.CountBooks(ctx)
	if err != nil {
		return StatusResponse{}, err
	}
	totalCategories, err := s.stats.CountCategories(ctx)
	if err != nil {
		return StatusResponse{}, err
	}

	resp := StatusResponse{
		Database: DatabaseStats{
			TotalRecords:    totalBooks,
			TotalCategories: totalCategories,
			Populated:       totalBooks > 0,
		},
	}

	var job Job
	if jobID != nil {
		job, err = s.repo.GetByID(ctx, *jobID)
	} else {
		job, err = s.repo.Latest(ctx)
	}
	if errors.Is(err, ErrNotFound) {
		return resp, nil
	}
	if err != nil {
		return StatusResponse{}, err
	}

	resp.LastJob = jobInfo(job)
	return resp, nil
}

func jobInfo(j Job) *JobInfo {
	info := &JobInfo{
		JobID:          j.ID,
		Status:         j.Status,
		StartedAt:      j.StartedAt.UTC().Format(time.RFC3339),
		RecordsScraped: j.RecordsScraped,
		RecordsSaved:   j.RecordsSaved,
		ArtifactPath:   j.ArtifactPath,
		ErrorMessage:   j.ErrorMessage,
	}
	if j.CompletedAt != nil {
		ts := j.CompletedAt.UTC().Format(time.RFC3339)
		info.CompletedAt = &ts
	}
	return info
}
