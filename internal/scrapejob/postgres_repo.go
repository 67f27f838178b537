package scrapejob

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// admissionLockKey serializes job admission across connections.
const admissionLockKey = 0x626f6f6b73637261

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const jobColumns = "id, status, started_at, completed_at, records_scraped, records_saved, error_message, artifact_path"

func scanJob(row pgx.Row) (Job, error) {
	var j Job
	err := row.Scan(
		&j.ID, &j.Status, &j.StartedAt, &j.CompletedAt,
		&j.RecordsScraped, &j.RecordsSaved, &j.ErrorMessage, &j.ArtifactPath,
	)
	return j, err
}

// Create inserts a pending job unless one is already active. The advisory
// lock makes the check-then-insert atomic without a table constraint.
func (r *PostgresRepo) Create(ctx context.Context) (Job, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return Job{}, err
	}
	defer tx.Rollback(timeoutCtx)

	if _, err := tx.Exec(timeoutCtx, "SELECT pg_advisory_xact_lock($1)", int64(admissionLockKey)); err != nil {
		return Job{}, err
	}

	var active int
	err = tx.QueryRow(timeoutCtx,
		"SELECT COUNT(*) FROM scrape_jobs WHERE status IN ($1, $2)",
		StatusPending, StatusInProgress,
	).Scan(&active)
	if err != nil {
		return Job{}, err
	}
	if active > 0 {
		return Job{}, ErrJobActive
	}

	job, err := scanJob(tx.QueryRow(timeoutCtx,
		"INSERT INTO scrape_jobs (status) VALUES ($1) RETURNING "+jobColumns,
		StatusPending,
	))
	if err != nil {
		return Job{}, err
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (r *PostgresRepo) FindActive(ctx context.Context) (Job, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	job, err := scanJob(r.db.QueryRow(timeoutCtx,
		"SELECT "+jobColumns+" FROM scrape_jobs WHERE status IN ($1, $2) ORDER BY started_at DESC LIMIT 1",
		StatusPending, StatusInProgress,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Job, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	job, err := scanJob(r.db.QueryRow(timeoutCtx,
		"SELECT "+jobColumns+" FROM scrape_jobs WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func (r *PostgresRepo) Latest(ctx context.Context) (Job, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	job, err := scanJob(r.db.QueryRow(timeoutCtx,
		"SELECT "+jobColumns+" FROM scrape_jobs ORDER BY started_at DESC LIMIT 1"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func (r *PostgresRepo) MarkInProgress(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.exec(timeoutCtx,
		"UPDATE scrape_jobs SET status = $2 WHERE id = $1 AND status = $3",
		id, StatusInProgress, StatusPending)
}

func (r *PostgresRepo) MarkCompleted(ctx context.Context, id int64, scraped, saved int, artifactPath string) error {
	const sql = `
		UPDATE scrape_jobs SET
			status = $2,
			completed_at = NOW(),
			records_scraped = $3,
			records_saved = $4,
			artifact_path = NULLIF($5, '')
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.exec(timeoutCtx, sql, id, StatusCompleted, scraped, saved, artifactPath)
}

func (r *PostgresRepo) MarkError(ctx context.Context, id int64, message string) error {
	const sql = `
		UPDATE scrape_jobs SET
			status = $2,
			completed_at = NOW(),
			error_message = $3
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.exec(timeoutCtx, sql, id, StatusError, message)
}

func (r *PostgresRepo) exec(ctx context.Context, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
