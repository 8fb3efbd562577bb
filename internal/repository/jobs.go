// Package repository persists the extraction job history. One row per
// inbound request; rows are written for observability and export, never
// read back by the pipeline itself.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Srimathij/lentra/constants"
	"github.com/Srimathij/lentra/internal/common"
)

// ExtractJob is one recorded extraction request.
type ExtractJob struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	CardType     string
	Status       constants.JobStatus
	DurationMS   int64
	ErrorMessage string
}

// JobRepository is the pipeline's view of the job log.
type JobRepository interface {
	Start(ctx context.Context, id uuid.UUID, createdAt time.Time) error
	Finish(ctx context.Context, id uuid.UUID, cardType string, status constants.JobStatus, duration time.Duration, errMsg string) error
	List(ctx context.Context, limit int) ([]ExtractJob, error)
}

// Open opens (and initializes) the sqlite job store at path.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open sqlite")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "ping sqlite")
	}
	if _, err := db.ExecContext(ctx, `
		create table if not exists extract_jobs (
			id            text primary key,
			created_at    timestamp not null,
			card_type     text not null default '',
			status        text not null,
			duration_ms   integer not null default 0,
			error_message text not null default ''
		)
	`); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "create extract_jobs")
	}
	return db, nil
}

// SQLiteJobs implements JobRepository over database/sql.
type SQLiteJobs struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *SQLiteJobs {
	return &SQLiteJobs{db: db}
}

func (r *SQLiteJobs) Start(ctx context.Context, id uuid.UUID, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		insert into extract_jobs (id, created_at, status)
		values (?, ?, ?)
	`, id.String(), createdAt.UTC(), string(constants.JobStatusRunning))
	return common.WrapError(err, "insert extract_job")
}

func (r *SQLiteJobs) Finish(ctx context.Context, id uuid.UUID, cardType string, status constants.JobStatus, duration time.Duration, errMsg string) error {
	_, err := r.db.ExecContext(ctx, `
		update extract_jobs
		set card_type = ?, status = ?, duration_ms = ?, error_message = ?
		where id = ?
	`, cardType, string(status), duration.Milliseconds(), errMsg, id.String())
	return common.WrapError(err, "update extract_job")
}

func (r *SQLiteJobs) List(ctx context.Context, limit int) ([]ExtractJob, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.db.QueryContext(ctx, `
		select id, created_at, card_type, status, duration_ms, error_message
		from extract_jobs
		order by created_at desc
		limit ?
	`, limit)
	if err != nil {
		return nil, common.WrapError(err, "query extract_jobs")
	}
	defer rows.Close()

	var out []ExtractJob
	for rows.Next() {
		var (
			j     ExtractJob
			rawID string
		)
		if err := rows.Scan(&rawID, &j.CreatedAt, &j.CardType, &j.Status, &j.DurationMS, &j.ErrorMessage); err != nil {
			return nil, err
		}
		if id, perr := uuid.Parse(rawID); perr == nil {
			j.ID = id
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
