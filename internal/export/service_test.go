package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Srimathij/lentra/constants"
	"github.com/Srimathij/lentra/internal/repository"
)

type stubJobs struct {
	rows []repository.ExtractJob
	err  error
}

func (s stubJobs) Start(context.Context, uuid.UUID, time.Time) error { return nil }

func (s stubJobs) Finish(context.Context, uuid.UUID, string, constants.JobStatus, time.Duration, string) error {
	return nil
}

func (s stubJobs) List(context.Context, int) ([]repository.ExtractJob, error) {
	return s.rows, s.err
}

func TestExportJobsXLSX(t *testing.T) {
	id := uuid.New()
	svc := NewService(stubJobs{rows: []repository.ExtractJob{
		{
			ID:         id,
			CreatedAt:  time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
			CardType:   "Aadhaar Card",
			Status:     constants.JobStatusOK,
			DurationMS: 1234,
		},
		{
			ID:           uuid.New(),
			CreatedAt:    time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
			Status:       constants.JobStatusRejected,
			ErrorMessage: "Invalid Card Type",
		},
	}}, nil)

	out, err := svc.ExportJobsXLSX(context.Background(), 50)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Jobs", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Job ID", got)

	got, err = f.GetCellValue("Jobs", "A2")
	require.NoError(t, err)
	assert.Equal(t, id.String(), got)

	got, err = f.GetCellValue("Jobs", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Aadhaar Card", got)

	got, err = f.GetCellValue("Jobs", "D3")
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", got)

	got, err = f.GetCellValue("Jobs", "F3")
	require.NoError(t, err)
	assert.Equal(t, "Invalid Card Type", got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}
