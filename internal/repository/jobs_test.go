package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srimathij/lentra/constants"
)

func newTestRepo(t *testing.T) *SQLiteJobs {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewJobRepository(db)
}

func TestStartFinishList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Start(ctx, id, time.Now()))
	require.NoError(t, repo.Finish(ctx, id, "Aadhaar Card", constants.JobStatusOK, 1500*time.Millisecond, ""))

	jobs, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, id, jobs[0].ID)
	assert.Equal(t, "Aadhaar Card", jobs[0].CardType)
	assert.Equal(t, constants.JobStatusOK, jobs[0].Status)
	assert.EqualValues(t, 1500, jobs[0].DurationMS)
}

func TestFinishRecordsFailure(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Start(ctx, id, time.Now()))
	require.NoError(t, repo.Finish(ctx, id, "", constants.JobStatusFailed, time.Second, "model call failed"))

	jobs, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, constants.JobStatusFailed, jobs[0].Status)
	assert.Equal(t, "model call failed", jobs[0].ErrorMessage)
}

func TestListLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Start(ctx, uuid.New(), time.Now().Add(time.Duration(i)*time.Second)))
	}
	jobs, err := repo.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
}
