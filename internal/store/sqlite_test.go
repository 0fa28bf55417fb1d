package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func newTestStore(t *testing.T, ttl time.Duration) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"), ttl)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	id, err := s.CreateRun(ctx, "zip")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run, err := s.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "zip", run.Source)
	assert.Equal(t, model.RunStatusQueued, run.Status)
	assert.Nil(t, run.Result)

	require.NoError(t, s.UpdateRun(ctx, id, model.RunStatusRunning, nil))

	result := &model.RunResult{Candidates: 40, Screened: 12, Contacts: 18}
	require.NoError(t, s.UpdateRun(ctx, id, model.RunStatusComplete, result))

	run, err = s.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, run.Status)
	require.NotNil(t, run.Result)
	assert.Equal(t, *result, *run.Result)
}

func TestUpdateRunNotFound(t *testing.T) {
	s := newTestStore(t, time.Hour)
	err := s.UpdateRun(context.Background(), "missing", model.RunStatusFailed, nil)
	assert.Error(t, err)
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t, time.Hour)
	_, err := s.GetRun(context.Background(), "missing")
	assert.Error(t, err)
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	for range 3 {
		_, err := s.CreateRun(ctx, "csv")
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestPageCache(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	_, ok, err := s.GetPage(ctx, "https://www.acme.be")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.PutPage(ctx, "https://www.acme.be", "H1: Acme"))

	text, ok, err := s.GetPage(ctx, "https://www.acme.be")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "H1: Acme", text)

	// Replacing an entry keeps one row per URL.
	require.NoError(t, s.PutPage(ctx, "https://www.acme.be", "H1: Acme v2"))
	text, ok, err = s.GetPage(ctx, "https://www.acme.be")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "H1: Acme v2", text)
}

func TestPageCacheExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, -time.Hour)

	require.NoError(t, s.PutPage(ctx, "https://www.acme.be", "H1: Acme"))

	_, ok, err := s.GetPage(ctx, "https://www.acme.be")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.DeleteExpiredPages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
