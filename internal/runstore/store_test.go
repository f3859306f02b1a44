package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techdebtgpt/maintsight/schema"
)

func sqliteStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func samplePrediction() (schema.FileActivity, schema.RiskPrediction) {
	activity := schema.FileActivity{
		Module:     "src/parser.ts",
		Commits:    3,
		Authors:    2,
		Churn:      48,
		BugCommits: 1,
		DaysActive: 3,
	}
	prediction := schema.RiskPrediction{
		Module:           "src/parser.ts",
		RawPrediction:    0.62,
		DegradationScore: 0.15,
		RiskCategory:     schema.Degraded,
	}
	return activity, prediction
}

func TestStore_NoneBackend(t *testing.T) {
	store, err := New(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	assert.NoError(t, store.EndRun(1, time.Now(), 10))

	activity, prediction := samplePrediction()
	assert.NoError(t, store.RecordPrediction(1, activity, prediction))

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestStore_SQLiteRoundTrip(t *testing.T) {
	store := sqliteStore(t)

	startTime := time.Now()
	configParams := map[string]any{
		"repo_path":   "/test/repo",
		"branch":      "HEAD",
		"window_days": 90,
	}
	runID, err := store.BeginRun(startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	activity, prediction := samplePrediction()
	require.NoError(t, store.RecordPrediction(runID, activity, prediction))

	require.NoError(t, store.EndRun(runID, startTime.Add(2*time.Second), 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	require.NotNil(t, runs[0].EndTime)
	require.NotNil(t, runs[0].RunDurationMs)
	assert.Equal(t, int64(2000), *runs[0].RunDurationMs)
	require.NotNil(t, runs[0].TotalFiles)
	assert.Equal(t, int64(1), *runs[0].TotalFiles)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "/test/repo")

	predictions, err := store.GetAllPredictions()
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	rec := predictions[0]
	assert.Equal(t, runID, rec.RunID)
	assert.Equal(t, "src/parser.ts", rec.Module)
	assert.Equal(t, 3, rec.Commits)
	assert.Equal(t, 2, rec.Authors)
	assert.Equal(t, 48, rec.Churn)
	assert.Equal(t, 1, rec.BugCommits)
	assert.Equal(t, 3, rec.DaysActive)
	assert.InDelta(t, 0.62, rec.RawPrediction, 1e-9)
	assert.InDelta(t, 0.15, rec.DegradationScore, 1e-9)
	assert.Equal(t, string(schema.Degraded), rec.RiskCategory)
}

func TestStore_MultipleRuns(t *testing.T) {
	store := sqliteStore(t)

	firstID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	secondID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)

	activity, prediction := samplePrediction()
	require.NoError(t, store.RecordPrediction(firstID, activity, prediction))
	require.NoError(t, store.RecordPrediction(secondID, activity, prediction))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, secondID, status.LastRunID)
	assert.False(t, status.LastRunTime.IsZero())
	assert.False(t, status.OldestRunTime.IsZero())
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(2), status.TableSizes[predictionsTable])
}

func TestStore_DuplicateModuleInRunFails(t *testing.T) {
	store := sqliteStore(t)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	activity, prediction := samplePrediction()
	require.NoError(t, store.RecordPrediction(runID, activity, prediction))
	assert.Error(t, store.RecordPrediction(runID, activity, prediction))
}

func TestStore_EmptyStatus(t *testing.T) {
	store := sqliteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[runsTable])

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStore_UnsupportedBackend(t *testing.T) {
	_, err := New(schema.StoreBackend("oracle"), "")
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestStore_SQLiteFileBacked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := New(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopen and confirm the run survived.
	reopened, err := New(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	runs, err := reopened.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
}

func TestClear(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := New(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	activity, prediction := samplePrediction()
	require.NoError(t, store.RecordPrediction(runID, activity, prediction))
	require.NoError(t, store.Close())

	require.NoError(t, Clear(schema.SQLiteBackend, dbPath))

	reopened, err := New(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	status, err := reopened.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(0), status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[predictionsTable])

	// Clearing the none backend is a no-op.
	assert.NoError(t, Clear(schema.NoneBackend, ""))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`maintsight_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"maintsight_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
	assert.Equal(t, `"maintsight_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
}
