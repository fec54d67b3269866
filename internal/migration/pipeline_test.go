package migration

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cft/internal/models"
	"cft/internal/persistence"
	"cft/internal/providers"
	"cft/internal/services"
	"cft/internal/structures"
	"cft/internal/testutil"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Analytics:  structures.DefaultAnalytics(),
		Heuristics: structures.DefaultHeuristics(),
	}
}

func newTestPipeline(t *testing.T) (PipelineInterface, *testutil.MockStorage, services.LedgerServiceInterface) {
	t.Helper()
	storage := testutil.NewMockStorage()
	logger := &testutil.MockLogger{}
	metrics := providers.NewMetricsProvider(&structures.Config{})
	store := persistence.NewStoreManager(storage, logger, metrics)
	ledger := services.NewLedgerService(testConfig(), store, testutil.NewMockCache(), metrics, logger)
	return NewPipeline(storage, store, ledger, logger, metrics), storage, ledger
}

func storeRaw(t *testing.T, storage *testutil.MockStorage, raw *models.RawSnapshot) {
	t.Helper()
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, storage.Save(persistence.KeySnapshot, data))
}

func legacySnapshot() *models.RawSnapshot {
	return &models.RawSnapshot{
		Donations: []map[string]interface{}{
			{
				"id":          "GP1700000000000ABC",
				"name":        "Ramesh Kumar",
				"wing":        "A",
				"floor":       "5",
				"flat":        "503",
				"amount":      "500",
				"paymentMode": "UPI",
				"date":        "2024-09-10",
			},
			{
				"id":          "GP1700000000001DEF",
				"name":        "Asha Patil",
				"wing":        "B",
				"floor":       "2",
				"flat":        "204",
				"amount":      "1200.50",
				"paymentMode": "Cash",
				"date":        "2024-09-11",
			},
		},
		Expenses: []map[string]interface{}{
			{
				"id":     "EX1700000000000XYZ",
				"item":   "Marigold garlands",
				"cost":   "1500",
				"date":   "2024-09-12",
				"reason": "Stage decoration flowers",
			},
		},
	}
}

func TestMigrate_LegacyThroughFullChain(t *testing.T) {
	pipeline, storage, ledger := newTestPipeline(t)
	storeRaw(t, storage, legacySnapshot())

	result, err := pipeline.Migrate()
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, VersionLegacy, result.FromVersion)
	assert.Equal(t, models.CurrentVersion, result.ToVersion)
	assert.Equal(t, 2, result.DonationsMigrated)
	assert.Equal(t, 1, result.ExpensesMigrated)
	assert.Equal(t, 2, result.DonationsValid)
	assert.Zero(t, result.DonationsInvalid)
	assert.Equal(t, 1, result.ExpensesValid)
	assert.Empty(t, result.Failures)
	assert.NotEmpty(t, result.Log)

	donations := ledger.Donations()
	require.Len(t, donations, 2)
	assert.Equal(t, 500.0, donations[0].Amount)
	assert.Equal(t, 5, donations[0].Floor)
	assert.Equal(t, "confirmed", donations[0].Status)
	assert.Equal(t, "2024-09-10T12:00:00Z", donations[0].Timestamp)

	expenses := ledger.Expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, 1500.0, expenses[0].Cost)
	assert.Equal(t, "Miscellaneous", expenses[0].Category)
	assert.Equal(t, "approved", expenses[0].Status)
}

func TestMigrate_DetectionIdempotentAfterRun(t *testing.T) {
	pipeline, storage, _ := newTestPipeline(t)
	storeRaw(t, storage, legacySnapshot())

	_, err := pipeline.Migrate()
	require.NoError(t, err)

	data, found, err := storage.Load(persistence.KeySnapshot)
	require.NoError(t, err)
	require.True(t, found)

	var raw models.RawSnapshot
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, models.CurrentVersion, DetectVersion(&raw))

	// Second run is a no-op.
	result, err := pipeline.Migrate()
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestMigrate_EmptyStoreIsNoop(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)

	result, err := pipeline.Migrate()
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestMigrate_UnknownVersionFailsWithoutMutation(t *testing.T) {
	pipeline, storage, _ := newTestPipeline(t)
	raw := legacySnapshot()
	raw.Version = "0.5.0"
	storeRaw(t, storage, raw)
	before := append([]byte{}, storage.Data[persistence.KeySnapshot]...)

	_, err := pipeline.Migrate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMigrationPath))

	assert.Equal(t, before, storage.Data[persistence.KeySnapshot])
	_, found, _ := storage.Load(persistence.KeyPreMigrationBackup)
	assert.False(t, found)
}

func TestMigrate_WritesPreMigrationBackup(t *testing.T) {
	pipeline, storage, _ := newTestPipeline(t)
	storeRaw(t, storage, legacySnapshot())

	_, err := pipeline.Migrate()
	require.NoError(t, err)

	data, found, err := storage.Load(persistence.KeyPreMigrationBackup)
	require.NoError(t, err)
	require.True(t, found)

	var backup models.RawSnapshot
	require.NoError(t, json.Unmarshal(data, &backup))
	assert.Equal(t, "Pre-migration backup", backup.BackupReason)
	assert.Equal(t, VersionLegacy, backup.OriginalVersion)
	assert.NotEmpty(t, backup.BackupDate)
	// Backup keeps the pre-transition shape.
	assert.Equal(t, "500", backup.Donations[0]["amount"])
}

func TestMigrate_InvalidRecordsReportedNotDropped(t *testing.T) {
	pipeline, storage, ledger := newTestPipeline(t)
	raw := legacySnapshot()
	raw.Donations[1]["wing"] = "Z" // not a valid wing
	storeRaw(t, storage, raw)

	result, err := pipeline.Migrate()
	require.NoError(t, err)

	assert.Equal(t, 1, result.DonationsValid)
	assert.Equal(t, 1, result.DonationsInvalid)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "donation", result.Failures[0].Kind)
	assert.Equal(t, "GP1700000000001DEF", result.Failures[0].ID)
	assert.NotEmpty(t, result.Failures[0].Errors)

	// The invalid record still made it into the ledger.
	assert.Len(t, ledger.Donations(), 2)
}

func TestMigrate_AppendsHistory(t *testing.T) {
	pipeline, storage, _ := newTestPipeline(t)
	storeRaw(t, storage, legacySnapshot())

	_, err := pipeline.Migrate()
	require.NoError(t, err)

	history, err := pipeline.History()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
	assert.Equal(t, VersionLegacy, history[0].FromVersion)
	assert.Equal(t, models.CurrentVersion, history[0].ToVersion)
	assert.NotEmpty(t, history[0].ID)
	assert.NotEmpty(t, history[0].Timestamp)
}

func TestMigrate_PersistFailureRecordedAsFailedRun(t *testing.T) {
	pipeline, storage, _ := newTestPipeline(t)
	storeRaw(t, storage, legacySnapshot())
	storage.FailSaves[persistence.KeySnapshot] = errors.New("disk full")

	_, err := pipeline.Migrate()
	require.Error(t, err)

	history, histErr := pipeline.History()
	require.NoError(t, histErr)
	require.Len(t, history, 1)
	assert.False(t, history[0].Success)
}

func TestHistory_EmptyWithoutRuns(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)
	history, err := pipeline.History()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRollback_RestoresOriginalBytes(t *testing.T) {
	pipeline, storage, ledger := newTestPipeline(t)
	storeRaw(t, storage, legacySnapshot())

	_, err := pipeline.Migrate()
	require.NoError(t, err)
	require.Len(t, ledger.Donations(), 2)

	require.NoError(t, pipeline.Rollback())

	data, found, err := storage.Load(persistence.KeySnapshot)
	require.NoError(t, err)
	require.True(t, found)

	var raw models.RawSnapshot
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, VersionLegacy, raw.Version)
	assert.Equal(t, "500", raw.Donations[0]["amount"])
	assert.Empty(t, raw.BackupReason)
}

func TestRollback_WithoutBackupFails(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)
	err := pipeline.Rollback()
	assert.True(t, errors.Is(err, ErrNoBackup))
}
