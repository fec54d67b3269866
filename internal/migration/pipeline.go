package migration

import (
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"cft/internal/models"
	"cft/internal/persistence"
	"cft/internal/persistence/interfaces"
	"cft/internal/providers"
	"cft/internal/schema"
	"cft/internal/services"
)

var (
	ErrUnknownMigrationPath = errors.New("no migration path from stored version")
	ErrNoBackup             = errors.New("no pre-migration backup found")
)

type PipelineInterface interface {
	Migrate() (*models.MigrationResult, error)
	Rollback() error
	History() ([]models.MigrationRecord, error)
}

type Pipeline struct {
	storage interfaces.StorageInterface
	store   *persistence.StoreManager
	ledger  services.LedgerServiceInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	opsMu   sync.Mutex
}

func NewPipeline(
	storage interfaces.StorageInterface,
	store *persistence.StoreManager,
	ledger services.LedgerServiceInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) PipelineInterface {
	return &Pipeline{
		storage: storage,
		store:   store,
		ledger:  ledger,
		logger:  logger,
		metrics: metrics,
	}
}

// Migrate upgrades the stored ledger to the current schema version. Returns
// (nil, nil) when the store is already current or empty. The stored bytes are
// backed up before anything is touched, and the in-memory/persisted swap is
// all-or-nothing; validation failures after the upgrade are tallied in the
// result, never dropped.
func (p *Pipeline) Migrate() (*models.MigrationResult, error) {
	p.opsMu.Lock()
	defer p.opsMu.Unlock()

	raw, found, err := p.store.LoadRawState()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	from := DetectVersion(raw)
	if from == models.CurrentVersion {
		return nil, nil
	}

	chain := Chain()
	start := -1
	for i, t := range chain {
		if t.From == from {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMigrationPath, from)
	}

	p.logger.Infof(providers.TypeApp, "Migrating stored data from version %s to %s", from, models.CurrentVersion)

	if err := p.savePreMigrationBackup(raw, from); err != nil {
		return nil, fmt.Errorf("pre-migration backup failed: %w", err)
	}

	result := &models.MigrationResult{
		FromVersion: from,
		ToVersion:   models.CurrentVersion,
		Log:         []string{fmt.Sprintf("detected version %s", from)},
	}

	for _, t := range chain[start:] {
		t.Apply(raw)
		result.Log = append(result.Log, fmt.Sprintf("%s -> %s: %s", t.From, t.To, t.Note))
	}
	result.DonationsMigrated = len(raw.Donations)
	result.ExpensesMigrated = len(raw.Expenses)

	snap := p.validateAndDecode(raw, result)

	if err := p.ledger.Replace(snap); err != nil {
		p.metrics.IncMigrationsTotal("failure")
		p.appendHistory(result, false)
		return nil, err
	}

	p.metrics.IncMigrationsTotal("success")
	p.appendHistory(result, true)
	p.logger.Infof(providers.TypeApp, "Migration complete: %d donations, %d expenses (%d invalid)",
		result.DonationsMigrated, result.ExpensesMigrated, result.DonationsInvalid+result.ExpensesInvalid)
	return result, nil
}

func (p *Pipeline) savePreMigrationBackup(raw *models.RawSnapshot, from string) error {
	// Deep copy through the codec so transition mutations cannot reach the
	// backed-up maps.
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var backup models.RawSnapshot
	if err := json.Unmarshal(data, &backup); err != nil {
		return err
	}
	backup.BackupDate = time.Now().UTC().Format(time.RFC3339)
	backup.BackupReason = "Pre-migration backup"
	backup.OriginalVersion = from
	return p.store.SaveRaw(persistence.KeyPreMigrationBackup, &backup)
}

// validateAndDecode sanitizes and validates every migrated record, tallying
// failures, and decodes the whole set into a typed snapshot. Invalid records
// are kept: the operator decides what to do with them, the pipeline only
// reports.
func (p *Pipeline) validateAndDecode(raw *models.RawSnapshot, result *models.MigrationResult) *models.Snapshot {
	snap := &models.Snapshot{
		Version:   models.CurrentVersion,
		Donations: make([]models.DonationRecord, 0, len(raw.Donations)),
		Expenses:  make([]models.ExpenseRecord, 0, len(raw.Expenses)),
	}

	for i, rec := range raw.Donations {
		sanitized := schema.Sanitize(rec, schema.Donation)
		if errs := schema.Validate(sanitized, schema.Donation); len(errs) > 0 {
			result.DonationsInvalid++
			result.Failures = append(result.Failures, models.RecordFailure{
				Kind:   "donation",
				Index:  i,
				ID:     cast.ToString(rec["id"]),
				Errors: errs,
			})
		} else {
			result.DonationsValid++
		}
		snap.Donations = append(snap.Donations, models.DonationFromMap(sanitized))
	}

	for i, rec := range raw.Expenses {
		sanitized := schema.Sanitize(rec, schema.Expense)
		if errs := schema.Validate(sanitized, schema.Expense); len(errs) > 0 {
			result.ExpensesInvalid++
			result.Failures = append(result.Failures, models.RecordFailure{
				Kind:   "expense",
				Index:  i,
				ID:     cast.ToString(rec["id"]),
				Errors: errs,
			})
		} else {
			result.ExpensesValid++
		}
		snap.Expenses = append(snap.Expenses, models.ExpenseFromMap(sanitized))
	}

	return snap
}

// Rollback restores the pre-migration backup as the primary stored snapshot.
// The restored bytes keep their original version tag, so the next migration
// run picks them up again; the in-memory ledger is reloaded from whatever the
// store now holds.
func (p *Pipeline) Rollback() error {
	p.opsMu.Lock()
	defer p.opsMu.Unlock()

	backup, found, err := p.store.LoadRaw(persistence.KeyPreMigrationBackup)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoBackup
	}

	restored := *backup
	restored.Version = backup.OriginalVersion
	restored.BackupDate = ""
	restored.BackupReason = ""
	restored.OriginalVersion = ""

	if err := p.store.SaveRaw(persistence.KeySnapshot, &restored); err != nil {
		return err
	}
	p.logger.Warnf(providers.TypeApp, "Rolled back stored data to pre-migration version %s", backup.OriginalVersion)

	return p.ledger.Restore()
}

// History returns the migration audit log, oldest first.
func (p *Pipeline) History() ([]models.MigrationRecord, error) {
	data, found, err := p.storage.Load(persistence.KeyMigrationHistory)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.MigrationRecord{}, nil
	}
	var history []models.MigrationRecord
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (p *Pipeline) appendHistory(result *models.MigrationResult, success bool) {
	history, err := p.History()
	if err != nil {
		p.logger.Errorf(providers.TypeApp, "Failed to read migration history: %s", err)
		history = []models.MigrationRecord{}
	}

	history = append(history, models.MigrationRecord{
		ID:          services.GenerateID("MG"),
		FromVersion: result.FromVersion,
		ToVersion:   result.ToVersion,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Result:      *result,
		Success:     success,
	})

	data, err := json.Marshal(history)
	if err != nil {
		p.logger.Errorf(providers.TypeApp, "Failed to encode migration history: %s", err)
		return
	}
	if err := p.storage.Save(persistence.KeyMigrationHistory, data); err != nil {
		p.logger.Errorf(providers.TypeApp, "Failed to persist migration history: %s", err)
	}
}
