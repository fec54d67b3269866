package persistence

import (
	"time"

	json "github.com/goccy/go-json"

	"cft/internal/models"
	"cft/internal/persistence/interfaces"
	"cft/internal/providers"
)

// StoreManager layers snapshot envelope handling on the raw blob store:
// stamping LastSaved and Checksum on save, verifying the checksum on load,
// and falling back from the primary snapshot to the backup when the primary
// is unreadable.
type StoreManager struct {
	storage interfaces.StorageInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStoreManager(storage interfaces.StorageInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *StoreManager {
	return &StoreManager{
		storage: storage,
		logger:  logger,
		metrics: metrics,
	}
}

// SaveSnapshot stamps the envelope and writes it under the given key.
func (sm *StoreManager) SaveSnapshot(key string, snap *models.Snapshot) error {
	start := time.Now()

	snap.Version = models.CurrentVersion
	snap.LastSaved = time.Now().UTC().Format(time.RFC3339)
	snap.Checksum = snap.ComputeChecksum()

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := sm.storage.Save(key, data); err != nil {
		return err
	}
	sm.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

// LoadSnapshot reads one key as a typed snapshot. A checksum mismatch is
// logged but does not fail the load; the checksum is advisory.
func (sm *StoreManager) LoadSnapshot(key string) (*models.Snapshot, bool, error) {
	data, found, err := sm.storage.Load(key)
	if err != nil || !found {
		return nil, found, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, true, err
	}
	if snap.Checksum != "" && snap.Checksum != snap.ComputeChecksum() {
		sm.logger.Warnf(providers.TypeApp, "Checksum mismatch for %s, data may have been modified outside the application", key)
	}
	return &snap, true, nil
}

// SaveRaw persists a schema-agnostic snapshot, used for pre-migration
// backups where the records must keep their historical shape.
func (sm *StoreManager) SaveRaw(key string, raw *models.RawSnapshot) error {
	start := time.Now()
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	if err := sm.storage.Save(key, data); err != nil {
		return err
	}
	sm.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func (sm *StoreManager) LoadRaw(key string) (*models.RawSnapshot, bool, error) {
	data, found, err := sm.storage.Load(key)
	if err != nil || !found {
		return nil, found, err
	}
	var raw models.RawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, true, err
	}
	return &raw, true, nil
}

// LoadState resolves the startup state: the primary snapshot if readable,
// else the backup, else an empty ledger. Never returns an error for an
// unreadable primary; losing one save interval beats refusing to start.
func (sm *StoreManager) LoadState() *models.Snapshot {
	snap, found, err := sm.LoadSnapshot(KeySnapshot)
	if err == nil && found {
		return snap
	}
	if err != nil {
		sm.logger.Warnf(providers.TypeApp, "Primary snapshot unreadable, trying backup: %s", err)
	}

	snap, found, err = sm.LoadSnapshot(KeyBackup)
	if err == nil && found {
		sm.logger.Warnf(providers.TypeApp, "Recovered ledger state from backup snapshot")
		return snap
	}
	if err != nil {
		sm.logger.Warnf(providers.TypeApp, "Backup snapshot unreadable, starting empty: %s", err)
	}

	return &models.Snapshot{
		Version:   models.CurrentVersion,
		Donations: []models.DonationRecord{},
		Expenses:  []models.ExpenseRecord{},
	}
}

// LoadRawState is the migration-pipeline view of LoadState: the stored bytes
// with records as loose maps, before any version upgrade.
func (sm *StoreManager) LoadRawState() (*models.RawSnapshot, bool, error) {
	raw, found, err := sm.LoadRaw(KeySnapshot)
	if err == nil && found {
		return raw, true, nil
	}
	if err != nil {
		sm.logger.Warnf(providers.TypeApp, "Primary snapshot unreadable, trying backup: %s", err)
	}
	return sm.LoadRaw(KeyBackup)
}
