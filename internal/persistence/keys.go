package persistence

// Storage keys. Each key is one compressed snapshot file in the data
// directory.
const (
	KeySnapshot           = "snapshot"
	KeyBackup             = "backup"
	KeyPreMigrationBackup = "pre_migration_backup"
	KeyMigrationHistory   = "migration_history"
)
