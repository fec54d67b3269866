// Package migration upgrades stored ledger data across schema versions. The
// pipeline detects the stored format, backs it up, applies the transition
// chain, validates the outcome and keeps an append-only audit history.
package migration

import (
	"cft/internal/models"
)

// Known schema versions, oldest first.
const (
	VersionLegacy       = "0.9.0"
	VersionIntermediate = "0.9.5"
)

// DetectVersion infers the schema version of stored data. An explicit
// version tag wins; otherwise the shape of the first record decides:
// legacy data keeps amounts as strings and has no status field,
// intermediate data has numbers but no creation timestamp and may keep
// floors as strings. An empty store counts as current.
func DetectVersion(raw *models.RawSnapshot) string {
	if raw.Version != "" {
		return raw.Version
	}
	if len(raw.Donations) > 0 {
		return detectFromRecord(raw.Donations[0], "amount")
	}
	if len(raw.Expenses) > 0 {
		return detectFromRecord(raw.Expenses[0], "cost")
	}
	return models.CurrentVersion
}

func detectFromRecord(rec map[string]interface{}, amountField string) string {
	if _, isString := rec[amountField].(string); isString {
		return VersionLegacy
	}
	if _, hasStatus := rec["status"]; !hasStatus {
		return VersionLegacy
	}
	if _, hasTimestamp := rec["timestamp"]; !hasTimestamp {
		return VersionIntermediate
	}
	if _, floorIsString := rec["floor"].(string); floorIsString {
		return VersionIntermediate
	}
	return models.CurrentVersion
}
