package models

import (
	json "github.com/goccy/go-json"
)

// CurrentVersion is the schema version every persisted snapshot is upgraded to.
const CurrentVersion = "1.0.0"

// Snapshot is the unit of persistence: the complete validated ledger state
// plus envelope metadata. Superseded whole on every successful save.
type Snapshot struct {
	Version   string           `json:"version"`
	Donations []DonationRecord `json:"donations"`
	Expenses  []ExpenseRecord  `json:"expenses"`
	LastSaved string           `json:"lastSaved"`
	Checksum  string           `json:"checksum,omitempty"`
}

// RawSnapshot is the schema-agnostic view of a stored snapshot. Records stay
// as loose maps so the migration pipeline can inspect and transform
// historically-shaped data before it is decoded into typed records.
type RawSnapshot struct {
	Version         string                   `json:"version"`
	Donations       []map[string]interface{} `json:"donations"`
	Expenses        []map[string]interface{} `json:"expenses"`
	LastSaved       string                   `json:"lastSaved,omitempty"`
	Checksum        string                   `json:"checksum,omitempty"`
	BackupDate      string                   `json:"backupDate,omitempty"`
	BackupReason    string                   `json:"backupReason,omitempty"`
	OriginalVersion string                   `json:"originalVersion,omitempty"`
}

// ComputeChecksum hashes the serialized record arrays. An informal
// corruption hint only, not a cryptographic guarantee.
func (s *Snapshot) ComputeChecksum() string {
	return checksumOf(s.Donations, s.Expenses)
}

func checksumOf(donations interface{}, expenses interface{}) string {
	payload, err := json.Marshal(struct {
		Donations interface{} `json:"donations"`
		Expenses  interface{} `json:"expenses"`
	}{donations, expenses})
	if err != nil {
		return ""
	}
	return RollingHash(payload)
}
