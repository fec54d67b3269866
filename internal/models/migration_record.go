package models

// RecordFailure identifies one record that failed post-migration validation.
type RecordFailure struct {
	Kind   string   `json:"kind"`
	Index  int      `json:"index"`
	ID     string   `json:"id"`
	Errors []string `json:"errors"`
}

// MigrationResult is the per-run tally: counts always equal the input record
// counts because validation failures are reported, never dropped.
type MigrationResult struct {
	FromVersion       string          `json:"fromVersion"`
	ToVersion         string          `json:"toVersion"`
	DonationsMigrated int             `json:"donationsMigrated"`
	ExpensesMigrated  int             `json:"expensesMigrated"`
	DonationsValid    int             `json:"donationsValid"`
	DonationsInvalid  int             `json:"donationsInvalid"`
	ExpensesValid     int             `json:"expensesValid"`
	ExpensesInvalid   int             `json:"expensesInvalid"`
	Failures          []RecordFailure `json:"failures,omitempty"`
	Log               []string        `json:"log"`
}

// MigrationRecord is one entry of the append-only migration audit log.
// Never mutated after append.
type MigrationRecord struct {
	ID          string          `json:"id"`
	FromVersion string          `json:"fromVersion"`
	ToVersion   string          `json:"toVersion"`
	Timestamp   string          `json:"timestamp"`
	Result      MigrationResult `json:"result"`
	Success     bool            `json:"success"`
}
