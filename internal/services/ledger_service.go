// Package services holds the ledger: the in-memory system of record for
// donations and expenses, serialized behind one mutex, persisted through the
// store manager on every successful write.
package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/atomic"

	"cft/internal/models"
	"cft/internal/persistence"
	"cft/internal/providers"
	"cft/internal/schema"
	"cft/internal/structures"
)

var (
	ErrDuplicateID    = errors.New("record with this id already exists")
	ErrNotFound       = errors.New("record not found")
	ErrStorageFailure = errors.New("storage failure")
)

type LedgerServiceInterface interface {
	AddDonation(input map[string]interface{}) (*models.DonationRecord, []string, error)
	UpdateDonation(id string, input map[string]interface{}) (*models.DonationRecord, []string, error)
	DeleteDonation(id string) error
	Donations() []models.DonationRecord
	SearchDonations(criteria map[string]string) []models.DonationRecord

	AddExpense(input map[string]interface{}) (*models.ExpenseRecord, []string, error)
	UpdateExpense(id string, input map[string]interface{}) (*models.ExpenseRecord, []string, error)
	DeleteExpense(id string) error
	Expenses() []models.ExpenseRecord
	SearchExpenses(criteria map[string]string) []models.ExpenseRecord

	Snapshot() *models.Snapshot
	Replace(snap *models.Snapshot) error
	Restore() error
	Persist() error
	Backup() error
	Dirty() bool
	DonationCount() int
	ExpenseCount() int
}

type LedgerService struct {
	mu        sync.Mutex
	donations []models.DonationRecord
	expenses  []models.ExpenseRecord

	store   *persistence.StoreManager
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
	heur    *structures.HeuristicsConfig

	dirty atomic.Bool
}

func NewLedgerService(
	conf *structures.Config,
	store *persistence.StoreManager,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) LedgerServiceInterface {
	return &LedgerService{
		donations: []models.DonationRecord{},
		expenses:  []models.ExpenseRecord{},
		store:     store,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		heur:      &conf.Heuristics,
	}
}

func (ls *LedgerService) AddDonation(input map[string]interface{}) (*models.DonationRecord, []string, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	sanitized := schema.Sanitize(input, schema.Donation)
	ensureIdentity(sanitized, "GP")

	if errs := schema.Validate(sanitized, schema.Donation); len(errs) > 0 {
		return nil, nil, &schema.ValidationError{Errors: errs}
	}

	rec := models.DonationFromMap(sanitized)
	if ls.findDonation(rec.ID) >= 0 {
		return nil, nil, ErrDuplicateID
	}

	ls.donations = append(ls.donations, rec)
	if err := ls.persistLocked(); err != nil {
		ls.donations = ls.donations[:len(ls.donations)-1]
		return nil, nil, err
	}

	ls.afterWriteLocked()
	warnings := ls.donationWarnings(&rec)
	ls.logger.Infof(providers.TypeApp, "Donation %s added: %s, amount %.2f", rec.ID, rec.Name, rec.Amount)
	return &rec, warnings, nil
}

func (ls *LedgerService) UpdateDonation(id string, input map[string]interface{}) (*models.DonationRecord, []string, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	idx := ls.findDonation(id)
	if idx < 0 {
		return nil, nil, ErrNotFound
	}
	prev := ls.donations[idx]

	merged := prev.ToMap()
	for k, v := range input {
		merged[k] = v
	}
	// Identity and creation instant are immutable.
	merged["id"] = prev.ID
	merged["timestamp"] = prev.Timestamp

	sanitized := schema.Sanitize(merged, schema.Donation)
	if errs := schema.Validate(sanitized, schema.Donation); len(errs) > 0 {
		return nil, nil, &schema.ValidationError{Errors: errs}
	}

	rec := models.DonationFromMap(sanitized)
	ls.donations[idx] = rec
	if err := ls.persistLocked(); err != nil {
		ls.donations[idx] = prev
		return nil, nil, err
	}

	ls.afterWriteLocked()
	warnings := ls.donationWarnings(&rec)
	return &rec, warnings, nil
}

func (ls *LedgerService) DeleteDonation(id string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	idx := ls.findDonation(id)
	if idx < 0 {
		return ErrNotFound
	}
	prev := ls.donations
	ls.donations = append(append([]models.DonationRecord{}, prev[:idx]...), prev[idx+1:]...)
	if err := ls.persistLocked(); err != nil {
		ls.donations = prev
		return err
	}
	ls.afterWriteLocked()
	return nil
}

func (ls *LedgerService) Donations() []models.DonationRecord {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return append([]models.DonationRecord{}, ls.donations...)
}

// SearchDonations filters by the given criteria; name matches are
// case-insensitive substrings, the rest are exact or range bounds. Unknown
// criteria are ignored.
func (ls *LedgerService) SearchDonations(criteria map[string]string) []models.DonationRecord {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	out := []models.DonationRecord{}
	for _, d := range ls.donations {
		if !matchSubstring(criteria["name"], d.Name) {
			continue
		}
		if !matchExact(criteria["wing"], d.Wing) {
			continue
		}
		if !matchExact(criteria["paymentMode"], d.PaymentMode) {
			continue
		}
		if !matchExact(criteria["status"], d.Status) {
			continue
		}
		if !matchAmount(criteria["minAmount"], criteria["maxAmount"], d.Amount) {
			continue
		}
		if !matchDateRange(criteria["dateFrom"], criteria["dateTo"], d.Date) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (ls *LedgerService) AddExpense(input map[string]interface{}) (*models.ExpenseRecord, []string, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	sanitized := schema.Sanitize(input, schema.Expense)
	ensureIdentity(sanitized, "EX")

	if errs := schema.Validate(sanitized, schema.Expense); len(errs) > 0 {
		return nil, nil, &schema.ValidationError{Errors: errs}
	}

	rec := models.ExpenseFromMap(sanitized)
	if ls.findExpense(rec.ID) >= 0 {
		return nil, nil, ErrDuplicateID
	}

	ls.expenses = append(ls.expenses, rec)
	if err := ls.persistLocked(); err != nil {
		ls.expenses = ls.expenses[:len(ls.expenses)-1]
		return nil, nil, err
	}

	ls.afterWriteLocked()
	warnings := ls.expenseWarnings(&rec)
	ls.logger.Infof(providers.TypeApp, "Expense %s added: %s, cost %.2f", rec.ID, rec.Item, rec.Cost)
	return &rec, warnings, nil
}

func (ls *LedgerService) UpdateExpense(id string, input map[string]interface{}) (*models.ExpenseRecord, []string, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	idx := ls.findExpense(id)
	if idx < 0 {
		return nil, nil, ErrNotFound
	}
	prev := ls.expenses[idx]

	merged := prev.ToMap()
	for k, v := range input {
		merged[k] = v
	}
	merged["id"] = prev.ID
	merged["timestamp"] = prev.Timestamp

	sanitized := schema.Sanitize(merged, schema.Expense)
	if errs := schema.Validate(sanitized, schema.Expense); len(errs) > 0 {
		return nil, nil, &schema.ValidationError{Errors: errs}
	}

	rec := models.ExpenseFromMap(sanitized)
	ls.expenses[idx] = rec
	if err := ls.persistLocked(); err != nil {
		ls.expenses[idx] = prev
		return nil, nil, err
	}

	ls.afterWriteLocked()
	warnings := ls.expenseWarnings(&rec)
	return &rec, warnings, nil
}

func (ls *LedgerService) DeleteExpense(id string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	idx := ls.findExpense(id)
	if idx < 0 {
		return ErrNotFound
	}
	prev := ls.expenses
	ls.expenses = append(append([]models.ExpenseRecord{}, prev[:idx]...), prev[idx+1:]...)
	if err := ls.persistLocked(); err != nil {
		ls.expenses = prev
		return err
	}
	ls.afterWriteLocked()
	return nil
}

func (ls *LedgerService) Expenses() []models.ExpenseRecord {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return append([]models.ExpenseRecord{}, ls.expenses...)
}

func (ls *LedgerService) SearchExpenses(criteria map[string]string) []models.ExpenseRecord {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	out := []models.ExpenseRecord{}
	for _, x := range ls.expenses {
		if !matchSubstring(criteria["item"], x.Item) {
			continue
		}
		if !matchExact(criteria["category"], x.Category) {
			continue
		}
		if !matchExact(criteria["status"], x.Status) {
			continue
		}
		if !matchAmount(criteria["minCost"], criteria["maxCost"], x.Cost) {
			continue
		}
		if !matchDateRange(criteria["dateFrom"], criteria["dateTo"], x.Date) {
			continue
		}
		out = append(out, x)
	}
	return out
}

func (ls *LedgerService) Snapshot() *models.Snapshot {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.snapshotLocked()
}

// Replace swaps in a new ledger state and persists it, used by the migration
// pipeline. The previous state is restored if the save fails, so the swap is
// all-or-nothing.
func (ls *LedgerService) Replace(snap *models.Snapshot) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	prevDonations, prevExpenses := ls.donations, ls.expenses
	ls.donations = append([]models.DonationRecord{}, snap.Donations...)
	ls.expenses = append([]models.ExpenseRecord{}, snap.Expenses...)

	if err := ls.persistLocked(); err != nil {
		ls.donations, ls.expenses = prevDonations, prevExpenses
		return err
	}
	ls.afterWriteLocked()
	return nil
}

// Restore loads the persisted state into memory. Integrity problems in the
// stored data are logged, never fatal.
func (ls *LedgerService) Restore() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	snap := ls.store.LoadState()
	ls.donations = snap.Donations
	ls.expenses = snap.Expenses
	if ls.donations == nil {
		ls.donations = []models.DonationRecord{}
	}
	if ls.expenses == nil {
		ls.expenses = []models.ExpenseRecord{}
	}

	ls.checkIntegrityLocked()
	ls.metrics.SetRecordsTotal("donation", len(ls.donations))
	ls.metrics.SetRecordsTotal("expense", len(ls.expenses))
	ls.logger.Infof(providers.TypeApp, "Ledger restored: %d donations, %d expenses (version %s)",
		len(ls.donations), len(ls.expenses), snap.Version)
	return nil
}

func (ls *LedgerService) Persist() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.persistLocked()
}

func (ls *LedgerService) Backup() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := ls.store.SaveSnapshot(persistence.KeyBackup, ls.snapshotLocked()); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}

func (ls *LedgerService) Dirty() bool {
	return ls.dirty.Load()
}

func (ls *LedgerService) DonationCount() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.donations)
}

func (ls *LedgerService) ExpenseCount() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.expenses)
}

func (ls *LedgerService) snapshotLocked() *models.Snapshot {
	return &models.Snapshot{
		Version:   models.CurrentVersion,
		Donations: append([]models.DonationRecord{}, ls.donations...),
		Expenses:  append([]models.ExpenseRecord{}, ls.expenses...),
	}
}

func (ls *LedgerService) persistLocked() error {
	if err := ls.store.SaveSnapshot(persistence.KeySnapshot, ls.snapshotLocked()); err != nil {
		ls.dirty.Store(true)
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	ls.dirty.Store(false)
	return nil
}

func (ls *LedgerService) afterWriteLocked() {
	ls.cache.Purge()
	ls.metrics.SetRecordsTotal("donation", len(ls.donations))
	ls.metrics.SetRecordsTotal("expense", len(ls.expenses))
}

func (ls *LedgerService) findDonation(id string) int {
	for i := range ls.donations {
		if ls.donations[i].ID == id {
			return i
		}
	}
	return -1
}

func (ls *LedgerService) findExpense(id string) int {
	for i := range ls.expenses {
		if ls.expenses[i].ID == id {
			return i
		}
	}
	return -1
}

func (ls *LedgerService) checkIntegrityLocked() {
	seen := map[string]bool{}
	for _, d := range ls.donations {
		if seen[d.ID] {
			ls.logger.Warnf(providers.TypeApp, "Duplicate donation id in stored data: %s", d.ID)
		}
		seen[d.ID] = true
		if errs := schema.Validate(d.ToMap(), schema.Donation); len(errs) > 0 {
			ls.logger.Warnf(providers.TypeApp, "Stored donation %s fails validation: %s", d.ID, strings.Join(errs, ", "))
		}
	}
	for _, x := range ls.expenses {
		if seen[x.ID] {
			ls.logger.Warnf(providers.TypeApp, "Duplicate expense id in stored data: %s", x.ID)
		}
		seen[x.ID] = true
		if errs := schema.Validate(x.ToMap(), schema.Expense); len(errs) > 0 {
			ls.logger.Warnf(providers.TypeApp, "Stored expense %s fails validation: %s", x.ID, strings.Join(errs, ", "))
		}
	}
}

// ensureIdentity fills in a generated id and the creation timestamp when the
// caller did not provide them.
func ensureIdentity(rec map[string]interface{}, prefix string) {
	if cast.ToString(rec["id"]) == "" {
		rec["id"] = GenerateID(prefix)
	}
	if cast.ToString(rec["timestamp"]) == "" {
		rec["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	}
}

// GenerateID builds a record id: prefix, millisecond timestamp, three random
// uppercase letters.
func GenerateID(prefix string) string {
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = byte('A' + rand.Intn(26))
	}
	return fmt.Sprintf("%s%013d%s", prefix, time.Now().UnixMilli(), suffix)
}

func matchExact(want, have string) bool {
	return want == "" || want == have
}

func matchSubstring(want, have string) bool {
	return want == "" || strings.Contains(strings.ToLower(have), strings.ToLower(want))
}

func matchAmount(minStr, maxStr string, amount float64) bool {
	if minStr != "" {
		if min, err := cast.ToFloat64E(minStr); err == nil && amount < min {
			return false
		}
	}
	if maxStr != "" {
		if max, err := cast.ToFloat64E(maxStr); err == nil && amount > max {
			return false
		}
	}
	return true
}

func matchDateRange(from, to, date string) bool {
	t, ok := schema.ParseDate(date)
	if !ok {
		return from == "" && to == ""
	}
	if from != "" {
		if f, ok := schema.ParseDate(from); ok && t.Before(f) {
			return false
		}
	}
	if to != "" {
		if u, ok := schema.ParseDate(to); ok && t.After(u) {
			return false
		}
	}
	return true
}
