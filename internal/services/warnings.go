package services

import (
	"fmt"
	"strconv"

	"cft/internal/models"
)

// donationWarnings flags plausibility concerns that are not validation
// failures: the record is stored either way, the caller just gets told.
func (ls *LedgerService) donationWarnings(rec *models.DonationRecord) []string {
	warnings := []string{}

	// Flat numbers usually follow the floor*100 convention, so flat 503 sits
	// on floor 5. Anything outside that range is worth a second look but may
	// still be legitimate.
	if flat, err := strconv.Atoi(rec.Flat); err == nil && rec.Floor > 0 {
		lo := rec.Floor*100 + 1
		hi := rec.Floor*100 + ls.heur.FlatsPerFloor
		if flat < lo || flat > hi {
			warnings = append(warnings,
				fmt.Sprintf("flat %s is unusual for floor %d (expected %d-%d)", rec.Flat, rec.Floor, lo, hi))
		}
	}

	return warnings
}

func (ls *LedgerService) expenseWarnings(rec *models.ExpenseRecord) []string {
	warnings := []string{}

	limit, ok := ls.heur.CostWarningLimits[rec.Category]
	if !ok {
		limit = ls.heur.FallbackCostWarning
	}
	if rec.Cost > limit {
		warnings = append(warnings,
			fmt.Sprintf("cost %.2f is unusually high for category %s (typical limit %.0f)", rec.Cost, rec.Category, limit))
	}

	return warnings
}
