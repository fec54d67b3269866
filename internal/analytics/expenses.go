package analytics

import (
	"fmt"
	"math"

	"cft/internal/models"
)

// expenseEfficiency scores each category's average spend against its
// benchmark: 100 means average equals benchmark, and the score drops with the
// relative deviation in either direction, floored at 0.
func (e *Engine) expenseEfficiency(byCategory *Grouping[models.ExpenseRecord]) map[string]*CategoryEfficiency {
	out := map[string]*CategoryEfficiency{}
	for _, category := range byCategory.Keys {
		group := byCategory.Groups[category]
		var total float64
		for _, x := range group {
			total += x.Cost
		}
		avg := total / float64(len(group))
		out[category] = &CategoryEfficiency{
			Total:      total,
			Average:    avg,
			Count:      len(group),
			Efficiency: e.efficiencyScore(category, avg),
		}
	}
	return out
}

func (e *Engine) efficiencyScore(category string, avg float64) int {
	optimal, ok := e.cfg.Benchmarks[category]
	if !ok {
		optimal = e.cfg.FallbackBenchmark
	}
	score := 100 - math.Abs(avg-optimal)/optimal*100
	return int(math.Round(math.Max(0, score)))
}

func expenseTrends(expenses []models.ExpenseRecord, byCategory *Grouping[models.ExpenseRecord]) *ExpenseTrends {
	trends := &ExpenseTrends{
		Monthly:  map[string]*MonthAggregate{},
		Category: map[string]map[string]*MonthAggregate{},
	}
	for _, x := range expenses {
		t, ok := x.ParsedDate()
		if !ok {
			continue
		}
		month := t.Format("2006-01")
		agg := trends.Monthly[month]
		if agg == nil {
			agg = &MonthAggregate{}
			trends.Monthly[month] = agg
		}
		agg.Total += x.Cost
		agg.Count++
	}
	for _, category := range byCategory.Keys {
		months := map[string]*MonthAggregate{}
		for _, x := range byCategory.Groups[category] {
			t, ok := x.ParsedDate()
			if !ok {
				continue
			}
			month := t.Format("2006-01")
			agg := months[month]
			if agg == nil {
				agg = &MonthAggregate{}
				months[month] = agg
			}
			agg.Total += x.Cost
			agg.Count++
		}
		trends.Category[category] = months
	}
	return trends
}

// budgetAnalysis compares spend against the per-category limits. Status flips
// to warning above 80% utilization and to over above 100%.
func (e *Engine) budgetAnalysis(expenses []models.ExpenseRecord) map[string]*BudgetStatus {
	spent := map[string]float64{}
	for _, x := range expenses {
		spent[x.Category] += x.Cost
	}

	out := map[string]*BudgetStatus{}
	for category, limit := range e.cfg.BudgetLimits {
		out[category] = budgetStatus(limit, spent[category])
	}
	for category, amount := range spent {
		if _, ok := out[category]; !ok {
			out[category] = budgetStatus(e.cfg.FallbackBudget, amount)
		}
	}
	return out
}

func budgetStatus(budget, spent float64) *BudgetStatus {
	s := &BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Remaining: math.Max(0, budget-spent),
	}
	if budget > 0 {
		s.Utilization = int(math.Round(spent / budget * 100))
	}
	switch {
	case s.Utilization > 100:
		s.Status = "over"
	case s.Utilization > 80:
		s.Status = "warning"
	default:
		s.Status = "good"
	}
	return s
}

// categoryPerformance blends the benchmark efficiency score with spend
// consistency into a single 0-100 score per category.
func (e *Engine) categoryPerformance(byCategory *Grouping[models.ExpenseRecord]) map[string]*CategoryPerformance {
	out := map[string]*CategoryPerformance{}
	for _, category := range byCategory.Keys {
		group := byCategory.Groups[category]
		var total float64
		for _, x := range group {
			total += x.Cost
		}
		avg := total / float64(len(group))
		efficiency := e.efficiencyScore(category, avg)
		consistency := consistencyScore(group)
		out[category] = &CategoryPerformance{
			Total:       total,
			Count:       len(group),
			Average:     avg,
			Efficiency:  efficiency,
			Frequency:   len(group),
			Consistency: consistency,
			Score:       int(math.Round((float64(efficiency) + consistency) / 2)),
		}
	}
	return out
}

// consistencyScore is 100 minus the coefficient of variation of the costs,
// floored at 0. Fewer than two samples count as perfectly consistent.
func consistencyScore(group []models.ExpenseRecord) float64 {
	if len(group) < 2 {
		return 100
	}
	var total float64
	for _, x := range group {
		total += x.Cost
	}
	mean := total / float64(len(group))
	if mean == 0 {
		return 100
	}
	var variance float64
	for _, x := range group {
		variance += (x.Cost - mean) * (x.Cost - mean)
	}
	variance /= float64(len(group))
	cov := math.Sqrt(variance) / mean * 100
	return math.Max(0, 100-cov)
}

// costOptimization flags categories with bulk-purchase potential (high
// average spend) or too many small transactions. Both suggestions can fire
// for the same category.
func (e *Engine) costOptimization(byCategory *Grouping[models.ExpenseRecord]) []Suggestion {
	suggestions := []Suggestion{}
	for _, category := range byCategory.Keys {
		group := byCategory.Groups[category]
		var total float64
		for _, x := range group {
			total += x.Cost
		}
		avg := total / float64(len(group))

		if avg > e.cfg.HighAvgExpense && !contains(e.cfg.BulkExemptCategories, category) {
			suggestions = append(suggestions, Suggestion{
				Category:         category,
				Type:             "cost_reduction",
				Message:          fmt.Sprintf("Consider bulk purchasing or alternative vendors for %s", category),
				PotentialSavings: avg * e.cfg.BulkSavingsRate * float64(len(group)),
			})
		}
		if len(group) > e.cfg.HighTxnCount {
			suggestions = append(suggestions, Suggestion{
				Category:         category,
				Type:             "consolidation",
				Message:          fmt.Sprintf("Consolidate %s purchases to reduce transaction overhead", category),
				PotentialSavings: float64(len(group)) * e.cfg.PerTxnCost,
			})
		}
	}
	return suggestions
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
