package analytics

import (
	"errors"
	"time"
)

var ErrUnknownReportType = errors.New("unknown report type")

type reportSpec struct {
	title    string
	sections []string
}

var reportSpecs = map[string]reportSpec{
	"financial": {
		title:    "Financial Summary Report",
		sections: []string{"executiveSummary", "donations", "expenses", "trends", "risks"},
	},
	"donor": {
		title:    "Donor Analysis Report",
		sections: []string{"demographics", "contributions", "patterns", "retention"},
	},
	"expense": {
		title:    "Expense Analysis Report",
		sections: []string{"categories", "trends", "efficiency", "budget"},
	},
	"performance": {
		title:    "Performance Dashboard",
		sections: []string{"kpis", "goals", "comparisons", "forecasts"},
	},
}

type ReportOptions struct {
	Period string
}

// BuildReport assembles a named report from a computed analytics tree. The
// section set is fixed per report type.
func (e *Engine) BuildReport(reportType string, a *FinancialAnalytics, opts ReportOptions) (*Report, error) {
	spec, ok := reportSpecs[reportType]
	if !ok {
		return nil, ErrUnknownReportType
	}
	period := opts.Period
	if period == "" {
		period = "All Time"
	}

	report := &Report{
		Title:        spec.title,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Period:       period,
		SectionOrder: spec.sections,
		Sections:     make(map[string]*ReportSection, len(spec.sections)),
	}
	for _, name := range spec.sections {
		report.Sections[name] = buildSection(name, a)
	}
	return report, nil
}

func buildSection(name string, a *FinancialAnalytics) *ReportSection {
	switch name {
	case "executiveSummary":
		return &ReportSection{Title: "Executive Summary", Data: a.Overview}
	case "donations":
		return &ReportSection{Title: "Donation Analysis", Data: a.Donations}
	case "expenses":
		return &ReportSection{Title: "Expense Analysis", Data: a.Expenses}
	case "trends":
		return &ReportSection{Title: "Financial Trends", Data: a.Trends}
	case "risks":
		return &ReportSection{Title: "Risk Assessment", Data: a.Risks}
	case "demographics":
		return &ReportSection{Title: "Donor Demographics", Data: a.Donations.Geographic}
	case "contributions":
		return &ReportSection{Title: "Contribution Patterns", Data: a.Donations.TopDonors}
	case "patterns":
		return &ReportSection{Title: "Donation Patterns", Data: a.Donations.Frequency}
	case "retention":
		return &ReportSection{Title: "Donor Retention", Data: a.Donations.RepeatDonors}
	case "categories":
		return &ReportSection{Title: "Category Breakdown", Data: a.Expenses.ByCategory}
	case "efficiency":
		return &ReportSection{Title: "Spending Efficiency", Data: a.Expenses.Efficiency}
	case "budget":
		return &ReportSection{Title: "Budget Analysis", Data: a.Expenses.BudgetAnalysis}
	case "kpis":
		return &ReportSection{Title: "Key Performance Indicators", Data: a.Efficiency}
	case "goals":
		return &ReportSection{Title: "Budget Goals", Data: a.Expenses.BudgetAnalysis}
	case "comparisons":
		return &ReportSection{Title: "Category Comparisons", Data: a.Expenses.Performance}
	case "forecasts":
		return &ReportSection{Title: "Financial Forecasts", Data: a.Projections}
	default:
		return &ReportSection{Title: name, Data: nil}
	}
}

// ReportTypes lists the valid report type names.
func ReportTypes() []string {
	return []string{"financial", "donor", "expense", "performance"}
}
