package analytics

import (
	"fmt"
	"sort"
	"time"

	"cft/internal/models"
)

type periodTotals struct {
	donations     float64
	expenses      float64
	donationCount int
	expenseCount  int
}

// financialTrends builds the combined donation/expense series at daily,
// weekly and monthly granularity plus seasonal totals. Periods are sorted
// lexicographically, which for the key formats used is chronological.
func (e *Engine) financialTrends(donations []models.DonationRecord, expenses []models.ExpenseRecord) *Trends {
	return &Trends{
		Monthly:  trendSeries(donations, expenses, monthKey),
		Weekly:   trendSeries(donations, expenses, weekKey),
		Daily:    trendSeries(donations, expenses, dayKey),
		Seasonal: seasonalTrends(donations, expenses),
	}
}

func trendSeries(donations []models.DonationRecord, expenses []models.ExpenseRecord, key func(time.Time) string) []TrendPoint {
	totals := map[string]*periodTotals{}
	for _, d := range donations {
		if t, ok := d.ParsedDate(); ok {
			p := totalsFor(totals, key(t))
			p.donations += d.Amount
			p.donationCount++
		}
	}
	for _, x := range expenses {
		if t, ok := x.ParsedDate(); ok {
			p := totalsFor(totals, key(t))
			p.expenses += x.Cost
			p.expenseCount++
		}
	}

	periods := make([]string, 0, len(totals))
	for period := range totals {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	points := make([]TrendPoint, len(periods))
	for i, period := range periods {
		p := totals[period]
		points[i] = TrendPoint{
			Period:        period,
			Donations:     p.donations,
			Expenses:      p.expenses,
			DonationCount: p.donationCount,
			ExpenseCount:  p.expenseCount,
			Balance:       p.donations - p.expenses,
		}
		if i > 0 && points[i-1].Balance != 0 {
			points[i].Growth = (points[i].Balance - points[i-1].Balance) / points[i-1].Balance * 100
		}
	}
	return points
}

func totalsFor(totals map[string]*periodTotals, period string) *periodTotals {
	p := totals[period]
	if p == nil {
		p = &periodTotals{}
		totals[period] = p
	}
	return p
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func seasonalTrends(donations []models.DonationRecord, expenses []models.ExpenseRecord) map[string]*SeasonBucket {
	seasons := map[string]*SeasonBucket{}
	bucket := func(t time.Time) *SeasonBucket {
		name := seasonOf(t.Month())
		s := seasons[name]
		if s == nil {
			s = &SeasonBucket{}
			seasons[name] = s
		}
		return s
	}
	for _, d := range donations {
		if t, ok := d.ParsedDate(); ok {
			s := bucket(t)
			s.Donations += d.Amount
			s.DonationCount++
		}
	}
	for _, x := range expenses {
		if t, ok := x.ParsedDate(); ok {
			s := bucket(t)
			s.Expenses += x.Cost
			s.ExpenseCount++
		}
	}
	for _, s := range seasons {
		s.Balance = s.Donations - s.Expenses
	}
	return seasons
}

func seasonOf(m time.Month) string {
	switch {
	case m >= time.March && m <= time.May:
		return "spring"
	case m >= time.June && m <= time.August:
		return "summer"
	case m >= time.September && m <= time.November:
		return "monsoon"
	default:
		return "winter"
	}
}
