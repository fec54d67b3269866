package analytics

import (
	"fmt"
	"sort"
	"strings"

	"cft/internal/models"
	"cft/internal/structures"
)

// distribution counts amounts into the configured currency ranges. Every
// amount lands in at most one bucket; a bucket with Max < 0 is unbounded.
func distribution(buckets []structures.AmountBucket, amounts []float64) []DistributionBucket {
	out := make([]DistributionBucket, len(buckets))
	for i, b := range buckets {
		out[i] = DistributionBucket{Range: b.Label}
		for _, a := range amounts {
			if a >= b.Min && (b.Max < 0 || a <= b.Max) {
				out[i].Count++
				out[i].Total += a
			}
		}
		if len(amounts) > 0 {
			out[i].Percentage = float64(out[i].Count) / float64(len(amounts)) * 100
		}
	}
	return out
}

// TopDonors ranks donor identities by total contributed amount. Ties keep
// first-donation order.
func (e *Engine) TopDonors(donations []models.DonationRecord, limit int) []TopDonor {
	byDonor := GroupBy(donations, func(d models.DonationRecord) string { return d.DonorKey() })

	donors := make([]TopDonor, 0, len(byDonor.Keys))
	for _, key := range byDonor.Keys {
		group := byDonor.Groups[key]
		donor := TopDonor{
			Name:      strings.TrimSpace(group[0].Name),
			Wing:      strings.TrimSpace(group[0].Wing),
			Flat:      strings.TrimSpace(group[0].Flat),
			Donations: group,
		}
		for _, d := range group {
			donor.TotalAmount += d.Amount
			donor.DonationCount++
		}
		donor.AverageDonation = donor.TotalAmount / float64(donor.DonationCount)
		donors = append(donors, donor)
	}

	sort.SliceStable(donors, func(i, j int) bool {
		return donors[i].TotalAmount > donors[j].TotalAmount
	})
	if limit > 0 && len(donors) > limit {
		donors = donors[:limit]
	}
	return donors
}

// repeatDonors reports donors with two or more donations. Percentage is over
// distinct donors, not donations.
func repeatDonors(donations []models.DonationRecord) *RepeatDonors {
	byDonor := GroupBy(donations, func(d models.DonationRecord) string { return d.DonorKey() })

	result := &RepeatDonors{Donors: []RepeatDonor{}}
	for _, key := range byDonor.Keys {
		group := byDonor.Groups[key]
		if len(group) < 2 {
			continue
		}
		result.Count++
		result.Donors = append(result.Donors, RepeatDonor{
			Name:  strings.TrimSpace(group[0].Name),
			Wing:  strings.TrimSpace(group[0].Wing),
			Flat:  strings.TrimSpace(group[0].Flat),
			Count: len(group),
		})
	}
	if len(byDonor.Keys) > 0 {
		result.Percentage = float64(result.Count) / float64(len(byDonor.Keys)) * 100
	}
	return result
}

func donationFrequency(donations []models.DonationRecord) *Frequency {
	f := &Frequency{
		Daily:   map[string]int{},
		Weekly:  map[string]int{},
		Monthly: map[string]int{},
	}
	for _, d := range donations {
		t, ok := d.ParsedDate()
		if !ok {
			continue
		}
		f.Daily[t.Format("2006-01-02")]++
		year, week := t.ISOWeek()
		f.Weekly[fmt.Sprintf("%d-W%02d", year, week)]++
		f.Monthly[t.Format("2006-01")]++
	}
	return f
}

// geographicDistribution aggregates totals per wing and, within each wing,
// per floor.
func geographicDistribution(donations []models.DonationRecord) map[string]*WingDistribution {
	out := map[string]*WingDistribution{}
	for _, d := range donations {
		wing := out[d.Wing]
		if wing == nil {
			wing = &WingDistribution{Floors: map[string]*FloorDistribution{}}
			out[d.Wing] = wing
		}
		wing.Count++
		wing.Total += d.Amount

		floorKey := fmt.Sprintf("Floor %d", d.Floor)
		floor := wing.Floors[floorKey]
		if floor == nil {
			floor = &FloorDistribution{}
			wing.Floors[floorKey] = floor
		}
		floor.Count++
		floor.Total += d.Amount
	}
	return out
}
