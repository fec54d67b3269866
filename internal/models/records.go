package models

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DonationRecord is a single validated donation. Date is a calendar date
// (2006-01-02); Timestamp is the RFC 3339 creation instant.
type DonationRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Wing        string  `json:"wing"`
	Floor       int     `json:"floor"`
	Flat        string  `json:"flat"`
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"paymentMode"`
	Date        string  `json:"date"`
	Note        string  `json:"note,omitempty"`
	Timestamp   string  `json:"timestamp"`
	Status      string  `json:"status"`
}

type ExpenseRecord struct {
	ID         string  `json:"id"`
	Item       string  `json:"item"`
	Cost       float64 `json:"cost"`
	Date       string  `json:"date"`
	Reason     string  `json:"reason"`
	Category   string  `json:"category"`
	Timestamp  string  `json:"timestamp"`
	ApprovedBy string  `json:"approvedBy,omitempty"`
	ReceiptURL string  `json:"receiptUrl,omitempty"`
	Status     string  `json:"status"`
}

// DonorKey is the donor identity used across top-donor and repeat-donor
// analysis: trimmed name, wing and flat joined with a separator that cannot
// occur in flat values. Matching stays case-sensitive.
func (d *DonationRecord) DonorKey() string {
	return strings.TrimSpace(d.Name) + "|" + strings.TrimSpace(d.Wing) + "|" + strings.TrimSpace(d.Flat)
}

func (d *DonationRecord) ParsedDate() (time.Time, bool) {
	return parseRecordDate(d.Date)
}

func (e *ExpenseRecord) ParsedDate() (time.Time, bool) {
	return parseRecordDate(e.Date)
}

func parseRecordDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DonationFromMap decodes a sanitized record map into its typed form.
func DonationFromMap(m map[string]interface{}) DonationRecord {
	return DonationRecord{
		ID:          cast.ToString(m["id"]),
		Name:        cast.ToString(m["name"]),
		Email:       cast.ToString(m["email"]),
		Phone:       cast.ToString(m["phone"]),
		Wing:        cast.ToString(m["wing"]),
		Floor:       cast.ToInt(m["floor"]),
		Flat:        cast.ToString(m["flat"]),
		Amount:      cast.ToFloat64(m["amount"]),
		PaymentMode: cast.ToString(m["paymentMode"]),
		Date:        cast.ToString(m["date"]),
		Note:        cast.ToString(m["note"]),
		Timestamp:   cast.ToString(m["timestamp"]),
		Status:      cast.ToString(m["status"]),
	}
}

func ExpenseFromMap(m map[string]interface{}) ExpenseRecord {
	return ExpenseRecord{
		ID:         cast.ToString(m["id"]),
		Item:       cast.ToString(m["item"]),
		Cost:       cast.ToFloat64(m["cost"]),
		Date:       cast.ToString(m["date"]),
		Reason:     cast.ToString(m["reason"]),
		Category:   cast.ToString(m["category"]),
		Timestamp:  cast.ToString(m["timestamp"]),
		ApprovedBy: cast.ToString(m["approvedBy"]),
		ReceiptURL: cast.ToString(m["receiptUrl"]),
		Status:     cast.ToString(m["status"]),
	}
}

// ToMap re-encodes a record for merge-then-revalidate update paths.
func (d *DonationRecord) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":          d.ID,
		"name":        d.Name,
		"wing":        d.Wing,
		"floor":       float64(d.Floor),
		"flat":        d.Flat,
		"amount":      d.Amount,
		"paymentMode": d.PaymentMode,
		"date":        d.Date,
		"timestamp":   d.Timestamp,
		"status":      d.Status,
	}
	putIfSet(m, "email", d.Email)
	putIfSet(m, "phone", d.Phone)
	putIfSet(m, "note", d.Note)
	return m
}

func (e *ExpenseRecord) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":        e.ID,
		"item":      e.Item,
		"cost":      e.Cost,
		"date":      e.Date,
		"reason":    e.Reason,
		"category":  e.Category,
		"timestamp": e.Timestamp,
		"status":    e.Status,
	}
	putIfSet(m, "approvedBy", e.ApprovedBy)
	putIfSet(m, "receiptUrl", e.ReceiptURL)
	return m
}

func putIfSet(m map[string]interface{}, key, val string) {
	if val != "" {
		m[key] = val
	}
}
