package migration

import (
	"github.com/spf13/cast"

	"cft/internal/models"
	"cft/internal/schema"
)

// Transition upgrades a raw snapshot one version step in place.
type Transition struct {
	From  string
	To    string
	Note  string
	Apply func(raw *models.RawSnapshot)
}

// Chain returns the ordered transition list. A migration run enters the
// chain at the detected version and applies every step to the end.
func Chain() []Transition {
	return []Transition{
		{
			From:  VersionLegacy,
			To:    VersionIntermediate,
			Note:  "coerce string amounts to numbers, add status fields",
			Apply: legacyToIntermediate,
		},
		{
			From:  VersionIntermediate,
			To:    models.CurrentVersion,
			Note:  "normalize floors, add timestamps and contact fields",
			Apply: intermediateToCurrent,
		},
	}
}

// legacyToIntermediate coerces the string-typed money fields to numbers and
// fills in the status fields the legacy format did not have.
func legacyToIntermediate(raw *models.RawSnapshot) {
	for _, d := range raw.Donations {
		d["amount"] = cast.ToFloat64(d["amount"])
		if _, ok := d["status"]; !ok {
			d["status"] = schema.StatusConfirmed
		}
	}
	for _, x := range raw.Expenses {
		x["cost"] = cast.ToFloat64(x["cost"])
		if _, ok := x["status"]; !ok {
			x["status"] = schema.StatusApproved
		}
	}
	raw.Version = VersionIntermediate
}

// intermediateToCurrent normalizes floor to a number, synthesizes the
// creation timestamp from the record date (midday, so it stays on the same
// calendar day in nearby timezones), and fills the fields the current schema
// added.
func intermediateToCurrent(raw *models.RawSnapshot) {
	for _, d := range raw.Donations {
		d["floor"] = cast.ToFloat64(d["floor"])
		if _, ok := d["timestamp"]; !ok {
			d["timestamp"] = synthTimestamp(cast.ToString(d["date"]))
		}
		fillString(d, "email")
		fillString(d, "phone")
		fillString(d, "note")
	}
	for _, x := range raw.Expenses {
		if _, ok := x["timestamp"]; !ok {
			x["timestamp"] = synthTimestamp(cast.ToString(x["date"]))
		}
		if cast.ToString(x["category"]) == "" {
			x["category"] = schema.FallbackCategory
		}
		fillString(x, "approvedBy")
	}
	raw.Version = models.CurrentVersion
}

func synthTimestamp(date string) string {
	if date == "" {
		return ""
	}
	return date + "T12:00:00Z"
}

func fillString(rec map[string]interface{}, key string) {
	if _, ok := rec[key]; !ok {
		rec[key] = ""
	}
}
