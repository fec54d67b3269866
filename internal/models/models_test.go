package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonorKey_TrimsAndJoins(t *testing.T) {
	d := DonationRecord{Name: " Ramesh Kumar ", Wing: "A ", Flat: " 503"}
	assert.Equal(t, "Ramesh Kumar|A|503", d.DonorKey())
}

func TestDonorKey_CaseSensitive(t *testing.T) {
	a := DonationRecord{Name: "Asha", Wing: "A", Flat: "101"}
	b := DonationRecord{Name: "asha", Wing: "A", Flat: "101"}
	assert.NotEqual(t, a.DonorKey(), b.DonorKey())
}

func TestParsedDate_AcceptsDateAndRFC3339(t *testing.T) {
	d := DonationRecord{Date: "2024-09-10"}
	ts, ok := d.ParsedDate()
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	d.Date = "2024-09-10T12:00:00Z"
	_, ok = d.ParsedDate()
	assert.True(t, ok)

	d.Date = "garbage"
	_, ok = d.ParsedDate()
	assert.False(t, ok)
}

func TestDonationFromMap_RoundTrip(t *testing.T) {
	m := map[string]interface{}{
		"id":          "GP1700000000000ABC",
		"name":        "Asha Patil",
		"wing":        "B",
		"floor":       7.0,
		"flat":        "704",
		"amount":      1200.0,
		"paymentMode": "Cash",
		"date":        "2024-09-11",
		"timestamp":   "2024-09-11T08:00:00Z",
		"status":      "confirmed",
		"note":        "festival fund",
	}
	rec := DonationFromMap(m)
	assert.Equal(t, 7, rec.Floor)
	assert.Equal(t, 1200.0, rec.Amount)
	assert.Equal(t, "festival fund", rec.Note)

	back := rec.ToMap()
	assert.Equal(t, m["id"], back["id"])
	assert.Equal(t, m["floor"], back["floor"])
	assert.Equal(t, m["note"], back["note"])
	// Absent optional fields stay absent.
	_, hasEmail := back["email"]
	assert.False(t, hasEmail)
}

func TestRollingHash_Deterministic(t *testing.T) {
	a := RollingHash([]byte("community fund"))
	b := RollingHash([]byte("community fund"))
	c := RollingHash([]byte("community funds"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestRollingHash_EmptyInput(t *testing.T) {
	assert.Equal(t, "0", RollingHash(nil))
}

func TestComputeChecksum_TracksRecordChanges(t *testing.T) {
	snap := &Snapshot{
		Donations: []DonationRecord{{ID: "GP1700000000000ABC", Amount: 100}},
		Expenses:  []ExpenseRecord{},
	}
	first := snap.ComputeChecksum()
	require.NotEmpty(t, first)

	// Envelope fields do not affect the checksum.
	snap.LastSaved = "2024-09-11T08:00:00Z"
	assert.Equal(t, first, snap.ComputeChecksum())

	snap.Donations[0].Amount = 200
	assert.NotEqual(t, first, snap.ComputeChecksum())
}
