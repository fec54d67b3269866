package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"cft/internal/models"
	"cft/internal/services"
)

type HealthController struct {
	ledger    services.LedgerServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Donations     int     `json:"donations"`
	Expenses      int     `json:"expenses"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Version:       models.CurrentVersion,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Donations:     hc.ledger.DonationCount(),
		Expenses:      hc.ledger.ExpenseCount(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(ledger services.LedgerServiceInterface) *HealthController {
	return &HealthController{
		ledger:    ledger,
		startTime: time.Now(),
	}
}
