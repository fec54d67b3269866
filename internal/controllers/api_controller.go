package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"cft/internal/analytics"
	"cft/internal/migration"
	"cft/internal/providers"
	"cft/internal/schema"
	"cft/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// apiResponse is the uniform envelope for every JSON endpoint.
type apiResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type ApiController struct {
	logger   providers.Logger
	ledger   services.LedgerServiceInterface
	engine   *analytics.Engine
	pipeline migration.PipelineInterface
	cache    providers.CacheProviderInterface
}

func NewApiController(
	logger providers.Logger,
	ledger services.LedgerServiceInterface,
	engine *analytics.Engine,
	pipeline migration.PipelineInterface,
	cache providers.CacheProviderInterface,
) *ApiController {
	return &ApiController{
		logger:   logger,
		ledger:   ledger,
		engine:   engine,
		pipeline: pipeline,
		cache:    cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, resp *apiResponse) {
	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeData(w http.ResponseWriter, data interface{}, warnings []string) {
	writeJSON(w, http.StatusOK, &apiResponse{Success: true, Data: data, Warnings: warnings})
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var vErr *schema.ValidationError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, analytics.ErrUnknownReportType),
		errors.Is(err, migration.ErrUnknownMigrationPath),
		errors.Is(err, migration.ErrNoBackup):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, &apiResponse{Success: false, Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, &apiResponse{Success: false, Error: "invalid request body"})
		return nil, false
	}
	return payload, true
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, err)
		return
	}

	gson, err := json.Marshal(&apiResponse{Success: true, Data: result})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// searchCriteria collapses the query string into the flat criteria map the
// ledger search understands.
func searchCriteria(r *http.Request) map[string]string {
	criteria := map[string]string{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			criteria[key] = values[0]
		}
	}
	return criteria
}

func (ac *ApiController) CreateDonation(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(w, r)
	if !ok {
		return
	}
	rec, warnings, err := ac.ledger.AddDonation(payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &apiResponse{Success: true, Data: rec, Warnings: warnings})
}

func (ac *ApiController) ListDonations(w http.ResponseWriter, r *http.Request) {
	criteria := searchCriteria(r)
	if len(criteria) == 0 {
		writeData(w, ac.ledger.Donations(), nil)
		return
	}
	writeData(w, ac.ledger.SearchDonations(criteria), nil)
}

func (ac *ApiController) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(w, r)
	if !ok {
		return
	}
	rec, warnings, err := ac.ledger.UpdateDonation(r.PathValue("id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &apiResponse{Success: true, Data: rec, Warnings: warnings})
}

func (ac *ApiController) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	if err := ac.ledger.DeleteDonation(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &apiResponse{Success: true})
}

func (ac *ApiController) CreateExpense(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(w, r)
	if !ok {
		return
	}
	rec, warnings, err := ac.ledger.AddExpense(payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &apiResponse{Success: true, Data: rec, Warnings: warnings})
}

func (ac *ApiController) ListExpenses(w http.ResponseWriter, r *http.Request) {
	criteria := searchCriteria(r)
	if len(criteria) == 0 {
		writeData(w, ac.ledger.Expenses(), nil)
		return
	}
	writeData(w, ac.ledger.SearchExpenses(criteria), nil)
}

func (ac *ApiController) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(w, r)
	if !ok {
		return
	}
	rec, warnings, err := ac.ledger.UpdateExpense(r.PathValue("id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &apiResponse{Success: true, Data: rec, Warnings: warnings})
}

func (ac *ApiController) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := ac.ledger.DeleteExpense(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &apiResponse{Success: true})
}

func (ac *ApiController) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "analytics", func() (any, error) {
		return ac.engine.Aggregate(ac.ledger.Donations(), ac.ledger.Expenses()), nil
	})
}

func (ac *ApiController) GetReport(w http.ResponseWriter, r *http.Request) {
	reportType := r.URL.Query().Get("type")
	period := r.URL.Query().Get("period")
	ac.serveFromCacheOrCompute(w, "report:"+reportType+":"+period, func() (any, error) {
		a := ac.engine.Aggregate(ac.ledger.Donations(), ac.ledger.Expenses())
		return ac.engine.BuildReport(reportType, a, analytics.ReportOptions{Period: period})
	})
}

func (ac *ApiController) GetInsights(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "insights", func() (any, error) {
		a := ac.engine.Aggregate(ac.ledger.Donations(), ac.ledger.Expenses())
		return ac.engine.Insights(a), nil
	})
}

func (ac *ApiController) GetMigrations(w http.ResponseWriter, r *http.Request) {
	history, err := ac.pipeline.History()
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, history, nil)
}

func (ac *ApiController) RunMigration(w http.ResponseWriter, r *http.Request) {
	result, err := ac.pipeline.Migrate()
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		writeData(w, map[string]string{"status": "up to date"}, nil)
		return
	}
	ac.cache.Purge()
	writeData(w, result, nil)
}

func (ac *ApiController) RollbackMigration(w http.ResponseWriter, r *http.Request) {
	if err := ac.pipeline.Rollback(); err != nil {
		writeError(w, err)
		return
	}
	ac.cache.Purge()
	writeJSON(w, http.StatusOK, &apiResponse{Success: true})
}
